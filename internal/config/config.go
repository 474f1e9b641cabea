package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the portal reads from the environment.
type Config struct {
	AppEnv     string
	Port       string
	APIBaseURL string

	DBDriver     string
	DBDSN        string
	SeedDemoData bool

	JWTSecret     string
	SessionTTL    time.Duration
	RememberMeTTL time.Duration

	MockLatency    time.Duration
	WizardDraftTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string
	AuthRateLimit      float64
	AuthRateBurst      int
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		APIBaseURL: getEnv("API_BASE_URL", "https://api.heloluxuryair.com"),

		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:        os.Getenv("DB_DSN"),
		SeedDemoData: getEnvAsBool("SEED_DEMO_DATA", true),

		JWTSecret:     getEnv("JWT_SECRET", "helo-dev-secret"),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", time.Hour),
		RememberMeTTL: getEnvAsDuration("REMEMBER_ME_TTL", 7*24*time.Hour),

		MockLatency:    getEnvAsDuration("MOCK_LATENCY", 500*time.Millisecond),
		WizardDraftTTL: getEnvAsDuration("WIZARD_DRAFT_TTL", 30*time.Minute),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "https://*,http://localhost:3000")),
		AuthRateLimit:      getEnvAsFloat("AUTH_RATE_LIMIT", 1),
		AuthRateBurst:      getEnvAsInt("AUTH_RATE_BURST", 5),
	}

	if cfg.DBDSN == "" {
		cfg.DBDSN = defaultDSN(cfg.DBDriver)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppEnv == "production" && c.JWTSecret == "helo-dev-secret" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 || c.RememberMeTTL <= 0 {
		return fmt.Errorf("session lifetimes must be positive")
	}
	return nil
}

func defaultDSN(driver string) string {
	if driver == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("PG_USER", "postgres"),
			os.Getenv("PG_PASSWORD"),
			getEnv("PG_HOST", "localhost"),
			getEnv("PG_PORT", "5432"),
			getEnv("PG_DB", "helo"),
		)
	}
	return "file::memory:?cache=shared"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("1h") and falls back on anything else.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
