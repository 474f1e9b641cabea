package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "DB_DRIVER", "DB_DSN", "SESSION_TTL", "MOCK_LATENCY", "API_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file::memory:?cache=shared", cfg.DBDSN)
	assert.Equal(t, "https://api.heloluxuryair.com", cfg.APIBaseURL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RememberMeTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.MockLatency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_DB", "charters")
	t.Setenv("MOCK_LATENCY", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://flyhelo.one, http://localhost:3000 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.DBDSN, "@db.internal:")
	assert.Contains(t, cfg.DBDSN, "/charters?")
	assert.Equal(t, time.Duration(0), cfg.MockLatency)
	assert.Equal(t, []string{"https://flyhelo.one", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
