package api

import (
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/config"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/metrics"
	"helo-luxury-air/portal/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	Users      repositories.UserRepository
	Helicopter repositories.HelicopterRepository
	Bookings   repositories.BookingRepository
	Analytics  repositories.AnalyticsRepository
}

type Services struct {
	Auth      *services.AuthService
	Bookings  *services.BookingService
	Fleet     *services.FleetService
	Users     *services.UserService
	Analytics *services.AnalyticsService
	Wizard    *services.WizardService
	Cache     *common.CacheService
	Events    common.EventPublisher
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	SQL      *sqlx.DB
	Redis    *redis.Client
	Now      func() time.Time
}

// InitDependencies builds every repository and service. A nil redis client
// keeps sessions in memory and logs booking events instead of streaming them.
func InitDependencies(cfg *config.Config, orm *gorm.DB, sqlDB *sqlx.DB, redisClient *redis.Client, metricsReg *metrics.MetricsRegistry, now func() time.Time) *Dependencies {
	if now == nil {
		now = time.Now
	}

	repos := &Repositories{
		Users:      repositories.NewUserGormRepository(orm),
		Helicopter: repositories.NewHelicopterGormRepository(orm),
		Bookings:   repositories.NewBookingGormRepository(orm),
		Analytics:  repositories.NewAnalyticsSQLRepository(sqlDB),
	}

	// drafts hold live wizard state and always stay in process
	cacheSvc := common.NewCacheService(cfg.WizardDraftTTL, 10*time.Minute, metricsReg)

	var (
		sessions   common.SessionStore
		events     common.EventPublisher
		fleetCache common.CacheInterface = cacheSvc
	)
	if redisClient != nil {
		sessions = common.NewRedisSessionStore(redisClient, now)
		events = common.NewRedisQueueService(redisClient, constants.BookingEventsStream)
		fleetCache = common.NewRedisCacheService(redisClient, constants.RedisCachePrefix, metricsReg)
	} else {
		sessions = common.NewMemorySessionStore(now)
		events = common.LogEventPublisher{}
	}

	latency := common.NewLatency(cfg.MockLatency)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret))

	authSvc := services.NewAuthService(repos.Users, sessions, tokens, latency, metricsReg, services.AuthConfig{
		SessionTTL:    cfg.SessionTTL,
		RememberMeTTL: cfg.RememberMeTTL,
	}, now)
	bookingSvc := services.NewBookingService(repos.Bookings, repos.Helicopter, latency, events, metricsReg, now)
	fleetSvc := services.NewFleetService(repos.Helicopter, fleetCache, latency, now)

	return &Dependencies{
		Repo: repos,
		Services: &Services{
			Auth:      authSvc,
			Bookings:  bookingSvc,
			Fleet:     fleetSvc,
			Users:     services.NewUserService(repos.Users, authSvc, latency, now),
			Analytics: services.NewAnalyticsService(repos.Analytics, latency, now),
			Wizard:    services.NewWizardService(cacheSvc, repos.Users, fleetSvc, bookingSvc, metricsReg, cfg.WizardDraftTTL, now),
			Cache:     cacheSvc,
			Events:    events,
		},
		Config:  cfg,
		Metrics: metricsReg,
		SQL:     sqlDB,
		Redis:   redisClient,
		Now:     now,
	}
}
