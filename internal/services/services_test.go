package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	database "helo-luxury-air/portal/internal/db"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []common.BookingEvent
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, e common.BookingEvent) error {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	orm       *gorm.DB
	clock     *testClock
	metrics   *metrics.MetricsRegistry
	events    *recordingPublisher
	users     *repositories.UserGormRepository
	auth      *AuthService
	bookings  *BookingService
	fleet     *FleetService
	userSvc   *UserService
	wizardSvc *WizardService
}

var (
	memberUser = common.SessionUser{ID: "member-1", Email: "member@flyhelo.one", FirstName: "Standard", LastName: "Member", Role: constants.RoleMember}
	otherUser  = common.SessionUser{ID: "user-2", Email: "sarah.smith@example.com", FirstName: "Sarah", LastName: "Smith", Role: constants.RoleMember}
	adminUser  = common.SessionUser{ID: "admin-1", Email: "admin@flyhelo.one", FirstName: "Operations", LastName: "Admin", Role: constants.RoleAdmin}
)

// Setup seeded test database and the full service graph with no latency
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	orm, err := database.OpenORM("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := orm.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := database.Seed(context.Background(), orm, testNow); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	clock := &testClock{t: testNow}
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	events := &recordingPublisher{}
	latency := common.NewLatency(0)
	cache := common.NewCacheService(time.Hour, time.Hour, reg)

	users := repositories.NewUserGormRepository(orm)
	heliRepo := repositories.NewHelicopterGormRepository(orm)
	bookingRepo := repositories.NewBookingGormRepository(orm)

	env := &testEnv{orm: orm, clock: clock, metrics: reg, events: events, users: users}
	env.auth = NewAuthService(users, common.NewMemorySessionStore(clock.Now), auth.NewTokenIssuer([]byte("test-secret")),
		latency, reg, AuthConfig{SessionTTL: time.Hour, RememberMeTTL: 7 * 24 * time.Hour}, clock.Now)
	env.bookings = NewBookingService(bookingRepo, heliRepo, latency, events, reg, clock.Now)
	env.fleet = NewFleetService(heliRepo, cache, latency, clock.Now)
	env.userSvc = NewUserService(users, env.auth, latency, clock.Now)
	env.wizardSvc = NewWizardService(cache, users, env.fleet, env.bookings, reg, 30*time.Minute, clock.Now)
	return env
}
