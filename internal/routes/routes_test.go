package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"helo-luxury-air/portal/internal/api"
	"helo-luxury-air/portal/internal/config"
	"helo-luxury-air/portal/internal/constants"
	database "helo-luxury-air/portal/internal/db"
	"helo-luxury-air/portal/internal/metrics"
	"helo-luxury-air/portal/internal/models/dtos"
	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
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

// envelope mirrors dtos.APIResponse with the payload left raw
type envelope struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Data     json.RawMessage   `json:"data"`
	Errors   map[string]string `json:"errors"`
	Redirect string            `json:"redirect"`
	From     string            `json:"from"`
}

type testServer struct {
	handler http.Handler
	clock   *testClock
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		APIBaseURL:         "https://api.heloluxuryair.com",
		DBDriver:           "sqlite",
		JWTSecret:          "test-secret",
		SessionTTL:         time.Hour,
		RememberMeTTL:      7 * 24 * time.Hour,
		WizardDraftTTL:     30 * time.Minute,
		CORSAllowedOrigins: []string{"*"},
		AuthRateLimit:      100,
		AuthRateBurst:      100,
	}
}

// Setup seeded test database and the full router
func setupServer(t *testing.T, cfg *config.Config) *testServer {
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
	sqlDB, err := database.OpenSQLX(orm, "sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlx: %v", err)
	}

	clock := &testClock{t: testNow}
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	deps := api.InitDependencies(cfg, orm, sqlDB, nil, reg, clock.Now)
	return &testServer{handler: RegisterRoutes(deps, testNow), clock: clock}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return rr.Code, env
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", dtos.LoginRequest{Email: email, Password: password})
	if code != http.StatusOK {
		t.Fatalf("Login as %s failed with %d: %s", email, code, env.Message)
	}
	var auth struct {
		Token string `json:"token"`
		User  struct {
			Role constants.Role `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		t.Fatalf("Failed to decode auth response: %v", err)
	}
	return auth.Token
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthCheck", nil)
	rr := httptest.NewRecorder()
	srv.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp dtos.HealthCheckResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Services["database"].Status != "ok" {
		t.Errorf("Expected database ok, got %+v", resp.Services["database"])
	}
}

func TestMemberIsRedirectedAwayFromAdmin(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	code, env := srv.do(t, http.MethodGet, "/api/v1/admin/bookings", token, nil)
	if code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", code)
	}
	if env.Redirect != constants.PathMemberDashboard {
		t.Errorf("Expected redirect to %s, got %s", constants.PathMemberDashboard, env.Redirect)
	}

	code, env = srv.do(t, http.MethodGet, "/api/v1/navigation?path=/admin/dashboard", token, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var nav dtos.NavigationResponse
	decodeData(t, env, &nav)
	if nav.Render || nav.Redirect != constants.PathMemberDashboard {
		t.Errorf("Expected redirect to member dashboard, got %+v", nav)
	}
}

func TestNavigation(t *testing.T) {
	srv := setupServer(t, testConfig())
	admin := srv.login(t, "admin@flyhelo.one", "admin123")

	tests := []struct {
		name     string
		path     string
		token    string
		render   bool
		redirect string
		from     string
		notFound bool
	}{
		{"anonymous member page", "/member/trips/b1", "", false, constants.PathLogin, "/member/trips/b1", false},
		{"anonymous public page", "/fleet", "", true, "", "", false},
		{"admin on admin page", "/admin/analytics", admin, true, "", "", false},
		{"unknown page", "/nowhere", "", true, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := srv.do(t, http.MethodGet, "/api/v1/navigation?path="+tt.path, tt.token, nil)
			var nav dtos.NavigationResponse
			decodeData(t, env, &nav)
			if nav.Render != tt.render || nav.Redirect != tt.redirect || nav.From != tt.from || nav.NotFound != tt.notFound {
				t.Errorf("Unexpected navigation %+v", nav)
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := setupServer(t, testConfig())

	code, env := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", dtos.LoginRequest{Email: "someone@example.com", Password: "whatever1"})
	if code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", code)
	}
	if env.Message != constants.MsgInvalidCredentials {
		t.Errorf("Expected %q, got %q", constants.MsgInvalidCredentials, env.Message)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := setupServer(t, testConfig())

	req := dtos.RegisterRequest{Email: "Member@FlyHelo.one", Password: "longenough", FirstName: "A", LastName: "B"}
	code, _ := srv.do(t, http.MethodPost, "/api/v1/auth/register", "", req)
	if code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", code)
	}

	req.Email = "new.member@example.com"
	code, _ = srv.do(t, http.MethodPost, "/api/v1/auth/register", "", req)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	srv := setupServer(t, testConfig())

	code, env := srv.do(t, http.MethodGet, "/api/v1/bookings", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", code)
	}
	if env.Redirect != constants.PathLogin || env.From != "/api/v1/bookings" {
		t.Errorf("Expected login redirect from /api/v1/bookings, got %q from %q", env.Redirect, env.From)
	}
}

func TestSessionExpiry(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	_, env := srv.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	var sess dtos.SessionResponse
	decodeData(t, env, &sess)
	if !sess.IsAuthenticated {
		t.Fatalf("Expected authenticated session")
	}

	srv.clock.Advance(2 * time.Hour)

	_, env = srv.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	sess = dtos.SessionResponse{}
	decodeData(t, env, &sess)
	if sess.IsAuthenticated || !sess.Expired {
		t.Errorf("Expected expired session, got %+v", sess)
	}

	_, env = srv.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	sess = dtos.SessionResponse{}
	decodeData(t, env, &sess)
	if sess.IsAuthenticated || sess.Expired {
		t.Errorf("Expected the expired session to be purged, got %+v", sess)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	if code, _ := srv.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if code, _ := srv.do(t, http.MethodGet, "/api/v1/users/me", token, nil); code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", code)
	}
	if code, _ := srv.do(t, http.MethodPost, "/api/v1/auth/logout", "", nil); code != http.StatusOK {
		t.Errorf("Expected logout without a session to succeed, got %d", code)
	}
}

func TestWizardBookingRoundTrip(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	code, env := srv.do(t, http.MethodPost, "/api/v1/bookings/wizard", token, nil)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", code, env.Message)
	}
	var draft struct {
		ID             string `json:"id"`
		Step           int    `json:"step"`
		EstimatedPrice int64  `json:"estimatedPrice"`
	}
	decodeData(t, env, &draft)
	base := "/api/v1/bookings/wizard/" + draft.ID

	steps := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPut, "/locations", map[string]any{"pickupLocationId": "loc-1", "dropoffLocationId": "loc-3"}},
		{http.MethodPost, "/next", nil},
		{http.MethodPut, "/aircraft", map[string]any{"helicopterId": "h1", "passengers": 3}},
		{http.MethodPost, "/next", nil},
		{http.MethodPut, "/schedule", map[string]any{
			"departureDate": "2025-06-11",
			"departureTime": "14:00",
			"addOns":        map[string]bool{"groundTransportation": true},
		}},
		{http.MethodPost, "/next", nil},
	}
	for _, st := range steps {
		code, env := srv.do(t, st.method, base+st.path, token, st.body)
		if code != http.StatusOK {
			t.Fatalf("%s %s failed with %d: %s %v", st.method, st.path, code, env.Message, env.Errors)
		}
		decodeData(t, env, &draft)
	}
	if draft.Step != 4 || draft.EstimatedPrice != 6750 {
		t.Fatalf("Expected review step with price 6750, got step %d price %d", draft.Step, draft.EstimatedPrice)
	}

	code, env = srv.do(t, http.MethodPost, base+"/submit", token, nil)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", code, env.Message)
	}
	var created gormModels.Booking
	decodeData(t, env, &created)

	code, env = srv.do(t, http.MethodGet, "/api/v1/bookings/"+created.ID, token, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var fetched gormModels.Booking
	decodeData(t, env, &fetched)
	if fetched.PickupLocation.ID != "loc-1" || fetched.DropoffLocation.ID != "loc-3" ||
		fetched.DepartureDate != "2025-06-11" || fetched.DepartureTime != "14:00" ||
		fetched.PassengerCount != 3 || fetched.Price != 6750 || fetched.Status != constants.BookingPending {
		t.Errorf("Fetched booking does not match submission: %+v", fetched)
	}

	if code, _ := srv.do(t, http.MethodGet, base, token, nil); code != http.StatusNotFound {
		t.Errorf("Expected submitted draft to be gone, got %d", code)
	}
}

func TestWizardSameLocationBlocked(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	_, env := srv.do(t, http.MethodPost, "/api/v1/bookings/wizard", token, nil)
	var draft struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &draft)
	base := "/api/v1/bookings/wizard/" + draft.ID

	srv.do(t, http.MethodPut, base+"/locations", token, map[string]any{"pickupLocationId": "loc-2", "dropoffLocationId": "loc-2"})
	code, env := srv.do(t, http.MethodPost, base+"/next", token, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", code)
	}
	if env.Errors["dropoffLocationId"] != constants.MsgSameLocation {
		t.Errorf("Expected same-location error on dropoff, got %v", env.Errors)
	}

	code, _ = srv.do(t, http.MethodPut, base+"/aircraft", token, map[string]any{"helicopterId": "h1", "passengers": 2})
	if code != http.StatusConflict {
		t.Errorf("Expected 409 for a step ahead of the cursor, got %d", code)
	}
}

func TestBookingOwnership(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	if code, _ := srv.do(t, http.MethodGet, "/api/v1/bookings/b2", token, nil); code != http.StatusForbidden {
		t.Errorf("Expected 403 for another member's booking, got %d", code)
	}
	if code, _ := srv.do(t, http.MethodGet, "/api/v1/bookings/missing", token, nil); code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
	if code, _ := srv.do(t, http.MethodPost, "/api/v1/bookings/b1/cancel", token, nil); code != http.StatusOK {
		t.Errorf("Expected own booking to cancel, got %d", code)
	}
	if code, _ := srv.do(t, http.MethodPost, "/api/v1/bookings/b1/cancel", token, nil); code != http.StatusConflict {
		t.Errorf("Expected 409 cancelling twice, got %d", code)
	}
}

func TestDirectBookingValidation(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "member@flyhelo.one", "member123")

	code, env := srv.do(t, http.MethodPost, "/api/v1/bookings", token, dtos.BookingCreateRequest{
		PickupLocationID:  "loc-1",
		DropoffLocationID: "loc-2",
		HelicopterID:      "h1",
		Passengers:        2,
		DepartureDate:     "2025-06-01",
		DepartureTime:     "09:00",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", code)
	}
	if env.Errors["departureDate"] != constants.MsgDateInPast {
		t.Errorf("Expected past-date error, got %v", env.Errors)
	}
}

func TestAdminBookingStatusFlow(t *testing.T) {
	srv := setupServer(t, testConfig())
	admin := srv.login(t, "admin@flyhelo.one", "admin123")

	code, env := srv.do(t, http.MethodPatch, "/api/v1/admin/bookings/b1", admin, map[string]string{"status": "completed"})
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, env.Message)
	}
	code, env = srv.do(t, http.MethodPatch, "/api/v1/admin/bookings/b1", admin, map[string]string{"status": "pending"})
	if code != http.StatusConflict || env.Message != constants.MsgInvalidTransition {
		t.Errorf("Expected 409 invalid transition, got %d %q", code, env.Message)
	}

	code, env = srv.do(t, http.MethodGet, "/api/v1/admin/bookings?status=completed", admin, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var bookings []gormModels.Booking
	decodeData(t, env, &bookings)
	if len(bookings) != 1 || bookings[0].ID != "b1" {
		t.Errorf("Expected only b1 completed, got %+v", bookings)
	}

	if code, _ := srv.do(t, http.MethodGet, "/api/v1/admin/bookings?status=lost", admin, nil); code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown status filter, got %d", code)
	}
}

func TestAdminFetchesAnyBooking(t *testing.T) {
	srv := setupServer(t, testConfig())
	admin := srv.login(t, "admin@flyhelo.one", "admin123")

	code, env := srv.do(t, http.MethodGet, "/api/v1/admin/bookings/b2", admin, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, env.Message)
	}
	var booking gormModels.Booking
	decodeData(t, env, &booking)
	if booking.ID != "b2" || booking.UserID != "user-2" {
		t.Errorf("Expected b2 owned by user-2, got %+v", booking)
	}
	if code, _ := srv.do(t, http.MethodGet, "/api/v1/admin/bookings/missing", admin, nil); code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}

	member := srv.login(t, "member@flyhelo.one", "member123")
	if code, _ := srv.do(t, http.MethodGet, "/api/v1/admin/bookings/b1", member, nil); code != http.StatusForbidden {
		t.Errorf("Expected members to be kept out of the admin tree, got %d", code)
	}
}

func TestAdminFleetAndAnalytics(t *testing.T) {
	srv := setupServer(t, testConfig())
	admin := srv.login(t, "admin@flyhelo.one", "admin123")

	code, env := srv.do(t, http.MethodGet, "/api/v1/admin/analytics?timeframe=month", admin, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, env.Message)
	}
	var report struct {
		FleetUsage int `json:"fleetUsage"`
	}
	decodeData(t, env, &report)
	if report.FleetUsage != 25 {
		t.Errorf("Expected 25%% fleet usage, got %d", report.FleetUsage)
	}

	if code, _ := srv.do(t, http.MethodGet, "/api/v1/admin/analytics?timeframe=decade", admin, nil); code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown timeframe, got %d", code)
	}

	code, _ = srv.do(t, http.MethodPost, "/api/v1/admin/fleet/h2/maintenance", admin, map[string]string{"maintenance_date": "2025-06-20"})
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}

	_, env = srv.do(t, http.MethodGet, "/api/v1/fleet?status=available", "", nil)
	var fleet []gormModels.Helicopter
	decodeData(t, env, &fleet)
	if len(fleet) != 1 || fleet[0].ID != "h1" {
		t.Errorf("Expected only h1 available after maintenance, got %d aircraft", len(fleet))
	}
}

func TestGuestBrowsesMemberTree(t *testing.T) {
	srv := setupServer(t, testConfig())
	token := srv.login(t, "guest@flyhelo.one", "guest123")

	code, env := srv.do(t, http.MethodGet, "/api/v1/bookings", token, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var bookings []gormModels.Booking
	decodeData(t, env, &bookings)
	if len(bookings) != 0 {
		t.Errorf("Expected no bookings for the guest, got %d", len(bookings))
	}
}

func TestAuthRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = 0.001
	cfg.AuthRateBurst = 2
	srv := setupServer(t, cfg)

	body := dtos.LoginRequest{Email: "nobody@example.com", Password: "password1"}
	for i := 0; i < 2; i++ {
		if code, _ := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", body); code != http.StatusUnauthorized {
			t.Fatalf("Attempt %d: expected 401, got %d", i, code)
		}
	}
	if code, _ := srv.do(t, http.MethodPost, "/api/v1/auth/login", "", body); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", code)
	}
}
