package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/logging"
	"helo-luxury-air/portal/internal/metrics"
	"helo-luxury-air/portal/internal/models/dtos"
	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type AuthConfig struct {
	SessionTTL    time.Duration
	RememberMeTTL time.Duration
}

// AuthService issues and resolves bearer sessions.
type AuthService struct {
	users    repositories.UserRepository
	sessions common.SessionStore
	tokens   *auth.TokenIssuer
	latency  *common.Latency
	metrics  *metrics.MetricsRegistry
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(
	users repositories.UserRepository,
	sessions common.SessionStore,
	tokens *auth.TokenIssuer,
	latency *common.Latency,
	metricsReg *metrics.MetricsRegistry,
	cfg AuthConfig,
	now func() time.Time,
) *AuthService {
	if now == nil {
		now = time.Now
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.RememberMeTTL <= 0 {
		cfg.RememberMeTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		latency:  latency,
		metrics:  metricsReg,
		cfg:      cfg,
		now:      now,
	}
}

// Login accepts stored credentials only. Anything that does not match is
// ErrInvalidCredentials, never a fabricated user.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*common.Session, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.countLogin("login", "invalid")
			return nil, ErrInvalidCredentials
		}
		s.countLogin("login", "error")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.countLogin("login", "invalid")
		return nil, ErrInvalidCredentials
	}

	session, err := s.startSession(ctx, user, req.RememberMe)
	if err != nil {
		s.countLogin("login", "error")
		return nil, err
	}
	s.countLogin("login", "success")
	logging.Info("User logged in", "user_id", user.ID, "role", user.Role, "remember_me", req.RememberMe)
	return session, nil
}

// Register creates a standard-tier member and signs them in.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*common.Session, error) {
	if fields := validateRegistration(req); len(fields) > 0 {
		return nil, &InputError{Fields: fields}
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		s.countLogin("register", "duplicate")
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrNotFound) {
		s.countLogin("register", "error")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.countLogin("register", "error")
		return nil, err
	}
	tier := constants.TierStandard
	user := &gormModels.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		PasswordHash:   hash,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Role:           constants.RoleMember,
		MembershipTier: &tier,
		Preferences:    gormModels.Preferences{Notifications: true},
		CreatedAt:      s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration won the unique email index
		if errors.Is(err, repositories.ErrDuplicate) {
			s.countLogin("register", "duplicate")
			return nil, ErrEmailAlreadyRegistered
		}
		s.countLogin("register", "error")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	session, err := s.startSession(ctx, user, false)
	if err != nil {
		s.countLogin("register", "error")
		return nil, err
	}
	s.countLogin("register", "success")
	logging.Info("User registered", "user_id", user.ID)
	return session, nil
}

// Logout always succeeds; an unknown or malformed token has nothing to clear.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID()); err != nil {
		logging.Warn("Failed to delete session", "session_id", claims.SessionID(), "error", err)
	}
	return nil
}

// CurrentSession resolves a bearer token. An expired session is purged and
// reported once as common.ErrSessionExpired.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*common.Session, error) {
	if token == "" {
		return nil, common.ErrSessionNotFound
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, common.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) && s.metrics != nil {
			s.metrics.SessionsExpiredTotal.Inc()
		}
		return nil, err
	}
	if session.Token != token {
		return nil, common.ErrSessionNotFound
	}
	return session, nil
}

// RevokeUserSessions ends every live session of the user, so the next request
// must log in again and picks up the user's current role and tier.
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID string) error {
	n, err := s.sessions.DeleteForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	logging.Info("Sessions revoked", "user_id", userID, "count", n)
	return nil
}

func (s *AuthService) startSession(ctx context.Context, user *gormModels.User, rememberMe bool) (*common.Session, error) {
	now := s.now()
	ttl := s.cfg.SessionTTL
	if rememberMe {
		ttl = s.cfg.RememberMeTTL
	}

	session := &common.Session{
		ID: uuid.NewString(),
		User: common.SessionUser{
			ID:             user.ID,
			Email:          user.Email,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			Role:           user.Role,
			MembershipTier: user.MembershipTier,
		},
		RememberMe: rememberMe,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	token, err := s.tokens.Issue(session.ID, user.ID, user.Role, now, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	session.Token = token

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

func (s *AuthService) countLogin(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(kind, outcome).Inc()
	}
}

func validateRegistration(req dtos.RegisterRequest) map[string]string {
	fields := map[string]string{}
	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		fields["email"] = constants.MsgFieldRequired
	case !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		fields["email"] = constants.MsgInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = constants.MsgPasswordTooShort
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["first_name"] = constants.MsgFieldRequired
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["last_name"] = constants.MsgFieldRequired
	}
	return fields
}
