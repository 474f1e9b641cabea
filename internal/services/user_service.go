package services

import (
	"context"
	"strings"
	"time"
	"unicode"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/logging"
	"helo-luxury-air/portal/internal/models/dtos"
	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"github.com/google/uuid"
)

// SessionRevoker ends all sessions of a user. AuthService implements it.
type SessionRevoker interface {
	RevokeUserSessions(ctx context.Context, userID string) error
}

type UserService struct {
	repo     repositories.UserRepository
	sessions SessionRevoker
	latency  *common.Latency
	now      func() time.Time
}

// NewUserService builds the profile service; sessions may be nil when no
// sessions need revoking, as in tools and some tests.
func NewUserService(repo repositories.UserRepository, sessions SessionRevoker, latency *common.Latency, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{repo: repo, sessions: sessions, latency: latency, now: now}
}

func (s *UserService) List(ctx context.Context) ([]gormModels.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*gormModels.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile merges a partial update. Role and tier belong to admins.
func (s *UserService) UpdateProfile(ctx context.Context, actor common.SessionUser, id string, patch dtos.ProfilePatchRequest) (*gormModels.User, error) {
	isAdmin := actor.Role == constants.RoleAdmin
	if !isAdmin && actor.ID != id {
		return nil, ErrForbidden
	}
	if !isAdmin && (patch.Role != nil || patch.MembershipTier != nil) {
		return nil, ErrForbidden
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, newInputError("role", constants.MsgInvalidRole)
	}
	if patch.MembershipTier != nil && !patch.MembershipTier.Valid() {
		return nil, newInputError("membershipTier", constants.MsgInvalidTier)
	}
	if patch.FirstName != nil && strings.TrimSpace(*patch.FirstName) == "" {
		return nil, newInputError("firstName", constants.MsgFieldRequired)
	}
	if patch.LastName != nil && strings.TrimSpace(*patch.LastName) == "" {
		return nil, newInputError("lastName", constants.MsgFieldRequired)
	}

	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		user.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		user.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if a := patch.Address; a != nil {
		user.Address = gormModels.Address{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country}
	}
	if c := patch.EmergencyContact; c != nil {
		user.EmergencyContact = gormModels.EmergencyContact{Name: c.Name, Relationship: c.Relationship, PhoneNumber: c.PhoneNumber}
	}
	if p := patch.Preferences; p != nil {
		user.Preferences = gormModels.Preferences{Notifications: p.Notifications, MarketingEmails: p.MarketingEmails, DarkMode: p.DarkMode}
	}
	privilegesChanged := false
	if patch.Role != nil && *patch.Role != user.Role {
		user.Role = *patch.Role
		privilegesChanged = true
	}
	if patch.MembershipTier != nil && (user.MembershipTier == nil || *user.MembershipTier != *patch.MembershipTier) {
		tier := *patch.MembershipTier
		user.MembershipTier = &tier
		privilegesChanged = true
	}
	user.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	logging.Info("Profile updated", "user_id", id, "actor_id", actor.ID)

	// sessions carry a copy of role and tier
	if privilegesChanged && s.sessions != nil {
		if err := s.sessions.RevokeUserSessions(ctx, id); err != nil {
			logging.Error("Role change saved but sessions survive", "user_id", id, "error", err)
			return nil, err
		}
	}
	return user, nil
}

func (s *UserService) SavedLocations(ctx context.Context, userID string) ([]gormModels.SavedLocation, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListSavedLocations(ctx, userID)
}

func (s *UserService) AddSavedLocation(ctx context.Context, userID string, req dtos.SavedLocationRequest) (*gormModels.SavedLocation, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = constants.MsgFieldRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = constants.MsgFieldRequired
	}
	if req.Type == "" {
		req.Type = constants.SavedLocationOther
	} else if !req.Type.Valid() {
		fields["type"] = constants.MsgInvalidType
	}
	if len(fields) > 0 {
		return nil, &InputError{Fields: fields}
	}

	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	loc := &gormModels.SavedLocation{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Coordinates: gormModels.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude},
		Type:        req.Type,
		CreatedAt:   s.now(),
	}
	if err := s.repo.AddSavedLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *UserService) RemoveSavedLocation(ctx context.Context, userID, id string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}
	return s.repo.RemoveSavedLocation(ctx, userID, id)
}

func (s *UserService) PaymentMethods(ctx context.Context, userID string) ([]gormModels.PaymentMethod, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentMethods(ctx, userID)
}

// AddPaymentMethod stores a masked reference only; full card numbers never
// reach this service.
func (s *UserService) AddPaymentMethod(ctx context.Context, userID string, req dtos.PaymentMethodRequest) (*gormModels.PaymentMethod, error) {
	fields := map[string]string{}
	if !req.Type.Valid() {
		fields["type"] = constants.MsgInvalidType
	}
	if len(req.LastFour) != 4 || strings.IndexFunc(req.LastFour, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		fields["lastFour"] = constants.MsgFieldRequired
	}
	if len(fields) > 0 {
		return nil, &InputError{Fields: fields}
	}

	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	pm := &gormModels.PaymentMethod{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       req.Type,
		LastFour:   req.LastFour,
		ExpiryDate: req.ExpiryDate,
		IsDefault:  req.IsDefault,
		CardBrand:  req.CardBrand,
		CreatedAt:  s.now(),
	}
	if err := s.repo.AddPaymentMethod(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *UserService) RemovePaymentMethod(ctx context.Context, userID, id string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}
	return s.repo.RemovePaymentMethod(ctx, userID, id)
}
