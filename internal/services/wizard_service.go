package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/logging"
	"helo-luxury-air/portal/internal/metrics"
	"helo-luxury-air/portal/internal/models/dtos"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
	"helo-luxury-air/portal/internal/wizard"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrDraftNotFound = errors.New("booking draft not found")

// WizardService keeps booking drafts in the cache and turns a confirmed
// draft into a booking. Drafts are private to the user who started them.
type WizardService struct {
	drafts   *common.CacheService
	users    repositories.UserRepository
	fleet    *FleetService
	bookings *BookingService
	metrics  *metrics.MetricsRegistry
	ttl      time.Duration
	now      func() time.Time

	mu         sync.Mutex
	submitting map[string]bool
}

func NewWizardService(
	drafts *common.CacheService,
	users repositories.UserRepository,
	fleet *FleetService,
	bookings *BookingService,
	metricsReg *metrics.MetricsRegistry,
	ttl time.Duration,
	now func() time.Time,
) *WizardService {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &WizardService{
		drafts:     drafts,
		users:      users,
		fleet:      fleet,
		bookings:   bookings,
		metrics:    metricsReg,
		ttl:        ttl,
		now:        now,
		submitting: map[string]bool{},
	}
}

// Start opens a draft preloaded with the user's saved locations and the
// bookable fleet.
func (s *WizardService) Start(ctx context.Context, user common.SessionUser) (wizard.View, error) {
	catalog, err := s.loadCatalog(ctx, user.ID)
	if err != nil {
		return wizard.View{}, err
	}

	w := wizard.New(uuid.NewString(), user.ID, catalog, s.now())
	s.mu.Lock()
	s.store(w)
	s.mu.Unlock()

	logging.Debug("Booking draft started", "draft_id", w.ID, "user_id", user.ID)
	return w.View(), nil
}

func (s *WizardService) Get(user common.SessionUser, id string) (wizard.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.load(user, id)
	if err != nil {
		return wizard.View{}, err
	}
	return w.View(), nil
}

func (s *WizardService) SetLocations(user common.SessionUser, id string, step wizard.LocationsStep) (wizard.View, error) {
	return s.mutate(user, id, func(w *wizard.Wizard) error {
		return w.SetLocations(step, s.now())
	})
}

func (s *WizardService) SetAircraft(user common.SessionUser, id string, step wizard.AircraftStep) (wizard.View, error) {
	return s.mutate(user, id, func(w *wizard.Wizard) error {
		return w.SetAircraft(step, s.now())
	})
}

func (s *WizardService) SetSchedule(user common.SessionUser, id string, step wizard.ScheduleStep) (wizard.View, error) {
	return s.mutate(user, id, func(w *wizard.Wizard) error {
		return w.SetSchedule(step, s.now())
	})
}

// Next returns the view alongside a *wizard.ValidationError when the current
// step blocks, so the caller can render the recorded field errors.
func (s *WizardService) Next(user common.SessionUser, id string) (wizard.View, error) {
	view, err := s.mutate(user, id, func(w *wizard.Wizard) error {
		return w.Next(s.now())
	})
	switch {
	case err == nil:
		s.countStep("next", "ok")
	case errors.Is(err, wizard.ErrValidation):
		s.countStep("next", "blocked")
	}
	return view, err
}

func (s *WizardService) Back(user common.SessionUser, id string) (wizard.View, error) {
	view, err := s.mutate(user, id, func(w *wizard.Wizard) error {
		w.Back(s.now())
		return nil
	})
	if err == nil {
		s.countStep("back", "ok")
	}
	return view, err
}

// Submit books the reviewed draft. Locations and aircraft are re-read by id;
// a missing one aborts with field errors and no booking is written.
func (s *WizardService) Submit(ctx context.Context, user common.SessionUser, id string) (*gormModels.Booking, error) {
	s.mu.Lock()
	w, err := s.load(user, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.submitting[id] {
		s.mu.Unlock()
		return nil, wizard.ErrAlreadySubmitted
	}
	sub, err := w.Submission(s.now())
	if err != nil {
		s.store(w)
		s.mu.Unlock()
		return nil, err
	}
	s.submitting[id] = true
	s.mu.Unlock()

	booking, err := s.book(ctx, user, *sub)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submitting, id)
	if err != nil {
		return nil, err
	}
	w.MarkSubmitted(s.now())
	s.drafts.Delete(draftKey(id))
	return booking, nil
}

// CreateDirect runs a one-shot request through the same steps and checks as
// the wizard without storing a draft.
func (s *WizardService) CreateDirect(ctx context.Context, user common.SessionUser, req dtos.BookingCreateRequest) (*gormModels.Booking, error) {
	catalog, err := s.loadCatalog(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	w := wizard.New(uuid.NewString(), user.ID, catalog, now)
	steps := []func() error{
		func() error {
			return w.SetLocations(wizard.LocationsStep{PickupID: req.PickupLocationID, DropoffID: req.DropoffLocationID}, now)
		},
		func() error { return w.Next(now) },
		func() error {
			return w.SetAircraft(wizard.AircraftStep{HelicopterID: req.HelicopterID, Passengers: req.Passengers}, now)
		},
		func() error { return w.Next(now) },
		func() error {
			return w.SetSchedule(wizard.ScheduleStep{
				Date:            req.DepartureDate,
				Time:            req.DepartureTime,
				AddOns:          req.AddOns,
				SpecialRequests: req.SpecialRequests,
			}, now)
		},
		func() error { return w.Next(now) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	sub, err := w.Submission(now)
	if err != nil {
		return nil, err
	}
	return s.book(ctx, user, *sub)
}

func (s *WizardService) book(ctx context.Context, user common.SessionUser, sub wizard.Submission) (*gormModels.Booking, error) {
	pickup, dropoff, heli, err := s.resolve(ctx, user.ID, sub)
	if err != nil {
		return nil, err
	}

	b := wizard.BuildBooking(sub, wizard.Customer{
		ID:    user.ID,
		Name:  user.FirstName + " " + user.LastName,
		Email: user.Email,
	}, *pickup, *dropoff, *heli)
	return s.bookings.Create(ctx, &b)
}

func (s *WizardService) resolve(ctx context.Context, userID string, sub wizard.Submission) (*gormModels.SavedLocation, *gormModels.SavedLocation, *gormModels.Helicopter, error) {
	var (
		pickup, dropoff *gormModels.SavedLocation
		heli            *gormModels.Helicopter
	)

	// a miss leaves the pointer nil; only real failures stop the group
	var g errgroup.Group
	g.Go(func() (err error) { pickup, err = s.users.GetSavedLocation(ctx, userID, sub.PickupID); return ignoreNotFound(err) })
	g.Go(func() (err error) { dropoff, err = s.users.GetSavedLocation(ctx, userID, sub.DropoffID); return ignoreNotFound(err) })
	g.Go(func() (err error) { heli, err = s.fleet.Get(ctx, sub.HelicopterID); return ignoreNotFound(err) })
	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve booking selection: %w", err)
	}

	fields := map[string]string{}
	if pickup == nil {
		fields[wizard.FieldPickup] = constants.MsgUnknownLocation
	}
	if dropoff == nil {
		fields[wizard.FieldDropoff] = constants.MsgUnknownLocation
	}
	// the draft's catalog may predate a status change
	if heli == nil || heli.Status != constants.AircraftAvailable {
		fields[wizard.FieldHelicopter] = constants.MsgUnknownHelicopter
	}
	if len(fields) > 0 {
		return nil, nil, nil, &InputError{Fields: fields}
	}
	return pickup, dropoff, heli, nil
}

func (s *WizardService) loadCatalog(ctx context.Context, userID string) (wizard.Catalog, error) {
	var catalog wizard.Catalog

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		locs, err := s.users.ListSavedLocations(gctx, userID)
		if err != nil {
			return err
		}
		catalog.Locations = locs
		return nil
	})
	g.Go(func() error {
		available := constants.AircraftAvailable
		fleet, err := s.fleet.List(gctx, &available)
		if err != nil {
			return err
		}
		catalog.Helicopters = fleet
		return nil
	})
	if err := g.Wait(); err != nil {
		return wizard.Catalog{}, fmt.Errorf("failed to load booking options: %w", err)
	}
	return catalog, nil
}

// mutate applies fn to a draft under the service lock and re-stores it,
// refreshing its TTL. The view is returned even when fn fails.
func (s *WizardService) mutate(user common.SessionUser, id string, fn func(*wizard.Wizard) error) (wizard.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.load(user, id)
	if err != nil {
		return wizard.View{}, err
	}
	if s.submitting[id] {
		return w.View(), wizard.ErrAlreadySubmitted
	}
	fnErr := fn(w)
	s.store(w)
	return w.View(), fnErr
}

// load must be called with s.mu held.
func (s *WizardService) load(user common.SessionUser, id string) (*wizard.Wizard, error) {
	val, found := s.drafts.Get(draftKey(id))
	if !found {
		return nil, ErrDraftNotFound
	}
	w := val.(*wizard.Wizard)
	if w.UserID != user.ID {
		return nil, ErrDraftNotFound
	}
	return w, nil
}

func (s *WizardService) store(w *wizard.Wizard) {
	s.drafts.Set(draftKey(w.ID), w, s.ttl)
}

func (s *WizardService) countStep(direction, outcome string) {
	if s.metrics != nil {
		s.metrics.WizardStepTransitions.WithLabelValues(direction, outcome).Inc()
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}

func draftKey(id string) string {
	return string(constants.CachePrefixWizardDraft) + id
}
