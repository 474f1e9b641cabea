package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
)

// BookingService owns the booking lifecycle. Every exported call waits the
// configured latency before touching storage.
type BookingService struct {
	bookings repositories.BookingRepository
	fleet    repositories.HelicopterRepository
	latency  *common.Latency
	events   common.EventPublisher
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

func NewBookingService(
	bookings repositories.BookingRepository,
	fleet repositories.HelicopterRepository,
	latency *common.Latency,
	events common.EventPublisher,
	metricsReg *metrics.MetricsRegistry,
	now func() time.Time,
) *BookingService {
	if now == nil {
		now = time.Now
	}
	if events == nil {
		events = common.LogEventPublisher{}
	}
	return &BookingService{
		bookings: bookings,
		fleet:    fleet,
		latency:  latency,
		events:   events,
		metrics:  metricsReg,
		now:      now,
	}
}

func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]gormModels.Booking, error) {
	return s.List(ctx, repositories.BookingFilter{UserID: userID})
}

func (s *BookingService) List(ctx context.Context, filter repositories.BookingFilter) ([]gormModels.Booking, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.bookings.List(ctx, filter)
}

// Recent feeds the admin dashboard.
func (s *BookingService) Recent(ctx context.Context, limit int) ([]gormModels.Booking, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.List(ctx, repositories.BookingFilter{Limit: limit})
}

// Get returns a booking the actor may see: admins see all, others their own.
func (s *BookingService) Get(ctx context.Context, actor common.SessionUser, id string) (*gormModels.Booking, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

// Create stores a new pending booking. The id is assigned here and the row is
// readable as soon as Create returns.
func (s *BookingService) Create(ctx context.Context, booking *gormModels.Booking) (*gormModels.Booking, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	if booking.PickupLocation.ID == booking.DropoffLocation.ID {
		return nil, newInputError(wizard.FieldDropoff, constants.MsgSameLocation)
	}
	if booking.PassengerCount < wizard.MinPassengers || booking.PassengerCount > wizard.MaxPassengers {
		return nil, newInputError(wizard.FieldPassengers, constants.MsgPassengersOutOfRange)
	}
	if msg := departureDateProblem(booking.DepartureDate, s.now()); msg != "" {
		return nil, newInputError(wizard.FieldDate, msg)
	}

	now := s.now()
	booking.ID = uuid.NewString()
	booking.Status = constants.BookingPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := s.bookings.Create(ctx, booking); err != nil {
		logging.Error("Booking create failed", "user_id", booking.UserID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBookingCreateFailed, err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.Inc()
		s.metrics.BookingRevenueTotal.Add(float64(booking.Price))
	}
	s.publish(ctx, common.EventBookingCreated, booking, booking.UserID)
	logging.Info("Booking created", "booking_id", booking.ID, "user_id", booking.UserID, "price", booking.Price)
	return booking, nil
}

// Update applies an admin patch. Field edits and a status change are checked
// first and then written together, so a rejected patch changes nothing.
func (s *BookingService) Update(ctx context.Context, actor common.SessionUser, id string, patch dtos.BookingPatchRequest) (*gormModels.Booking, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, newInputError("status", constants.MsgInvalidStatus)
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	changeStatus := patch.Status != nil && *patch.Status != from
	if changeStatus && !from.CanTransitionTo(*patch.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, *patch.Status)
	}

	edited := false
	if patch.DepartureDate != nil {
		if msg := departureDateProblem(*patch.DepartureDate, s.now()); msg != "" {
			return nil, newInputError(wizard.FieldDate, msg)
		}
		b.DepartureDate = *patch.DepartureDate
		edited = true
	}
	if patch.DepartureTime != nil {
		if _, err := time.Parse(wizard.TimeLayout, *patch.DepartureTime); err != nil {
			return nil, newInputError(wizard.FieldTime, constants.MsgInvalidTime)
		}
		b.DepartureTime = *patch.DepartureTime
		edited = true
	}
	if patch.SpecialRequests != nil {
		b.SpecialRequests = strings.TrimSpace(*patch.SpecialRequests)
		edited = true
	}
	if patch.HelicopterID != nil && *patch.HelicopterID != b.HelicopterID {
		h, err := s.fleet.GetByID(ctx, *patch.HelicopterID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, newInputError(wizard.FieldHelicopter, constants.MsgUnknownHelicopter)
			}
			return nil, err
		}
		b.HelicopterID = h.ID
		b.Price = wizard.EstimatePrice(h.Surcharge, b.PassengerCount, b.AddOns)
		edited = true
	}

	if !edited && !changeStatus {
		return b, nil
	}
	if changeStatus {
		b.Status = *patch.Status
	}
	b.UpdatedAt = s.now()
	if err := s.bookings.Update(ctx, b, from); err != nil {
		return nil, err
	}

	if edited {
		s.publish(ctx, common.EventBookingUpdated, b, actor.ID)
	}
	if changeStatus {
		s.statusChanged(ctx, actor, b, from)
	}
	return b, nil
}

// UpdateStatus moves a booking along pending→confirmed|cancelled and
// confirmed→completed|cancelled. Anything else is ErrInvalidTransition.
func (s *BookingService) UpdateStatus(ctx context.Context, actor common.SessionUser, id string, status constants.BookingStatus) (*gormModels.Booking, error) {
	if !status.Valid() {
		return nil, newInputError("status", constants.MsgInvalidStatus)
	}
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, b, status)
}

// Cancel is open to the booking's owner and to admins.
func (s *BookingService) Cancel(ctx context.Context, actor common.SessionUser, id string) (*gormModels.Booking, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, b) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, actor, b, constants.BookingCancelled)
}

func (s *BookingService) transition(ctx context.Context, actor common.SessionUser, b *gormModels.Booking, to constants.BookingStatus) (*gormModels.Booking, error) {
	if !b.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, to)
	}

	updated, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, to, s.now())
	if err != nil {
		return nil, err
	}
	s.statusChanged(ctx, actor, updated, b.Status)
	return updated, nil
}

func (s *BookingService) statusChanged(ctx context.Context, actor common.SessionUser, b *gormModels.Booking, from constants.BookingStatus) {
	if s.metrics != nil {
		s.metrics.BookingStatusChanges.WithLabelValues(string(b.Status)).Inc()
	}
	s.publish(ctx, common.EventBookingStatusChanged, b, actor.ID)
	logging.Info("Booking status changed", "booking_id", b.ID, "from", from, "to", b.Status, "actor_id", actor.ID)
}

// publish never fails the caller; the booking is already stored.
func (s *BookingService) publish(ctx context.Context, kind string, b *gormModels.Booking, actorID string) {
	err := s.events.PublishBookingEvent(ctx, common.BookingEvent{
		Type:      kind,
		BookingID: b.ID,
		UserID:    b.UserID,
		Status:    b.Status,
		Price:     b.Price,
		ActorID:   actorID,
		At:        s.now(),
	})
	if err != nil {
		logging.Warn("Failed to publish booking event", "type", kind, "booking_id", b.ID, "error", err)
	}
}

func canSee(actor common.SessionUser, b *gormModels.Booking) bool {
	return actor.Role == constants.RoleAdmin || b.UserID == actor.ID
}

func departureDateProblem(date string, now time.Time) string {
	if date == "" {
		return constants.MsgFieldRequired
	}
	d, err := time.ParseInLocation(wizard.DateLayout, date, now.Location())
	if err != nil {
		return constants.MsgInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return constants.MsgDateInPast
	}
	return ""
}
