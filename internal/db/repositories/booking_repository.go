package repositories

import (
	"context"
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/constants"
	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"gorm.io/gorm"
)

// BookingFilter narrows List. Zero values mean no constraint; From and To
// bound created_at as [From, To).
type BookingFilter struct {
	UserID string
	Status *constants.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
}

type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]gormModels.Booking, error)
	GetByID(ctx context.Context, id string) (*gormModels.Booking, error)
	Create(ctx context.Context, booking *gormModels.Booking) error
	Update(ctx context.Context, booking *gormModels.Booking, from constants.BookingStatus) error
	UpdateStatus(ctx context.Context, id string, from, to constants.BookingStatus, now time.Time) (*gormModels.Booking, error)
}

// BookingGormRepository handles the bookings table
type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// List returns bookings newest first
func (r *BookingGormRepository) List(ctx context.Context, filter BookingFilter) ([]gormModels.Booking, error) {
	var bookings []gormModels.Booking

	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetByID(ctx context.Context, id string) (*gormModels.Booking, error) {
	var b gormModels.Booking

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}

func (r *BookingGormRepository) Create(ctx context.Context, booking *gormModels.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Update writes every editable column and the status in one statement, only
// while the stored status is still from. Owner and creation stamp are never
// written. A lost race yields ErrConflict and nothing is saved.
func (r *BookingGormRepository) Update(ctx context.Context, booking *gormModels.Booking, from constants.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(booking).
		Where("status = ?", from).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(booking)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, booking.ID); err != nil {
			return err
		}
		return fmt.Errorf("booking %s no longer %s: %w", booking.ID, from, ErrConflict)
	}
	return nil
}

// UpdateStatus moves a booking from one status to another only if it is still
// in the from status. A lost race yields ErrConflict.
func (r *BookingGormRepository) UpdateStatus(ctx context.Context, id string, from, to constants.BookingStatus, now time.Time) (*gormModels.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumns(map[string]interface{}{
			"status":     to,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("booking %s no longer %s: %w", id, from, ErrConflict)
	}
	return r.GetByID(ctx, id)
}
