package repositories

import (
	"context"
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/constants"
	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"gorm.io/gorm"
)

type HelicopterRepository interface {
	List(ctx context.Context, status *constants.AircraftStatus) ([]gormModels.Helicopter, error)
	GetByID(ctx context.Context, id string) (*gormModels.Helicopter, error)
	UpdateStatus(ctx context.Context, id string, status constants.AircraftStatus, now time.Time) (*gormModels.Helicopter, error)
	ScheduleMaintenance(ctx context.Context, id string, date time.Time, now time.Time) (*gormModels.Helicopter, error)
}

// HelicopterGormRepository handles the fleet table
type HelicopterGormRepository struct {
	db *gorm.DB
}

func NewHelicopterGormRepository(db *gorm.DB) *HelicopterGormRepository {
	return &HelicopterGormRepository{db: db}
}

// List returns the fleet ordered by id, optionally narrowed to one status
func (r *HelicopterGormRepository) List(ctx context.Context, status *constants.AircraftStatus) ([]gormModels.Helicopter, error) {
	var fleet []gormModels.Helicopter

	q := r.db.WithContext(ctx).Order("id ASC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Find(&fleet).Error; err != nil {
		return nil, fmt.Errorf("failed to list helicopters: %w", err)
	}
	return fleet, nil
}

func (r *HelicopterGormRepository) GetByID(ctx context.Context, id string) (*gormModels.Helicopter, error) {
	var h gormModels.Helicopter

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&h).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("helicopter %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch helicopter: %w", err)
	}
	return &h, nil
}

func (r *HelicopterGormRepository) UpdateStatus(ctx context.Context, id string, status constants.AircraftStatus, now time.Time) (*gormModels.Helicopter, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": now,
	})
}

// ScheduleMaintenance books the next maintenance slot and grounds the aircraft
func (r *HelicopterGormRepository) ScheduleMaintenance(ctx context.Context, id string, date time.Time, now time.Time) (*gormModels.Helicopter, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"next_maintenance": date,
		"status":           constants.AircraftMaintenance,
		"updated_at":       now,
	})
}

// updateColumns bypasses the save hooks so the feature column is left alone
func (r *HelicopterGormRepository) updateColumns(ctx context.Context, id string, cols map[string]interface{}) (*gormModels.Helicopter, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Helicopter{}).
		Where("id = ?", id).
		UpdateColumns(cols)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update helicopter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("helicopter %s: %w", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}
