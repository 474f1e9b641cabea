package repositories

import (
	"context"
	"fmt"
	"strings"

	gormModels "helo-luxury-air/portal/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	List(ctx context.Context) ([]gormModels.User, error)
	GetByID(ctx context.Context, id string) (*gormModels.User, error)
	GetByEmail(ctx context.Context, email string) (*gormModels.User, error)
	Create(ctx context.Context, user *gormModels.User) error
	Update(ctx context.Context, user *gormModels.User) error

	ListSavedLocations(ctx context.Context, userID string) ([]gormModels.SavedLocation, error)
	GetSavedLocation(ctx context.Context, userID, id string) (*gormModels.SavedLocation, error)
	AddSavedLocation(ctx context.Context, loc *gormModels.SavedLocation) error
	RemoveSavedLocation(ctx context.Context, userID, id string) error

	ListPaymentMethods(ctx context.Context, userID string) ([]gormModels.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, pm *gormModels.PaymentMethod) error
	RemovePaymentMethod(ctx context.Context, userID, id string) error
}

// UserGormRepository handles users and their saved locations and payment methods
type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) List(ctx context.Context) ([]gormModels.User, error) {
	var users []gormModels.User
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID loads the full profile including saved locations and payment methods
func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Preload("SavedLocations", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("PaymentMethods", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByEmail matches case-insensitively; emails are stored lowercased.
func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error

	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *UserGormRepository) Create(ctx context.Context, user *gormModels.User) error {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		if duplicate(err) {
			return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update writes every scalar column of user. Associations are managed through
// their own methods.
func (r *UserGormRepository) Update(ctx context.Context, user *gormModels.User) error {
	user.Email = NormalizeEmail(user.Email)
	res := r.db.WithContext(ctx).
		Model(user).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

func (r *UserGormRepository) ListSavedLocations(ctx context.Context, userID string) ([]gormModels.SavedLocation, error) {
	var locs []gormModels.SavedLocation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&locs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved locations: %w", err)
	}
	return locs, nil
}

func (r *UserGormRepository) GetSavedLocation(ctx context.Context, userID, id string) (*gormModels.SavedLocation, error) {
	var loc gormModels.SavedLocation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&loc).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("saved location %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch saved location: %w", err)
	}
	return &loc, nil
}

func (r *UserGormRepository) AddSavedLocation(ctx context.Context, loc *gormModels.SavedLocation) error {
	if err := r.db.WithContext(ctx).Create(loc).Error; err != nil {
		return fmt.Errorf("failed to add saved location: %w", err)
	}
	return nil
}

func (r *UserGormRepository) RemoveSavedLocation(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&gormModels.SavedLocation{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove saved location: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saved location %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *UserGormRepository) ListPaymentMethods(ctx context.Context, userID string) ([]gormModels.PaymentMethod, error) {
	var pms []gormModels.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&pms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return pms, nil
}

// AddPaymentMethod keeps at most one default per user.
func (r *UserGormRepository) AddPaymentMethod(ctx context.Context, pm *gormModels.PaymentMethod) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if pm.IsDefault {
			if err := tx.Model(&gormModels.PaymentMethod{}).
				Where("user_id = ?", pm.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(pm).Error
	})
	if err != nil {
		return fmt.Errorf("failed to add payment method: %w", err)
	}
	return nil
}

func (r *UserGormRepository) RemovePaymentMethod(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&gormModels.PaymentMethod{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove payment method: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment method %s: %w", id, ErrNotFound)
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
