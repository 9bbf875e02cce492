package repositories

import (
	"context"
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with ID %s", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user with email %s", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// CreateDeliveryDetails stores a delivery address for a user.
func (r *GORMUserRepository) CreateDeliveryDetails(ctx context.Context, details *models.DeliveryDetails) error {
	if details.ID == "" {
		details.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(details).Error; err != nil {
		return fmt.Errorf("failed to create delivery details: %w", err)
	}
	return nil
}

// GetDeliveryDetails retrieves a delivery-details record by ID.
func (r *GORMUserRepository) GetDeliveryDetails(ctx context.Context, id string) (*models.DeliveryDetails, error) {
	var details models.DeliveryDetails
	if err := r.db.WithContext(ctx).First(&details, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("delivery details with ID %s", id)
		}
		return nil, fmt.Errorf("failed to get delivery details %s: %w", id, err)
	}
	return &details, nil
}

// GetDeliveryDetailsByUser lists a user's delivery addresses.
func (r *GORMUserRepository) GetDeliveryDetailsByUser(ctx context.Context, userID string) ([]models.DeliveryDetails, error) {
	var details []models.DeliveryDetails
	if err := r.db.WithContext(ctx).Find(&details, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivery details for user %s: %w", userID, err)
	}
	return details, nil
}
