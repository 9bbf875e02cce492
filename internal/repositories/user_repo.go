package repositories

import (
	"context"

	"gerai/internal/models"
)

// UserRepository defines the interface for user and delivery-details data
// access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	CreateDeliveryDetails(ctx context.Context, details *models.DeliveryDetails) error
	GetDeliveryDetails(ctx context.Context, id string) (*models.DeliveryDetails, error)
	GetDeliveryDetailsByUser(ctx context.Context, userID string) ([]models.DeliveryDetails, error)
}
