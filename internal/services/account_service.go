package services

import (
	"context"

	"gerai/internal/models"
	"gerai/internal/repositories"
)

// AccountService manages a user's delivery addresses. The order core only
// ever checks these records exist; their lifecycle lives here.
type AccountService struct {
	users repositories.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(users repositories.UserRepository) *AccountService {
	return &AccountService{
		users: users,
	}
}

// CreateDeliveryDetails stores a new delivery address for the user.
func (s *AccountService) CreateDeliveryDetails(ctx context.Context, userID string, details *models.DeliveryDetails) error {
	details.UserID = userID
	return s.users.CreateDeliveryDetails(ctx, details)
}

// GetDeliveryDetails lists the user's delivery addresses.
func (s *AccountService) GetDeliveryDetails(ctx context.Context, userID string) ([]models.DeliveryDetails, error) {
	return s.users.GetDeliveryDetailsByUser(ctx, userID)
}
