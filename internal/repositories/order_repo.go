package repositories

import (
	"context"

	"gerai/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// created once with their items; only status and the email flag are ever
// updated afterwards.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error

	// UpdateStatus transitions an order from one status to another as a
	// single conditional write; a stale from value yields a conflict.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error
	MarkEmailSent(ctx context.Context, id string) error
}
