package repositories

import (
	"context"

	"gerai/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// DecrementStock and IncrementStock are the only sanctioned ways to mutate
// stock. DecrementStock is an atomic conditional update: it fails with a
// conflict instead of ever letting stock go negative, even under concurrent
// callers.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) error
	IncrementStock(ctx context.Context, id string, quantity int) error
}
