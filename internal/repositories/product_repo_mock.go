package repositories

import (
	"context"
	"sync"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// The conditional stock check runs under the mutex, giving the same
// atomicity guarantee as the SQL conditional update, so it is safe for
// concurrent-order tests.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, copyProduct(p))
	}
	return list, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product with ID %s", id)
	}
	cp := copyProduct(p)
	return &cp, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Prices {
		if product.Prices[i].ID == "" {
			product.Prices[i].ID = uuid.New().String()
		}
		product.Prices[i].ProductID = product.ID
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = copyProduct(*product)
	return nil
}

// Update replaces the catalog fields of an existing product.
func (r *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperrors.NotFound("product with ID %s", product.ID)
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Category = product.Category
	if product.Prices != nil {
		existing.Prices = append([]models.Price(nil), product.Prices...)
	}
	existing.UpdatedAt = time.Now()
	r.products[product.ID] = existing
	return nil
}

// Delete removes a product.
func (r *MockProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product with ID %s", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock checks and subtracts stock as one atomic step.
func (r *MockProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return apperrors.NotFound("product with ID %s", id)
	}
	if p.Stock < quantity {
		return apperrors.Conflict("insufficient stock for product %s", id)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

// IncrementStock adds stock back.
func (r *MockProductRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return apperrors.NotFound("product with ID %s", id)
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

func copyProduct(p models.Product) models.Product {
	p.Prices = append([]models.Price(nil), p.Prices...)
	return p
}
