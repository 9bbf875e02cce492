package repositories

import (
	"context"
	"sync"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository. When
// constructed with a product repository it emulates the GORM preloads by
// attaching product records to returned items.
type MockCartRepository struct {
	carts    map[string]models.Cart     // keyed by cart ID
	items    map[string]models.CartItem // keyed by item ID
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
// products may be nil if tests never rely on preloaded products.
func NewMockCartRepository(products *MockProductRepository) *MockCartRepository {
	return &MockCartRepository{
		carts:    make(map[string]models.Cart),
		items:    make(map[string]models.CartItem),
		products: products,
	}
}

// GetByUserID returns the user's cart with its items attached.
func (r *MockCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.UserID == userID {
			cart := c
			cart.Items = r.itemsForCart(ctx, cart.ID)
			return &cart, nil
		}
	}
	return nil, apperrors.NotFound("cart for user %s", userID)
}

// Create adds a new cart row.
func (r *MockCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = time.Now()
	stored := *cart
	stored.Items = nil
	r.carts[cart.ID] = stored
	return nil
}

// GetItem returns a cart item with its owning cart attached.
func (r *MockCartRepository) GetItem(ctx context.Context, itemID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[itemID]
	if !ok {
		return nil, apperrors.NotFound("cart item with ID %s", itemID)
	}
	item := it
	if cart, ok := r.carts[item.CartID]; ok {
		c := cart
		item.Cart = &c
	}
	r.attachProduct(ctx, &item)
	return &item, nil
}

// CreateItem adds a line item.
func (r *MockCartRepository) CreateItem(ctx context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	stored := *item
	stored.Product = nil
	stored.Cart = nil
	r.items[item.ID] = stored
	return nil
}

// UpdateItem updates quantity and advisory price of a line item.
func (r *MockCartRepository) UpdateItem(ctx context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[item.ID]
	if !ok {
		return apperrors.NotFound("cart item with ID %s", item.ID)
	}
	it.Quantity = item.Quantity
	it.Price = item.Price
	it.UpdatedAt = time.Now()
	r.items[item.ID] = it
	return nil
}

// DeleteItem removes a line item.
func (r *MockCartRepository) DeleteItem(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return apperrors.NotFound("cart item with ID %s", itemID)
	}
	delete(r.items, itemID)
	return nil
}

// ClearItems removes every item of a cart.
func (r *MockCartRepository) ClearItems(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, it := range r.items {
		if it.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

// itemsForCart must be called with the read lock held.
func (r *MockCartRepository) itemsForCart(ctx context.Context, cartID string) []models.CartItem {
	var list []models.CartItem
	for _, it := range r.items {
		if it.CartID == cartID {
			item := it
			r.attachProduct(ctx, &item)
			list = append(list, item)
		}
	}
	return list
}

func (r *MockCartRepository) attachProduct(ctx context.Context, item *models.CartItem) {
	if r.products == nil {
		return
	}
	if p, err := r.products.GetByID(ctx, item.ProductID); err == nil {
		item.Product = p
	}
}
