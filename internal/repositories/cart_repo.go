package repositories

import (
	"context"

	"gerai/internal/models"
)

// CartRepository defines the interface for cart and cart-item data access.
// Cart rows are scoped to a single user, so no cross-user contention exists
// here; consistency is enforced by the unique index on Cart.UserID.
type CartRepository interface {
	// GetByUserID returns the user's cart with items, products and prices
	// preloaded.
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error

	// GetItem returns a cart item with its owning cart preloaded so
	// callers can verify ownership.
	GetItem(ctx context.Context, itemID string) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, itemID string) error

	// ClearItems removes every item from the cart, leaving the cart row
	// in place for reuse.
	ClearItems(ctx context.Context, cartID string) error
}
