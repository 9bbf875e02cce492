package services_test

import (
	"context"
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartEnv struct {
	products *repositories.MockProductRepository
	carts    *repositories.MockCartRepository
	service  *services.CartService
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()

	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository(products)

	require.NoError(t, products.Create(context.Background(), &models.Product{
		ID:    "prod-1",
		Name:  "Batik Shirt",
		Stock: 10,
		Prices: []models.Price{
			{Size: models.SizeMedium, Value: 10.00},
			{Size: models.SizeLarge, Value: 12.50},
		},
	}))

	return &cartEnv{
		products: products,
		carts:    carts,
		service:  services.NewCartService(carts, products),
	}
}

func TestCartService_AddItem_CreatesCartOnFirstUse(t *testing.T) {
	env := newCartEnv(t)

	cart, err := env.service.AddItem(context.Background(), "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)

	assert.Equal(t, "user-1", cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 10.00, cart.Items[0].Price)
	assert.Equal(t, 20.00, cart.Total)
}

func TestCartService_AddItem_MergesSameProductAndSize(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	_, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.00, cart.Total)
}

func TestCartService_AddItem_DifferentSizesStaySeparate(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	_, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 1)
	require.NoError(t, err)

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeLarge, 1)
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 22.50, cart.Total)
}

func TestCartService_AddItem_InsufficientStock(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	_, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 11)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The merged quantity is checked, not just the increment.
	_, err = env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 6)
	require.NoError(t, err)
	_, err = env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 6)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	cart, err := env.service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 6, cart.Items[0].Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	env := newCartEnv(t)

	_, err := env.service.AddItem(context.Background(), "user-1", "ghost", models.SizeMedium, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_AddItem_MissingSizePrice(t *testing.T) {
	env := newCartEnv(t)

	_, err := env.service.AddItem(context.Background(), "user-1", "prod-1", models.SizeSmall, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCartService_AddItem_InvalidInput(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	_, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.service.AddItem(ctx, "user-1", "prod-1", models.Size("gigantic"), 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = env.service.UpdateItemQuantity(ctx, "user-1", itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 40.00, cart.Total)
}

func TestCartService_UpdateItemQuantity_ExceedsStock(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = env.service.UpdateItemQuantity(ctx, "user-1", itemID, 11)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// A rejected update leaves the line item untouched.
	cart, err = env.service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_UpdateItemQuantity_Forbidden(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)

	_, err = env.service.UpdateItemQuantity(ctx, "user-2", cart.Items[0].ID, 3)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCartService_RemoveItem(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)

	cart, err = env.service.RemoveItem(ctx, "user-1", cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.00, cart.Total)
}

func TestCartService_RemoveItem_Forbidden(t *testing.T) {
	env := newCartEnv(t)
	ctx := context.Background()

	cart, err := env.service.AddItem(ctx, "user-1", "prod-1", models.SizeMedium, 2)
	require.NoError(t, err)

	_, err = env.service.RemoveItem(ctx, "user-2", cart.Items[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.service.RemoveItem(ctx, "user-1", "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_GetCart_NotFound(t *testing.T) {
	env := newCartEnv(t)

	_, err := env.service.GetCart(context.Background(), "user-without-cart")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
