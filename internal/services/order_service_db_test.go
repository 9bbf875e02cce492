package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database. The database name is
// derived from the test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DeliveryDetails{},
		&models.Product{},
		&models.Price{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

type dbEnv struct {
	db       *gorm.DB
	users    repositories.UserRepository
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	service  *services.OrderService
}

func newDBEnv(t *testing.T) *dbEnv {
	t.Helper()

	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	products := repositories.NewGORMProductRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	tx := repositories.NewGormTxRunner(db)

	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{
		ID:       "user-1",
		Name:     "Test Buyer",
		Email:    "buyer@example.com",
		Password: "irrelevant",
	}))
	require.NoError(t, users.CreateDeliveryDetails(ctx, &models.DeliveryDetails{
		ID:      "details-1",
		UserID:  "user-1",
		Address: "Jalan Merdeka 1",
		City:    "Jakarta",
		Pincode: 10110,
		Country: "Indonesia",
		Phone:   "+62-812-0000-0000",
	}))
	require.NoError(t, products.Create(ctx, &models.Product{
		ID:    "prod-a",
		Name:  "Batik Shirt",
		Stock: 2,
		Prices: []models.Price{
			{Size: models.SizeMedium, Value: 10.00},
		},
	}))
	require.NoError(t, products.Create(ctx, &models.Product{
		ID:    "prod-b",
		Name:  "Sarong",
		Stock: 2,
		Prices: []models.Price{
			{Size: models.SizeMedium, Value: 15.00},
		},
	}))

	return &dbEnv{
		db:       db,
		users:    users,
		products: products,
		orders:   orders,
		service:  services.NewOrderService(tx, orders, users, nil, 0),
	}
}

func (e *dbEnv) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, err := e.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestOrderService_DB_MultiItemFailureRollsBackEverything(t *testing.T) {
	env := newDBEnv(t)
	ctx := context.Background()

	// The first line item succeeds, the second exceeds stock. Nothing may
	// survive: no order rows and no partial stock decrement.
	_, err := env.service.CreateOrder(ctx, "user-1", "details-1", []services.OrderItemRequest{
		{ProductID: "prod-a", Quantity: 2, Size: models.SizeMedium},
		{ProductID: "prod-b", Quantity: 3, Size: models.SizeMedium},
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Equal(t, 2, env.stockOf(t, "prod-a"))
	assert.Equal(t, 2, env.stockOf(t, "prod-b"))

	orders, err := env.orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_DB_UncancelFailureRollsBackStock(t *testing.T) {
	env := newDBEnv(t)
	ctx := context.Background()

	order, err := env.service.CreateOrder(ctx, "user-1", "details-1", []services.OrderItemRequest{
		{ProductID: "prod-a", Quantity: 2, Size: models.SizeMedium},
		{ProductID: "prod-b", Quantity: 2, Size: models.SizeMedium},
	})
	require.NoError(t, err)

	_, err = env.service.UpdateOrderStatus(ctx, "user-1", order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, 2, env.stockOf(t, "prod-a"))
	require.Equal(t, 2, env.stockOf(t, "prod-b"))

	// Another order takes all of prod-b's freed stock.
	_, err = env.service.CreateOrder(ctx, "user-1", "details-1", []services.OrderItemRequest{
		{ProductID: "prod-b", Quantity: 2, Size: models.SizeMedium},
	})
	require.NoError(t, err)

	// Un-cancelling decrements prod-a first, then fails on prod-b. The
	// rollback must undo the prod-a decrement and keep the order cancelled.
	_, err = env.service.UpdateOrderStatus(ctx, "user-1", order.ID, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Equal(t, 2, env.stockOf(t, "prod-a"))
	assert.Equal(t, 0, env.stockOf(t, "prod-b"))

	stored, err := env.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)
}

func TestOrderService_DB_OrderSnapshotSurvivesProductPriceChange(t *testing.T) {
	env := newDBEnv(t)
	ctx := context.Background()

	order, err := env.service.CreateOrder(ctx, "user-1", "details-1", []services.OrderItemRequest{
		{ProductID: "prod-a", Quantity: 1, Size: models.SizeMedium},
	})
	require.NoError(t, err)
	require.Equal(t, 10.00, order.TotalAmount)

	// Reprice the product directly; the committed order must not move.
	require.NoError(t, env.db.Model(&models.Price{}).
		Where("product_id = ?", "prod-a").
		Update("value", 99.99).Error)

	stored, err := env.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.00, stored.TotalAmount)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 10.00, stored.Items[0].Price)
}

func TestGORMOrderRepository_UpdateStatusIsConditional(t *testing.T) {
	env := newDBEnv(t)
	ctx := context.Background()

	order, err := env.service.CreateOrder(ctx, "user-1", "details-1", []services.OrderItemRequest{
		{ProductID: "prod-a", Quantity: 1, Size: models.SizeMedium},
	})
	require.NoError(t, err)

	require.NoError(t, env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusProcessing))

	// A transition keyed on a status the order no longer holds loses.
	err = env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = env.orders.UpdateStatus(ctx, "ghost", models.OrderStatusPending, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	stored, err := env.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, stored.Status)
}

func TestGORMProductRepository_DecrementStock(t *testing.T) {
	env := newDBEnv(t)
	ctx := context.Background()

	// Exact stock drains to zero.
	require.NoError(t, env.products.DecrementStock(ctx, "prod-a", 2))
	assert.Equal(t, 0, env.stockOf(t, "prod-a"))

	// Any further decrement conflicts and leaves stock untouched.
	err := env.products.DecrementStock(ctx, "prod-a", 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 0, env.stockOf(t, "prod-a"))

	// Unknown products are reported as missing, not out of stock.
	err = env.products.DecrementStock(ctx, "ghost", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, env.products.IncrementStock(ctx, "prod-a", 5))
	assert.Equal(t, 5, env.stockOf(t, "prod-a"))
}
