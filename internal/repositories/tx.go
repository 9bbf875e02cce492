package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles every repository bound to one unit of work. Inside a
// transaction the repositories see each other's uncommitted writes.
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// TxRunner executes a function inside a single database transaction: every
// write made through the repositories passed to fn commits together, or none
// do if fn returns an error.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(r Repositories) error) error
}

// GormTxRunner is the gorm-backed TxRunner used in production.
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner creates a TxRunner on top of a gorm database handle.
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// RunInTx opens a transaction and rebinds all repositories to it. A non-nil
// error from fn rolls the whole transaction back.
func (t *GormTxRunner) RunInTx(ctx context.Context, fn func(r Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repositories{
			Users:    NewGORMUserRepository(tx),
			Products: NewGORMProductRepository(tx),
			Carts:    NewGORMCartRepository(tx),
			Orders:   NewGORMOrderRepository(tx),
		})
	})
}
