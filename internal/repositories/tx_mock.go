package repositories

import "context"

// MockTxRunner is a TxRunner for tests backed by in-memory repositories.
// It provides the same repository bundle to every unit of work but no
// rollback; tests asserting rollback behavior use a real database.
type MockTxRunner struct {
	repos Repositories
}

// NewMockTxRunner creates a TxRunner that always hands fn the given bundle.
func NewMockTxRunner(repos Repositories) *MockTxRunner {
	return &MockTxRunner{repos: repos}
}

// RunInTx invokes fn directly with the configured repositories.
func (t *MockTxRunner) RunInTx(ctx context.Context, fn func(r Repositories) error) error {
	return fn(t.repos)
}
