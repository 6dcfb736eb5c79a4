package repositories

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// TransactionReader defines read operations for posted transactions
type TransactionReader interface {
	// ListTransactionsByAccountID returns the account's transactions newest first
	// (Date DESC, TransactionID DESC). limit <= 0 returns all of them.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)

	// FindTransactionByID returns a transaction owned by accountID.
	FindTransactionByID(ctx context.Context, accountID string, transactionID int64) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines transaction reads with the ledger's atomic unit.
// Transactions are immutable: there is no update or delete.
type TransactionRepositoryFacade interface {
	TransactionReader
	LedgerUnitOfWork
}
