package repositories

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves the account (and its current balance) by ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
// Balances are only written through LedgerTx.ApplyDelta; accounts are created
// together with their user by UserWriter.SaveUserWithAccount.
type AccountRepositoryFacade interface {
	AccountReader
}
