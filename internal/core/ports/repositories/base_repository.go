package repositories

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of writes available inside a ledger atomic unit.
// Everything done through a LedgerTx is committed together or not at all.
type LedgerTx interface {
	// FindAccountForUpdate loads the account and holds its lock until the unit ends.
	FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// InsertTransaction stores txn, assigning TransactionID and the server Date.
	// Date is never earlier than the latest Date already stored for the account.
	InsertTransaction(ctx context.Context, txn *domain.Transaction) error

	// ApplyDelta adds a signed amount to the account balance and returns the new balance.
	ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error)
}

// LedgerUnitOfWork runs fn as one atomic unit scoped to a single account.
// Units for the same account are serialised; units for different accounts are not.
// If fn returns an error nothing it wrote is kept.
type LedgerUnitOfWork interface {
	RunInAccountTx(ctx context.Context, accountID string, fn func(ctx context.Context, tx LedgerTx) error) error
}
