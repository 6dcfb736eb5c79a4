package services

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/dto"
)

// LedgerPosterSvc records transactions and applies their balance effect.
type LedgerPosterSvc interface {
	// PostTransaction validates the intent, stores the transaction and applies its
	// balance effect atomically, then best-effort updates the matching contact.
	PostTransaction(ctx context.Context, accountID string, req dto.PostTransactionRequest) (*domain.Transaction, error)
}

// LedgerReaderSvc reads an account's transaction history.
type LedgerReaderSvc interface {
	// ListTransactions returns transactions newest first; limit is optional and must be positive.
	ListTransactions(ctx context.Context, accountID string, limit *int) ([]domain.Transaction, error)

	// GetTransaction returns a single transaction owned by the account.
	GetTransaction(ctx context.Context, accountID string, transactionID int64) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerPosterSvc
	LedgerReaderSvc
}
