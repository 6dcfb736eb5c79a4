package services

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount returns the account with its current balance.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
}
