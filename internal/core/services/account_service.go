package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
)

// accountService exposes balances. Balances only change through the ledger.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}
