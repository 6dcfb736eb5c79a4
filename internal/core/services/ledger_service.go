package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/SscSPs/payhub_backend/internal/events"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidIntent is returned when a posting request fails validation. Nothing is written.
	ErrInvalidIntent = fmt.Errorf("%w: invalid transaction intent", apperrors.ErrValidation)
	// ErrAccountNotFound is returned when the target account does not exist. Nothing is written.
	ErrAccountNotFound = fmt.Errorf("account %w", apperrors.ErrNotFound)
	// ErrInsufficientFunds is returned when the balance floor policy rejects a posting.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", apperrors.ErrValidation)
)

// ledgerService records transactions against a single account's balance.
type ledgerService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	contactRepo portsrepo.ContactRepositoryFacade
	publisher   events.Publisher
	floorPolicy domain.BalanceFloorPolicy
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithEventPublisher publishes transaction.posted after every committed posting.
func WithEventPublisher(p events.Publisher) LedgerOption {
	return func(s *ledgerService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithBalanceFloorPolicy sets whether debits may overdraw the account.
func WithBalanceFloorPolicy(p domain.BalanceFloorPolicy) LedgerOption {
	return func(s *ledgerService) {
		if p.IsValid() {
			s.floorPolicy = p
		}
	}
}

// NewLedgerService creates the ledger service.
func NewLedgerService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	contactRepo portsrepo.ContactRepositoryFacade,
	options ...LedgerOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		contactRepo: contactRepo,
		publisher:   events.NoopPublisher{},
		floorPolicy: domain.BalanceFloorUnchecked,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostTransaction validates the intent and, in one atomic unit on the account,
// stores the transaction and applies its balance effect. The contact touch and
// event publish that follow are best-effort and never fail the call.
func (s *ledgerService) PostTransaction(ctx context.Context, accountID string, req dto.PostTransactionRequest) (*domain.Transaction, error) {
	txn, err := buildTransaction(accountID, req)
	if err != nil {
		s.LogDebug(ctx, "Rejected transaction intent", slog.String("account_id", accountID), slog.String("reason", err.Error()))
		return nil, err
	}

	var newBalance decimal.Decimal
	err = s.txnRepo.RunInAccountTx(ctx, accountID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		account, err := tx.FindAccountForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}

		effect, err := txn.BalanceEffect()
		if err != nil {
			return err
		}
		if effect.IsZero() {
			newBalance = account.Balance
			return nil
		}

		newBalance, err = tx.ApplyDelta(ctx, accountID, effect)
		if err != nil {
			return err
		}
		if !s.floorPolicy.Allows(newBalance) {
			return ErrInsufficientFunds
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInsufficientFunds) {
			s.LogInfo(ctx, "Transaction not posted", slog.String("account_id", accountID), slog.String("reason", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to post transaction", slog.String("account_id", accountID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to post transaction", err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("status", string(txn.Status)),
		slog.String("amount", utils.FormatAmount(txn.Amount)),
	)

	// The posting is committed; follow-up work must not be cut short by the caller going away.
	followUpCtx := context.WithoutCancel(ctx)
	s.touchRecipientContact(followUpCtx, txn)
	s.publishPosted(followUpCtx, txn, newBalance)

	return txn, nil
}

// touchRecipientContact records the payment date on the owner's contact whose
// display name matches the recipient. No match is not an error.
func (s *ledgerService) touchRecipientContact(ctx context.Context, txn *domain.Transaction) {
	if txn.RecipientName == nil || txn.Status != domain.StatusCompleted || s.contactRepo == nil {
		return
	}

	contact, err := s.contactRepo.FindByDisplayName(ctx, txn.AccountID, *txn.RecipientName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No contact matches recipient", slog.String("recipient", *txn.RecipientName))
			return
		}
		s.LogWarn(ctx, err, "Failed to look up recipient contact", slog.Int64("transaction_id", txn.TransactionID))
		return
	}

	if err := s.contactRepo.Touch(ctx, contact.ContactID, txn.Date); err != nil {
		s.LogWarn(ctx, err, "Failed to update contact last paid date",
			slog.String("contact_id", contact.ContactID),
			slog.Int64("transaction_id", txn.TransactionID))
	}
}

func (s *ledgerService) publishPosted(ctx context.Context, txn *domain.Transaction, balance decimal.Decimal) {
	event := events.TransactionPostedEvent{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Amount:        utils.FormatAmount(txn.Amount),
		Type:          string(txn.TransactionType),
		Status:        string(txn.Status),
		Category:      txn.Category,
		RecipientName: txn.RecipientName,
		Balance:       utils.FormatAmount(balance),
		Date:          txn.Date,
	}
	if err := s.publisher.Publish(ctx, events.TransactionPosted, event); err != nil {
		s.LogWarn(ctx, err, "Failed to publish transaction event", slog.Int64("transaction_id", txn.TransactionID))
	}
}

// ListTransactions returns the account's transactions newest first.
func (s *ledgerService) ListTransactions(ctx context.Context, accountID string, limit *int) ([]domain.Transaction, error) {
	n := 0
	if limit != nil {
		if *limit <= 0 {
			return nil, fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrValidation)
		}
		n = *limit
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, n)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

// GetTransaction returns one transaction if it belongs to the account.
func (s *ledgerService) GetTransaction(ctx context.Context, accountID string, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, accountID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get transaction", slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// buildTransaction validates a posting request and turns it into a transaction
// with no ID or date yet; both are assigned by the store.
func buildTransaction(accountID string, req dto.PostTransactionRequest) (*domain.Transaction, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidIntent, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(accountID) == "" {
		return nil, invalid("account ID is required")
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return nil, invalid("%v", err)
	}

	txType := domain.TransactionType(strings.ToLower(strings.TrimSpace(req.TransactionType)))
	if !txType.IsValid() {
		return nil, invalid("type must be credit or debit, got %q", req.TransactionType)
	}

	status := domain.StatusCompleted
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status = domain.TransactionStatus(strings.ToLower(raw))
		if !status.IsValid() {
			return nil, invalid("status must be completed, processing or failed, got %q", req.Status)
		}
	}

	txn := &domain.Transaction{
		AccountID:       accountID,
		Amount:          amount,
		TransactionType: txType,
		Description:     strings.TrimSpace(req.Description),
		Category:        strings.TrimSpace(req.Category),
		RecipientName:   optional(req.RecipientName),
		Status:          status,
		PaymentMethod:   optional(req.PaymentMethod),
		CardID:          optional(req.CardID),
	}
	if err := txn.Validate(); err != nil {
		return nil, invalid("%v", err)
	}
	return txn, nil
}

// optional trims s and maps blank to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
