package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// FindAccountByID returns a copy of the account.
func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &acc, nil
}

// RunInAccountTx serialises fn with every other unit on accountID. Writes made
// through the LedgerTx are staged and only become visible if fn returns nil.
func (s *Store) RunInAccountTx(ctx context.Context, accountID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &ledgerTx{store: s, accountID: accountID}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(tx.inserted) > 0 {
		s.txns[accountID] = append(s.txns[accountID], tx.inserted...)
	}
	if tx.account != nil && tx.dirty {
		s.accounts[accountID] = *tx.account
	}
	return nil
}

// ledgerTx stages the writes of one unit.
type ledgerTx struct {
	store     *Store
	accountID string
	account   *domain.Account
	dirty     bool
	inserted  []domain.Transaction
}

func (t *ledgerTx) checkScope(accountID string) error {
	if accountID != t.accountID {
		return apperrors.NewAppError(500, fmt.Sprintf("account %s is outside the unit for %s", accountID, t.accountID), nil)
	}
	return nil
}

func (t *ledgerTx) FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if err := t.checkScope(accountID); err != nil {
		return nil, err
	}
	if t.account == nil {
		acc, err := t.store.FindAccountByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		t.account = acc
	}
	acc := *t.account
	return &acc, nil
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	if err := t.checkScope(txn.AccountID); err != nil {
		return err
	}

	date := t.store.now().UTC()
	if latest, ok := t.latestDate(); ok && latest.After(date) {
		date = latest
	}

	txn.TransactionID = t.store.nextTxnID.Add(1)
	txn.Date = date
	t.inserted = append(t.inserted, *txn)
	return nil
}

func (t *ledgerTx) latestDate() (latest time.Time, ok bool) {
	if n := len(t.inserted); n > 0 {
		return t.inserted[n-1].Date, true
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	for _, txn := range t.store.txns[t.accountID] {
		if !ok || txn.Date.After(latest) {
			latest, ok = txn.Date, true
		}
	}
	return latest, ok
}

func (t *ledgerTx) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	if _, err := t.FindAccountForUpdate(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	t.account.Balance = t.account.Balance.Add(delta)
	t.account.LastUpdatedAt = t.store.now().UTC()
	t.dirty = true
	return t.account.Balance, nil
}

// ListTransactionsByAccountID returns the account's transactions newest first.
func (s *Store) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	s.mu.RLock()
	stored := s.txns[accountID]
	out := make([]domain.Transaction, len(stored))
	copy(out, stored)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].TransactionID > out[j].TransactionID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindTransactionByID returns a transaction owned by accountID.
func (s *Store) FindTransactionByID(ctx context.Context, accountID string, transactionID int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, txn := range s.txns[accountID] {
		if txn.TransactionID == transactionID {
			found := txn
			return &found, nil
		}
	}
	return nil, fmt.Errorf("transaction %d: %w", transactionID, apperrors.ErrNotFound)
}
