package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *memory.Store
	ctx   context.Context
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.ctx = context.Background()
}

func (s *StoreTestSuite) addUser(id, first, last string, balance string) {
	now := time.Now()
	err := s.store.SaveUserWithAccount(s.ctx,
		domain.User{UserID: id, Username: id, FirstName: first, LastName: last, Email: id + "@example.com"},
		domain.Account{AccountID: id, Balance: decimal.RequireFromString(balance), CreatedAt: now, LastUpdatedAt: now},
	)
	s.Require().NoError(err)
}

func (s *StoreTestSuite) post(accountID string, txn domain.Transaction, delta string) error {
	return s.store.RunInAccountTx(s.ctx, accountID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.FindAccountForUpdate(ctx, accountID); err != nil {
			return err
		}
		txn.AccountID = accountID
		if err := tx.InsertTransaction(ctx, &txn); err != nil {
			return err
		}
		_, err := tx.ApplyDelta(ctx, accountID, decimal.RequireFromString(delta))
		return err
	})
}

func (s *StoreTestSuite) balance(accountID string) string {
	acc, err := s.store.FindAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return acc.Balance.StringFixed(2)
}

func (s *StoreTestSuite) TestRunInAccountTx_Commit() {
	s.addUser("acc_123", "John", "Doe", "1000.00")

	err := s.post("acc_123", domain.Transaction{Amount: decimal.RequireFromString("39.99"), TransactionType: domain.Debit}, "-39.99")
	s.Require().NoError(err)

	s.Equal("960.01", s.balance("acc_123"))
	txns, err := s.store.ListTransactionsByAccountID(s.ctx, "acc_123", 0)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal(int64(1), txns[0].TransactionID)
	s.False(txns[0].Date.IsZero())
}

func (s *StoreTestSuite) TestRunInAccountTx_RollbackOnError() {
	s.addUser("acc_123", "John", "Doe", "1000.00")
	boom := errors.New("boom")

	err := s.store.RunInAccountTx(s.ctx, "acc_123", func(ctx context.Context, tx portsrepo.LedgerTx) error {
		txn := domain.Transaction{AccountID: "acc_123", Amount: decimal.NewFromInt(10)}
		if err := tx.InsertTransaction(ctx, &txn); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, "acc_123", decimal.NewFromInt(-10)); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	s.Equal("1000.00", s.balance("acc_123"))
	txns, _ := s.store.ListTransactionsByAccountID(s.ctx, "acc_123", 0)
	s.Empty(txns)
}

func (s *StoreTestSuite) TestRunInAccountTx_UnknownAccount() {
	err := s.post("acc_missing", domain.Transaction{Amount: decimal.NewFromInt(1)}, "1")
	s.ErrorIs(err, apperrors.ErrNotFound)

	txns, _ := s.store.ListTransactionsByAccountID(s.ctx, "acc_missing", 0)
	s.Empty(txns)
}

func (s *StoreTestSuite) TestRunInAccountTx_OtherAccountRejected() {
	s.addUser("a", "A", "A", "0")
	s.addUser("b", "B", "B", "0")

	err := s.store.RunInAccountTx(s.ctx, "a", func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.ApplyDelta(ctx, "b", decimal.NewFromInt(5))
		return err
	})
	s.ErrorIs(err, apperrors.ErrPersistence)
	s.Equal("0.00", s.balance("b"))
}

func (s *StoreTestSuite) TestRunInAccountTx_CancelledContext() {
	s.addUser("acc_123", "John", "Doe", "100.00")
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	called := false
	err := s.store.RunInAccountTx(ctx, "acc_123", func(context.Context, portsrepo.LedgerTx) error {
		called = true
		return nil
	})
	s.ErrorIs(err, context.Canceled)
	s.False(called)
}

func (s *StoreTestSuite) TestConcurrentDebitsLoseNothing() {
	s.addUser("acc_123", "John", "Doe", "1000.00")

	const n = 100
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.post("acc_123", domain.Transaction{Amount: decimal.RequireFromString("1.25"), TransactionType: domain.Debit}, "-1.25")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	s.Equal("875.00", s.balance("acc_123"))

	txns, err := s.store.ListTransactionsByAccountID(s.ctx, "acc_123", 0)
	s.Require().NoError(err)
	s.Len(txns, n)
	seen := make(map[int64]bool, n)
	for _, txn := range txns {
		s.False(seen[txn.TransactionID], "duplicate id %d", txn.TransactionID)
		seen[txn.TransactionID] = true
	}
}

func (s *StoreTestSuite) TestListTransactions_NewestFirstWithLimit() {
	s.addUser("acc_123", "John", "Doe", "0")
	for i := 1; i <= 8; i++ {
		amount := fmt.Sprintf("%d.00", i)
		s.Require().NoError(s.post("acc_123", domain.Transaction{Amount: decimal.RequireFromString(amount), TransactionType: domain.Credit}, amount))
	}

	txns, err := s.store.ListTransactionsByAccountID(s.ctx, "acc_123", 5)
	s.Require().NoError(err)
	s.Require().Len(txns, 5)
	for i, txn := range txns {
		s.Equal(int64(8-i), txn.TransactionID)
	}
	for i := 1; i < len(txns); i++ {
		s.False(txns[i].Date.After(txns[i-1].Date))
	}
}

func (s *StoreTestSuite) TestFindTransactionByID_Ownership() {
	s.addUser("a", "A", "A", "0")
	s.addUser("b", "B", "B", "0")
	s.Require().NoError(s.post("a", domain.Transaction{Amount: decimal.NewFromInt(1)}, "1"))

	_, err := s.store.FindTransactionByID(s.ctx, "a", 1)
	s.NoError(err)
	_, err = s.store.FindTransactionByID(s.ctx, "b", 1)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestContacts_FindByDisplayNameAndTouch() {
	s.addUser("owner", "John", "Doe", "0")
	s.addUser("sarah", "Sarah", "Johnson", "0")
	s.addUser("sarah2", "Sarah", "Johnson", "0")
	s.Require().NoError(s.store.SaveContact(s.ctx, domain.Contact{ContactID: "c1", UserID: "owner", ContactUserID: "sarah"}))
	s.Require().NoError(s.store.SaveContact(s.ctx, domain.Contact{ContactID: "c2", UserID: "owner", ContactUserID: "sarah2"}))

	found, err := s.store.FindByDisplayName(s.ctx, "owner", "Sarah Johnson")
	s.Require().NoError(err)
	s.Equal("c1", found.ContactID, "first match in insertion order wins")

	_, err = s.store.FindByDisplayName(s.ctx, "owner", "sarah johnson")
	s.ErrorIs(err, apperrors.ErrNotFound)

	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Touch(s.ctx, "c1", ts))
	s.Require().NoError(s.store.Touch(s.ctx, "c1", ts))

	contacts, err := s.store.ListContacts(s.ctx, "owner")
	s.Require().NoError(err)
	s.Require().Len(contacts, 2)
	s.Require().NotNil(contacts[0].LastPaid)
	s.True(ts.Equal(*contacts[0].LastPaid))
	s.Nil(contacts[1].LastPaid)

	s.ErrorIs(s.store.Touch(s.ctx, "missing", ts), apperrors.ErrNotFound)
	s.ErrorIs(s.store.SaveContact(s.ctx, domain.Contact{ContactID: "c3", UserID: "owner", ContactUserID: "sarah"}), apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestCards_ConcurrentSetDefaultLeavesOne() {
	s.addUser("u1", "John", "Doe", "0")
	const n = 10
	for i := 0; i < n; i++ {
		s.Require().NoError(s.store.SaveCard(s.ctx, domain.Card{CardID: fmt.Sprintf("card-%d", i), UserID: "u1", Last4: "4582", IsDefault: i == 0}))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(s.T(), s.store.SetDefaultCard(s.ctx, "u1", fmt.Sprintf("card-%d", i)))
		}(i)
	}
	wg.Wait()

	cards, err := s.store.ListCardsByUserID(s.ctx, "u1")
	s.Require().NoError(err)
	defaults := 0
	for _, c := range cards {
		if c.IsDefault {
			defaults++
		}
	}
	s.Equal(1, defaults)
}

func (s *StoreTestSuite) TestCards_SaveDefaultClearsOthersAndOwnership() {
	s.addUser("u1", "John", "Doe", "0")
	s.addUser("u2", "Jane", "Roe", "0")
	s.Require().NoError(s.store.SaveCard(s.ctx, domain.Card{CardID: "a", UserID: "u1", IsDefault: true}))
	s.Require().NoError(s.store.SaveCard(s.ctx, domain.Card{CardID: "b", UserID: "u1", IsDefault: true}))
	s.Require().NoError(s.store.SaveCard(s.ctx, domain.Card{CardID: "c", UserID: "u2", IsDefault: true}))

	a, _ := s.store.FindCardByID(s.ctx, "a")
	b, _ := s.store.FindCardByID(s.ctx, "b")
	c, _ := s.store.FindCardByID(s.ctx, "c")
	s.False(a.IsDefault)
	s.True(b.IsDefault)
	s.True(c.IsDefault, "other users are untouched")

	s.ErrorIs(s.store.SetDefaultCard(s.ctx, "u2", "a"), apperrors.ErrNotFound)
	s.ErrorIs(s.store.DeleteCard(s.ctx, "u2", "a"), apperrors.ErrNotFound)
	s.NoError(s.store.DeleteCard(s.ctx, "u1", "a"))

	cards, _ := s.store.ListCardsByUserID(s.ctx, "u1")
	s.Len(cards, 1)
}

func (s *StoreTestSuite) TestQRCodes_OneActivePerUser() {
	s.addUser("u1", "John", "Doe", "0")
	s.Require().NoError(s.store.SaveQRCode(s.ctx, domain.QRCode{QRCodeID: "q1", UserID: "u1", QRString: "payhub:user:u1:1"}))
	s.Require().NoError(s.store.SaveQRCode(s.ctx, domain.QRCode{QRCodeID: "q2", UserID: "u1", QRString: "payhub:user:u1:2"}))

	active, err := s.store.FindActiveQRCode(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("q2", active.QRCodeID)

	_, err = s.store.FindQRCodeByString(s.ctx, "payhub:user:u1:1")
	s.ErrorIs(err, apperrors.ErrNotFound, "deactivated codes do not resolve")

	err = s.store.SaveQRCode(s.ctx, domain.QRCode{QRCodeID: "q3", UserID: "u1", QRString: "payhub:user:u1:2"})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestUsers_Uniqueness() {
	s.addUser("u1", "John", "Doe", "0")

	err := s.store.SaveUserWithAccount(s.ctx, domain.User{UserID: "u2", Username: "u1", Email: "other@example.com"}, domain.Account{AccountID: "u2"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.store.SaveUserWithAccount(s.ctx, domain.User{UserID: "u2", Username: "u2", Email: "u1@example.com"}, domain.Account{AccountID: "u2"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.store.FindAccountByID(s.ctx, "u2")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveUserWithAccount_StoresInitialPostings() {
	opening := domain.Transaction{
		AccountID: "u2", Amount: decimal.RequireFromString("250.00"), TransactionType: domain.Credit,
		Description: "Opening balance", Category: domain.CategoryTransfer, Status: domain.StatusCompleted,
	}
	err := s.store.SaveUserWithAccount(s.ctx,
		domain.User{UserID: "u2", Username: "u2", Email: "u2@example.com"},
		domain.Account{AccountID: "u2", Balance: opening.Amount},
		opening)
	s.Require().NoError(err)

	txns, err := s.store.ListTransactionsByAccountID(s.ctx, "u2", 0)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.NotZero(txns[0].TransactionID)
	s.False(txns[0].Date.IsZero())
	s.Equal("250.00", s.balance("u2"))
}

func (s *StoreTestSuite) TestSaveUserWithAccount_RejectsPostingForAnotherAccount() {
	err := s.store.SaveUserWithAccount(s.ctx,
		domain.User{UserID: "u2", Username: "u2", Email: "u2@example.com"},
		domain.Account{AccountID: "u2"},
		domain.Transaction{AccountID: "u3", Amount: decimal.NewFromInt(1)})
	s.ErrorIs(err, apperrors.ErrPersistence)

	_, err = s.store.FindUserByID(s.ctx, "u2")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestInsertTransaction_DateNeverGoesBackwards(t *testing.T) {
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(func() time.Time { return clock }))
	ctx := context.Background()
	require.NoError(t, store.SaveUserWithAccount(ctx, domain.User{UserID: "u1", Username: "u1", Email: "u1@x"}, domain.Account{AccountID: "u1"}))

	insert := func() {
		require.NoError(t, store.RunInAccountTx(ctx, "u1", func(ctx context.Context, tx portsrepo.LedgerTx) error {
			txn := domain.Transaction{AccountID: "u1", Amount: decimal.NewFromInt(1)}
			return tx.InsertTransaction(ctx, &txn)
		}))
	}

	insert()
	clock = clock.Add(-time.Hour)
	insert()

	txns, err := store.ListTransactionsByAccountID(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.True(t, txns[0].Date.Equal(txns[1].Date))
	assert.Equal(t, int64(2), txns[0].TransactionID, "ties broken by id, newest first")
}
