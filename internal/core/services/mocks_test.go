package services_test

import (
	"context"
	"net/http"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock Publisher ---
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, data any) error {
	args := m.Called(ctx, eventType, data)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

// failingApplyStore lets every ledger step run against the memory store except
// ApplyDelta, which fails the way a dropped database connection would.
type failingApplyStore struct {
	*memory.Store
}

func (f failingApplyStore) RunInAccountTx(ctx context.Context, accountID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return f.Store.RunInAccountTx(ctx, accountID, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return fn(ctx, failingApplyTx{LedgerTx: tx})
	})
}

type failingApplyTx struct {
	portsrepo.LedgerTx
}

func (failingApplyTx) ApplyDelta(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, apperrors.NewAppError(http.StatusInternalServerError, "failed to update balance", context.DeadlineExceeded)
}

// failingTouchStore is a contact directory whose writes always fail.
type failingTouchStore struct {
	*memory.Store
}

func (failingTouchStore) Touch(context.Context, string, time.Time) error {
	return apperrors.NewInternalServerError("contacts table is locked")
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account, initial ...domain.Transaction) error {
	args := m.Called(ctx, user, account, initial)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock QRCodeService ---
type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) GetActiveQRCode(ctx context.Context, userID string) (*domain.QRCode, error) {
	args := m.Called(ctx, userID)
	var code *domain.QRCode
	if args.Get(0) != nil {
		code = args.Get(0).(*domain.QRCode)
	}
	return code, args.Error(1)
}

func (m *MockQRCodeService) IssueQRCode(ctx context.Context, userID string) (*domain.QRCode, error) {
	args := m.Called(ctx, userID)
	var code *domain.QRCode
	if args.Get(0) != nil {
		code = args.Get(0).(*domain.QRCode)
	}
	return code, args.Error(1)
}

func (m *MockQRCodeService) ResolveQRCode(ctx context.Context, qrString string) (*domain.User, error) {
	args := m.Called(ctx, qrString)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}
