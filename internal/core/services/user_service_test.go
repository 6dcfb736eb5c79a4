package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/core/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/SscSPs/payhub_backend/internal/events"
	"github.com/SscSPs/payhub_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	store *memory.Store
	svc   portssvc.UserSvcFacade
	ctx   context.Context
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	qr := services.NewQRCodeService(s.store, s.store)
	s.svc = services.NewUserService(s.store,
		services.WithOpeningBalance(decimal.RequireFromString("1000")),
		services.WithQRCodeIssuer(qr))
}

func registerReq(username string) dto.RegisterUserRequest {
	return dto.RegisterUserRequest{
		Username:  username,
		Password:  "password123",
		FirstName: "John",
		LastName:  "Doe",
		Email:     username + "@Example.com",
	}
}

func (s *UserServiceTestSuite) TestRegisterUser_CreatesAccountAndQRCode() {
	user, err := s.svc.RegisterUser(s.ctx, registerReq("johndoe"))
	s.Require().NoError(err)

	s.NotEmpty(user.UserID)
	s.Equal("johndoe@example.com", user.Email)
	s.NotEqual("password123", user.PasswordHash)

	acc, err := s.store.FindAccountByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Equal("1000.00", acc.Balance.StringFixed(2))

	code, err := s.store.FindActiveQRCode(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(code.QRString, services.QRStringPrefix+user.UserID+":"))
}

func (s *UserServiceTestSuite) TestRegisterUser_OpeningBalanceIsACompletedCredit() {
	user, err := s.svc.RegisterUser(s.ctx, registerReq("johndoe"))
	s.Require().NoError(err)

	txns, err := s.store.ListTransactionsByAccountID(s.ctx, user.UserID, 0)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal(domain.Credit, txns[0].TransactionType)
	s.Equal(domain.StatusCompleted, txns[0].Status)
	s.Equal(services.OpeningBalanceDescription, txns[0].Description)
	s.NotZero(txns[0].TransactionID)

	acc, err := s.store.FindAccountByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(txns[0].Amount), "balance %s, opening credit %s", acc.Balance, txns[0].Amount)
}

func TestRegisterUser_ZeroOpeningBalanceWritesNoTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewUserService(store)

	user, err := svc.RegisterUser(ctx, registerReq("johndoe"))
	require.NoError(t, err)

	txns, err := store.ListTransactionsByAccountID(ctx, user.UserID, 0)
	require.NoError(t, err)
	assert.Empty(t, txns)

	acc, err := store.FindAccountByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
}

func (s *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	_, err := s.svc.RegisterUser(s.ctx, registerReq("johndoe"))
	s.Require().NoError(err)

	dup := registerReq("johndoe")
	dup.Email = "other@example.com"
	_, err = s.svc.RegisterUser(s.ctx, dup)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestRegisterUser_PasswordTooLong() {
	req := registerReq("johndoe")
	req.Password = strings.Repeat("x", 73)
	_, err := s.svc.RegisterUser(s.ctx, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestAuthenticateUser() {
	_, err := s.svc.RegisterUser(s.ctx, registerReq("johndoe"))
	s.Require().NoError(err)

	user, err := s.svc.AuthenticateUser(s.ctx, "johndoe", "password123")
	s.Require().NoError(err)
	s.Equal("johndoe", user.Username)

	_, err = s.svc.AuthenticateUser(s.ctx, "johndoe", "wrong")
	s.ErrorIs(err, services.ErrInvalidCredentials)
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.svc.AuthenticateUser(s.ctx, "nobody", "password123")
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestUpdateProfile() {
	user, err := s.svc.RegisterUser(s.ctx, registerReq("johndoe"))
	s.Require().NoError(err)

	phone := "(123) 456-7890"
	first := "Johnny"
	updated, err := s.svc.UpdateProfile(s.ctx, user.UserID, dto.UpdateProfileRequest{FirstName: &first, Phone: &phone})
	s.Require().NoError(err)
	s.Equal("Johnny", updated.FirstName)
	s.Require().NotNil(updated.Phone)
	s.Equal(phone, *updated.Phone)

	blank := "  "
	_, err = s.svc.UpdateProfile(s.ctx, user.UserID, dto.UpdateProfileRequest{LastName: &blank})
	s.ErrorIs(err, apperrors.ErrValidation)

	cleared, err := s.svc.UpdateProfile(s.ctx, user.UserID, dto.UpdateProfileRequest{Phone: &blank})
	s.Require().NoError(err)
	s.Nil(cleared.Phone)

	stored, err := s.svc.GetUserByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Equal("Johnny", stored.FirstName)
	s.Equal("johndoe", stored.Username)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser() {
	info := domain.GoogleUserInfo{Email: "Jane@Example.com", VerifiedEmail: true, Name: "Jane Roe"}

	created, err := s.svc.FindOrCreateGoogleUser(s.ctx, info)
	s.Require().NoError(err)
	s.Equal("jane@example.com", created.Email)
	s.Equal("Jane", created.FirstName)
	s.Equal("Roe", created.LastName)

	again, err := s.svc.FindOrCreateGoogleUser(s.ctx, info)
	s.Require().NoError(err)
	s.Equal(created.UserID, again.UserID)

	// Google-only users cannot log in with a password.
	_, err = s.svc.AuthenticateUser(s.ctx, created.Username, "")
	s.ErrorIs(err, services.ErrInvalidCredentials)

	_, err = s.svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{Email: "x@example.com"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestRegisterUser_FollowUpFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	qr := new(MockQRCodeService)
	pub := new(MockPublisher)

	repo.On("SaveUserWithAccount", mock.Anything, mock.AnythingOfType("domain.User"), mock.MatchedBy(func(a domain.Account) bool {
		return a.Balance.Equal(decimal.RequireFromString("50.00")) && a.AccountID != ""
	}), mock.AnythingOfType("[]domain.Transaction")).Return(nil).Once()
	qr.On("IssueQRCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, errors.New("qr store down")).Once()
	pub.On("Publish", mock.Anything, events.UserRegistered, mock.AnythingOfType("events.UserRegisteredEvent")).Return(errors.New("broker down")).Once()

	svc := services.NewUserService(repo,
		services.WithOpeningBalance(decimal.RequireFromString("50")),
		services.WithQRCodeIssuer(qr),
		services.WithUserEventPublisher(pub))

	user, err := svc.RegisterUser(ctx, registerReq("johndoe"))
	require.NoError(t, err)
	assert.NotNil(t, user)

	repo.AssertExpectations(t)
	qr.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestRegisterUser_SaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	pub := new(MockPublisher)
	repo.On("SaveUserWithAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.NewInternalServerError("failed to insert user")).Once()

	svc := services.NewUserService(repo, services.WithUserEventPublisher(pub))
	user, err := svc.RegisterUser(ctx, registerReq("johndoe"))
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
