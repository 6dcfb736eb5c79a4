package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/SscSPs/payhub_backend/internal/events"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidCredentials is returned for any failed password login.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

// OpeningBalanceDescription labels the credit that funds a new account.
const OpeningBalanceDescription = "Opening balance"

// userService manages users and the account each one owns.
type userService struct {
	BaseService
	userRepo       portsrepo.UserRepositoryFacade
	openingBalance decimal.Decimal
	publisher      events.Publisher
	qrIssuer       portssvc.QRCodeSvcFacade
}

// UserOption is a functional option for configuring the user service
type UserOption func(*userService)

// WithOpeningBalance sets the balance new accounts start with. Negative values are ignored.
func WithOpeningBalance(balance decimal.Decimal) UserOption {
	return func(s *userService) {
		if balance.IsNegative() {
			return
		}
		s.openingBalance = balance.Round(domain.AmountScale)
	}
}

// WithUserEventPublisher publishes user.registered after sign-up.
func WithUserEventPublisher(p events.Publisher) UserOption {
	return func(s *userService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithQRCodeIssuer issues a QR code for every new user.
func WithQRCodeIssuer(issuer portssvc.QRCodeSvcFacade) UserOption {
	return func(s *userService) {
		s.qrIssuer = issuer
	}
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:       userRepo,
		openingBalance: decimal.Zero,
		publisher:      events.NoopPublisher{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by username", slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

// RegisterUser creates the user and its account together.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewInternalServerError("failed to register user")
	}

	user := s.newUser(username, email, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	user.PasswordHash = hash
	user.Phone = optional(req.Phone)
	user.Address = optional(req.Address)

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) newUser(username, email, firstName, lastName string) domain.User {
	now := time.Now()
	userID := uuid.NewString()
	return domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// create saves the user with its account, then best-effort issues a QR code
// and announces the registration.
func (s *userService) create(ctx context.Context, user domain.User) error {
	account := domain.Account{
		AccountID:     user.UserID,
		Balance:       s.openingBalance,
		CreatedAt:     user.CreatedAt,
		LastUpdatedAt: user.CreatedAt,
	}
	if err := s.userRepo.SaveUserWithAccount(ctx, user, account, s.openingPostings(user.UserID)...); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		}
		return err
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.String("username", user.Username))

	followUpCtx := context.WithoutCancel(ctx)
	if s.qrIssuer != nil {
		if _, err := s.qrIssuer.IssueQRCode(followUpCtx, user.UserID); err != nil {
			s.LogWarn(followUpCtx, err, "Failed to issue QR code for new user", slog.String("user_id", user.UserID))
		}
	}
	event := events.UserRegisteredEvent{UserID: user.UserID, Username: user.Username, Email: user.Email}
	if err := s.publisher.Publish(followUpCtx, events.UserRegistered, event); err != nil {
		s.LogWarn(followUpCtx, err, "Failed to publish user event", slog.String("user_id", user.UserID))
	}
	return nil
}

// openingPostings records a positive opening balance as a completed credit so
// the balance stays equal to the net of the account's completed transactions.
func (s *userService) openingPostings(accountID string) []domain.Transaction {
	if !s.openingBalance.IsPositive() {
		return nil
	}
	return []domain.Transaction{{
		AccountID:       accountID,
		Amount:          s.openingBalance,
		TransactionType: domain.Credit,
		Description:     OpeningBalanceDescription,
		Category:        domain.CategoryTransfer,
		Status:          domain.StatusCompleted,
	}}
}

// UpdateProfile applies the non-nil fields of req. Blank phone or address clears it.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	setRequired := func(field string, dst *string, v *string) error {
		if v == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			return fmt.Errorf("%w: %s cannot be blank", apperrors.ErrValidation, field)
		}
		*dst = trimmed
		updated = true
		return nil
	}
	if err := setRequired("firstName", &user.FirstName, req.FirstName); err != nil {
		return nil, err
	}
	if err := setRequired("lastName", &user.LastName, req.LastName); err != nil {
		return nil, err
	}
	if err := setRequired("email", &user.Email, req.Email); err != nil {
		return nil, err
	}
	user.Email = strings.ToLower(user.Email)
	if req.Phone != nil {
		user.Phone = optional(req.Phone)
		updated = true
	}
	if req.Address != nil {
		user.Address = optional(req.Address)
		updated = true
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Profile updated", slog.String("user_id", userID))
	return user, nil
}

// FindOrCreateGoogleUser signs in by verified email, registering a password-less
// user the first time.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" || !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up google user", slog.String("email", email))
		return nil, err
	}

	firstName, lastName := info.GivenName, info.FamilyName
	if firstName == "" {
		firstName, lastName, _ = strings.Cut(info.Name, " ")
	}
	// Email is unique, so it is a free username for accounts created this way.
	user := s.newUser(email, email, firstName, lastName)
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login failed: unknown username", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load user for login", slog.String("username", username))
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login failed: wrong password", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
