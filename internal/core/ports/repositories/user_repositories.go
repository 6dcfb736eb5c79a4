package repositories

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUserWithAccount persists a new user together with its account and
	// any initial postings, which must already be reflected in the account
	// balance. The store assigns their IDs and dates.
	// A taken username or email is ErrDuplicate.
	SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account, initial ...domain.Transaction) error

	// UpdateUser updates profile fields of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
