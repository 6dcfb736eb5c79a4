package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
	}
	user := s.users[id]
	return &user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, fmt.Errorf("user with email %q: %w", email, apperrors.ErrNotFound)
	}
	user := s.users[id]
	return &user, nil
}

// SaveUserWithAccount inserts the user, its account and any initial postings together.
func (s *Store) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account, initial ...domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users[user.UserID]; taken {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrDuplicate)
	}
	if _, taken := s.usernames[user.Username]; taken {
		return fmt.Errorf("username %q: %w", user.Username, apperrors.ErrDuplicate)
	}
	if _, taken := s.emails[user.Email]; taken {
		return fmt.Errorf("email %q: %w", user.Email, apperrors.ErrDuplicate)
	}
	for _, txn := range initial {
		if txn.AccountID != account.AccountID {
			return apperrors.NewInternalServerError(fmt.Sprintf("initial posting for account %s saved with account %s", txn.AccountID, account.AccountID))
		}
	}

	s.users[user.UserID] = user
	s.usernames[user.Username] = user.UserID
	s.emails[user.Email] = user.UserID
	s.accounts[account.AccountID] = account
	date := s.now().UTC()
	for _, txn := range initial {
		txn.TransactionID = s.nextTxnID.Add(1)
		txn.Date = date
		s.txns[account.AccountID] = append(s.txns[account.AccountID], txn)
	}
	return nil
}

// UpdateUser replaces the profile fields of an existing user. Username is immutable.
func (s *Store) UpdateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.UserID]
	if !ok {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	if owner, taken := s.emails[user.Email]; taken && owner != user.UserID {
		return fmt.Errorf("email %q: %w", user.Email, apperrors.ErrDuplicate)
	}

	delete(s.emails, existing.Email)
	user.Username = existing.Username
	user.CreatedAt = existing.CreatedAt
	user.CreatedBy = existing.CreatedBy
	s.users[user.UserID] = user
	s.emails[user.Email] = user.UserID
	return nil
}
