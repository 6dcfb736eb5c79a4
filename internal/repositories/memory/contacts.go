package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// FindByDisplayName scans the owner's contacts in insertion order.
func (s *Store) FindByDisplayName(ctx context.Context, ownerID string, displayName string) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.UserID != ownerID {
			continue
		}
		payee, ok := s.users[c.ContactUserID]
		if ok && payee.DisplayName() == displayName {
			found := c
			return &found, nil
		}
	}
	return nil, fmt.Errorf("contact %q: %w", displayName, apperrors.ErrNotFound)
}

func (s *Store) ListContacts(ctx context.Context, ownerID string) ([]domain.ContactWithPayee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ContactWithPayee{}
	for _, c := range s.contacts {
		if c.UserID != ownerID {
			continue
		}
		payee := s.users[c.ContactUserID]
		out = append(out, domain.ContactWithPayee{
			Contact:        c,
			PayeeFirstName: payee.FirstName,
			PayeeLastName:  payee.LastName,
			PayeeEmail:     payee.Email,
		})
	}
	return out, nil
}

func (s *Store) SaveContact(ctx context.Context, contact domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[contact.UserID]; !ok {
		return fmt.Errorf("owner %s: %w", contact.UserID, apperrors.ErrNotFound)
	}
	if _, ok := s.users[contact.ContactUserID]; !ok {
		return fmt.Errorf("payee %s: %w", contact.ContactUserID, apperrors.ErrNotFound)
	}
	for _, c := range s.contacts {
		if c.ContactID == contact.ContactID || (c.UserID == contact.UserID && c.ContactUserID == contact.ContactUserID) {
			return fmt.Errorf("contact %s -> %s: %w", contact.UserID, contact.ContactUserID, apperrors.ErrDuplicate)
		}
	}

	s.contacts = append(s.contacts, contact)
	return nil
}

// Touch sets LastPaid. Calling it again with the same ts changes nothing.
func (s *Store) Touch(ctx context.Context, contactID string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contacts {
		if s.contacts[i].ContactID == contactID {
			paid := ts
			s.contacts[i].LastPaid = &paid
			return nil
		}
	}
	return fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
}
