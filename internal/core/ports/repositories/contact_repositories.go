package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// ContactReader defines read operations for the contact directory
type ContactReader interface {
	// FindByDisplayName returns the first of the owner's contacts (in insertion order)
	// whose payee "first last" name equals displayName exactly.
	FindByDisplayName(ctx context.Context, ownerID string, displayName string) (*domain.Contact, error)

	// ListContacts returns the owner's contacts joined to payee names.
	ListContacts(ctx context.Context, ownerID string) ([]domain.ContactWithPayee, error)
}

// ContactWriter defines write operations for the contact directory
type ContactWriter interface {
	// SaveContact persists a new contact. A duplicate owner/payee pair is ErrDuplicate.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// Touch sets LastPaid on the contact.
	Touch(ctx context.Context, contactID string, ts time.Time) error
}

// ContactRepositoryFacade combines all contact-related repository interfaces
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
