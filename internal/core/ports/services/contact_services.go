package services

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/dto"
)

// ContactReaderSvc defines read operations for a user's contacts
type ContactReaderSvc interface {
	ListContacts(ctx context.Context, ownerID string) ([]domain.ContactWithPayee, error)
}

// ContactWriterSvc defines write operations for a user's contacts
type ContactWriterSvc interface {
	// AddContact links the owner to the payee with the given username.
	AddContact(ctx context.Context, ownerID string, req dto.AddContactRequest) (*domain.ContactWithPayee, error)
}

// ContactSvcFacade combines all contact-related service interfaces
type ContactSvcFacade interface {
	ContactReaderSvc
	ContactWriterSvc
}
