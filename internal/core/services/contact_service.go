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
	"github.com/google/uuid"
)

type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewContactService creates a new contact directory service.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo, userRepo: userRepo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) ListContacts(ctx context.Context, ownerID string) ([]domain.ContactWithPayee, error) {
	contacts, err := s.contactRepo.ListContacts(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts", slog.String("owner_id", ownerID))
		return nil, err
	}
	if contacts == nil {
		contacts = []domain.ContactWithPayee{}
	}
	return contacts, nil
}

// AddContact links ownerID to the user with req.Username.
func (s *contactService) AddContact(ctx context.Context, ownerID string, req dto.AddContactRequest) (*domain.ContactWithPayee, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	payee, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user '%s' %w", username, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to look up payee", slog.String("username", username))
		return nil, err
	}
	if payee.UserID == ownerID {
		return nil, fmt.Errorf("%w: cannot add yourself as a contact", apperrors.ErrValidation)
	}

	contact := domain.Contact{
		ContactID:     uuid.NewString(),
		UserID:        ownerID,
		ContactUserID: payee.UserID,
		CreatedAt:     time.Now(),
	}
	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save contact", slog.String("owner_id", ownerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Contact added", slog.String("owner_id", ownerID), slog.String("contact_id", contact.ContactID))
	return &domain.ContactWithPayee{
		Contact:        contact,
		PayeeFirstName: payee.FirstName,
		PayeeLastName:  payee.LastName,
		PayeeEmail:     payee.Email,
	}, nil
}
