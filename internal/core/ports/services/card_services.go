package services

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/dto"
)

// CardReaderSvc defines read operations for stored cards
type CardReaderSvc interface {
	ListCards(ctx context.Context, userID string) ([]domain.Card, error)
}

// CardWriterSvc defines write operations for stored cards
type CardWriterSvc interface {
	CreateCard(ctx context.Context, userID string, req dto.CreateCardRequest) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID string, cardID string) error
	// SetDefaultCard makes cardID the user's only default card.
	SetDefaultCard(ctx context.Context, userID string, cardID string) error
}

// CardSvcFacade combines all card-related service interfaces
type CardSvcFacade interface {
	CardReaderSvc
	CardWriterSvc
}
