package repositories

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// CardReader defines read operations for stored cards
type CardReader interface {
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCardsByUserID(ctx context.Context, userID string) ([]domain.Card, error)
}

// CardWriter defines write operations for stored cards.
// Implementations keep at most one default card per user.
type CardWriter interface {
	// SaveCard persists a new card; when card.IsDefault every other default of the
	// same user is cleared in the same atomic unit.
	SaveCard(ctx context.Context, card domain.Card) error

	// SetDefaultCard clears the user's defaults and marks cardID as default, atomically.
	SetDefaultCard(ctx context.Context, userID string, cardID string) error

	// DeleteCard removes a card owned by userID.
	DeleteCard(ctx context.Context, userID string, cardID string) error
}

// CardRepositoryFacade combines all card-related repository interfaces
type CardRepositoryFacade interface {
	CardReader
	CardWriter
}
