package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

func (s *Store) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[cardID]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
	}
	return &card, nil
}

func (s *Store) ListCardsByUserID(ctx context.Context, userID string) ([]domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Card{}
	for _, id := range s.cardOrder {
		if card := s.cards[id]; card.UserID == userID {
			out = append(out, card)
		}
	}
	return out, nil
}

// SaveCard inserts the card under the owner's account lock, clearing other
// defaults first when the new card is the default.
func (s *Store) SaveCard(ctx context.Context, card domain.Card) error {
	lock := s.accountLock(card.UserID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[card.UserID]; !ok {
		return fmt.Errorf("user %s: %w", card.UserID, apperrors.ErrNotFound)
	}
	if _, exists := s.cards[card.CardID]; exists {
		return fmt.Errorf("card %s: %w", card.CardID, apperrors.ErrDuplicate)
	}
	if card.IsDefault {
		s.clearDefaultsLocked(card.UserID)
	}
	s.cards[card.CardID] = card
	s.cardOrder = append(s.cardOrder, card.CardID)
	return nil
}

func (s *Store) SetDefaultCard(ctx context.Context, userID string, cardID string) error {
	lock := s.accountLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.cards[cardID]
	if !ok || target.UserID != userID {
		return fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
	}
	s.clearDefaultsLocked(userID)
	target.IsDefault = true
	s.cards[cardID] = target
	return nil
}

func (s *Store) DeleteCard(ctx context.Context, userID string, cardID string) error {
	lock := s.accountLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
	}
	delete(s.cards, cardID)
	for i, id := range s.cardOrder {
		if id == cardID {
			s.cardOrder = append(s.cardOrder[:i], s.cardOrder[i+1:]...)
			break
		}
	}
	return nil
}

// clearDefaultsLocked requires s.mu held for writing.
func (s *Store) clearDefaultsLocked(userID string) {
	for id, card := range s.cards {
		if card.UserID == userID && card.IsDefault {
			card.IsDefault = false
			s.cards[id] = card
		}
	}
}
