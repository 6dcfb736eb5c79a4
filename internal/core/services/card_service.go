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

type cardService struct {
	BaseService
	cardRepo portsrepo.CardRepositoryFacade
}

// NewCardService creates a new card service.
func NewCardService(cardRepo portsrepo.CardRepositoryFacade) portssvc.CardSvcFacade {
	return &cardService{cardRepo: cardRepo}
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) ListCards(ctx context.Context, userID string) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCardsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cards", slog.String("user_id", userID))
		return nil, err
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, nil
}

// CreateCard stores a card. The full number and CVV are dropped after validation.
func (s *cardService) CreateCard(ctx context.Context, userID string, req dto.CreateCardRequest) (*domain.Card, error) {
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if len(number) < 4 {
		return nil, fmt.Errorf("%w: card number is too short", apperrors.ErrValidation)
	}

	card := domain.Card{
		CardID:         uuid.NewString(),
		UserID:         userID,
		Last4:          number[len(number)-4:],
		CardholderName: strings.TrimSpace(req.CardholderName),
		ExpiryDate:     req.ExpiryDate,
		CardType:       strings.ToLower(req.CardType),
		IsDefault:      req.IsDefault,
		CreatedAt:      time.Now(),
	}
	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		s.LogError(ctx, err, "Failed to save card", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Card added", slog.String("card_id", card.CardID), slog.Bool("is_default", card.IsDefault))
	return &card, nil
}

// checkCardOwner reports ErrNotFound for an unknown card and ErrForbidden for
// a card saved by someone else.
func (s *cardService) checkCardOwner(ctx context.Context, userID string, cardID string) error {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card.UserID != userID {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Card belongs to another user",
			slog.String("card_id", cardID), slog.String("user_id", userID))
		return fmt.Errorf("card %s: %w", cardID, apperrors.ErrForbidden)
	}
	return nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID string, cardID string) error {
	if err := s.checkCardOwner(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.DeleteCard(ctx, userID, cardID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete card", slog.String("card_id", cardID))
		}
		return err
	}
	s.LogInfo(ctx, "Card deleted", slog.String("card_id", cardID))
	return nil
}

func (s *cardService) SetDefaultCard(ctx context.Context, userID string, cardID string) error {
	if err := s.checkCardOwner(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.SetDefaultCard(ctx, userID, cardID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to set default card", slog.String("card_id", cardID))
		}
		return err
	}
	return nil
}
