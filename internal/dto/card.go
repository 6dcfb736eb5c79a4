package dto

import (
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// CreateCardRequest defines the data needed to store a card.
// The full number and CVV are validated and then discarded; only the last four digits are kept.
type CreateCardRequest struct {
	CardNumber     string `json:"cardNumber" binding:"required,numeric,min=12,max=19"`
	CardholderName string `json:"cardholderName" binding:"required"`
	ExpiryDate     string `json:"expiryDate" binding:"required,expiry"`
	CVV            string `json:"cvv" binding:"required,numeric,min=3,max=4"`
	CardType       string `json:"cardType" binding:"required,cardtype"`
	IsDefault      bool   `json:"isDefault"`
}

// CardResponse defines the data returned for a card.
type CardResponse struct {
	CardID         string    `json:"id"`
	CardNumber     string    `json:"cardNumber"` // Masked
	CardholderName string    `json:"cardholderName"`
	ExpiryDate     string    `json:"expiryDate"`
	CardType       string    `json:"cardType"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToCardResponse converts a domain.Card to CardResponse
func ToCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		CardID:         card.CardID,
		CardNumber:     card.MaskedNumber(),
		CardholderName: card.CardholderName,
		ExpiryDate:     card.ExpiryDate,
		CardType:       card.CardType,
		IsDefault:      card.IsDefault,
		CreatedAt:      card.CreatedAt,
	}
}

// ToListCardResponse converts a slice of domain.Card to response DTOs
func ToListCardResponse(cards []domain.Card) []CardResponse {
	res := make([]CardResponse, len(cards))
	for i := range cards {
		res[i] = ToCardResponse(&cards[i])
	}
	return res
}
