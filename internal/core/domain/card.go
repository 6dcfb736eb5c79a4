package domain

import "time"

// Card is a stored payment card. Only the last four digits of the number are kept.
type Card struct {
	CardID         string    `json:"id"`
	UserID         string    `json:"userId"`
	Last4          string    `json:"last4"`
	CardholderName string    `json:"cardholderName"`
	ExpiryDate     string    `json:"expiryDate"` // MM/YY
	CardType       string    `json:"cardType"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MaskedNumber renders the card number the way the UI shows it.
func (c Card) MaskedNumber() string {
	return "•••• •••• •••• " + c.Last4
}
