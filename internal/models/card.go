package models

import "time"

// Card is a row of the cards table.
type Card struct {
	CardID         string    `db:"card_id"`
	UserID         string    `db:"user_id"`
	Last4          string    `db:"last4"`
	CardholderName string    `db:"cardholder_name"`
	ExpiryDate     string    `db:"expiry_date"`
	CardType       string    `db:"card_type"`
	IsDefault      bool      `db:"is_default"`
	CreatedAt      time.Time `db:"created_at"`
}
