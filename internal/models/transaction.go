package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Rows are never updated.
type Transaction struct {
	TransactionID   int64           `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	Description     string          `db:"description"`
	Category        string          `db:"category"`
	RecipientName   sql.NullString  `db:"recipient_name"`
	Status          string          `db:"status"`
	Date            time.Time       `db:"date"`
	PaymentMethod   sql.NullString  `db:"payment_method"`
	CardID          sql.NullString  `db:"card_id"`
}
