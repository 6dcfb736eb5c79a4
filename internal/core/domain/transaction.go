package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction's balance effect.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// TransactionStatus is the lifecycle state recorded with a transaction.
type TransactionStatus string

const (
	StatusCompleted  TransactionStatus = "completed"
	StatusProcessing TransactionStatus = "processing"
	StatusFailed     TransactionStatus = "failed"
)

// Well-known categories. Category is free text; these are the ones the UI groups by.
const (
	CategoryPayment  = "payment"
	CategoryBill     = "bill"
	CategoryShopping = "shopping"
	CategoryTransfer = "transfer"
)

// AmountScale is the number of fraction digits money is stored with.
const AmountScale = 2

// Transaction is an immutable record of a balance-affecting event on a single account.
type Transaction struct {
	TransactionID   int64             `json:"id"`     // Assigned by the store, monotonic
	AccountID       string            `json:"userId"` // Owning account (== user)
	Amount          decimal.Decimal   `json:"amount"` // Always positive
	TransactionType TransactionType   `json:"type"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	RecipientName   *string           `json:"recipientName"`
	Status          TransactionStatus `json:"status"`
	Date            time.Time         `json:"date"` // Assigned by the store, non-decreasing per account
	PaymentMethod   *string           `json:"paymentMethod"`
	CardID          *string           `json:"cardId"`
}

// IsValid reports whether t is credit or debit.
func (t TransactionType) IsValid() bool {
	return t == Credit || t == Debit
}

// IsValid reports whether s is one of the known statuses.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusProcessing, StatusFailed:
		return true
	}
	return false
}

// AffectsBalance reports whether the transaction is applied to the account balance.
// Only completed transactions move money.
func (t Transaction) AffectsBalance() bool {
	return t.Status == StatusCompleted
}

// SignedAmount returns +Amount for credits and -Amount for debits.
func (t Transaction) SignedAmount() (decimal.Decimal, error) {
	switch t.TransactionType {
	case Credit:
		return t.Amount, nil
	case Debit:
		return t.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s' for transaction %d", t.TransactionType, t.TransactionID)
	}
}

// BalanceEffect is the delta the transaction applies to its account: the signed
// amount when completed, zero otherwise.
func (t Transaction) BalanceEffect() (decimal.Decimal, error) {
	if !t.AffectsBalance() {
		return decimal.Zero, nil
	}
	return t.SignedAmount()
}

// Validate checks the record-level invariants of a transaction before it is stored.
func (t Transaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("account ID is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !t.Amount.Equal(t.Amount.Round(AmountScale)) {
		return fmt.Errorf("amount must have at most %d fraction digits", AmountScale)
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("transaction type must be credit or debit")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("status must be one of completed, processing, failed")
	}
	if t.Description == "" {
		return fmt.Errorf("description is required")
	}
	if t.Category == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}
