package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the balance-holding identity of a user. AccountID equals the owning UserID.
type Account struct {
	AccountID     string          `json:"accountID"`
	Balance       decimal.Decimal `json:"balance"` // Fixed two-fraction-digit precision
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// BalanceFloorPolicy decides whether a debit may take a balance below zero.
type BalanceFloorPolicy string

const (
	// BalanceFloorUnchecked allows overdraft.
	BalanceFloorUnchecked BalanceFloorPolicy = "unchecked"
	// BalanceFloorNonNegative rejects postings that leave the balance negative.
	BalanceFloorNonNegative BalanceFloorPolicy = "non_negative"
)

// IsValid reports whether p is a known policy.
func (p BalanceFloorPolicy) IsValid() bool {
	return p == BalanceFloorUnchecked || p == BalanceFloorNonNegative
}

// Allows reports whether a balance is acceptable under the policy.
func (p BalanceFloorPolicy) Allows(balance decimal.Decimal) bool {
	if p == BalanceFloorNonNegative {
		return !balance.IsNegative()
	}
	return true
}
