package domain_test

import (
	"testing"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_BalanceEffect(t *testing.T) {
	amount := decimal.RequireFromString("39.99")

	tests := []struct {
		name   string
		txType domain.TransactionType
		status domain.TransactionStatus
		want   decimal.Decimal
	}{
		{"completed credit adds", domain.Credit, domain.StatusCompleted, amount},
		{"completed debit subtracts", domain.Debit, domain.StatusCompleted, amount.Neg()},
		{"processing debit is not applied", domain.Debit, domain.StatusProcessing, decimal.Zero},
		{"failed credit is not applied", domain.Credit, domain.StatusFailed, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Amount: amount, TransactionType: tt.txType, Status: tt.status}
			got, err := txn.BalanceEffect()
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestTransaction_SignedAmount_UnknownType(t *testing.T) {
	txn := domain.Transaction{Amount: decimal.NewFromInt(1), TransactionType: "refund"}
	_, err := txn.SignedAmount()
	assert.Error(t, err)
}

func TestTransaction_Validate(t *testing.T) {
	valid := func() domain.Transaction {
		return domain.Transaction{
			AccountID:       "acc_123",
			Amount:          decimal.RequireFromString("50.00"),
			TransactionType: domain.Debit,
			Description:     "Payment to Sarah Johnson",
			Category:        domain.CategoryPayment,
			Status:          domain.StatusCompleted,
		}
	}

	tests := []struct {
		name   string
		mutate func(*domain.Transaction)
		errMsg string
	}{
		{"valid", func(*domain.Transaction) {}, ""},
		{"missing account", func(tx *domain.Transaction) { tx.AccountID = "" }, "account ID is required"},
		{"zero amount", func(tx *domain.Transaction) { tx.Amount = decimal.Zero }, "amount must be positive"},
		{"negative amount", func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(-5) }, "amount must be positive"},
		{"three fraction digits", func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("1.005") }, "fraction digits"},
		{"trailing zero fraction digits are fine", func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("1.500") }, ""},
		{"bad type", func(tx *domain.Transaction) { tx.TransactionType = "refund" }, "credit or debit"},
		{"bad status", func(tx *domain.Transaction) { tx.Status = "pending" }, "status must be"},
		{"missing description", func(tx *domain.Transaction) { tx.Description = "" }, "description is required"},
		{"missing category", func(tx *domain.Transaction) { tx.Category = "" }, "category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBalanceFloorPolicy(t *testing.T) {
	negative := decimal.RequireFromString("-0.01")

	assert.True(t, domain.BalanceFloorUnchecked.Allows(negative))
	assert.False(t, domain.BalanceFloorNonNegative.Allows(negative))
	assert.True(t, domain.BalanceFloorNonNegative.Allows(decimal.Zero))
	assert.False(t, domain.BalanceFloorPolicy("sometimes").IsValid())
}

func TestDisplayName(t *testing.T) {
	u := domain.User{FirstName: "Sarah", LastName: "Johnson"}
	assert.Equal(t, "Sarah Johnson", u.DisplayName())

	c := domain.ContactWithPayee{PayeeFirstName: "Sarah", PayeeLastName: "Johnson"}
	assert.Equal(t, "Sarah Johnson", c.DisplayName())
}
