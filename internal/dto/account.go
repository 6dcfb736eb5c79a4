package dto

import (
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/utils"
)

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string `json:"accountID"`
	Balance   string `json:"balance"` // Exactly two fraction digits
}

// ToAccountBalanceResponse converts a domain.Account to AccountBalanceResponse
func ToAccountBalanceResponse(acc *domain.Account) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID: acc.AccountID,
		Balance:   utils.FormatAmount(acc.Balance),
	}
}
