package dto

import (
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/utils"
)

// PostTransactionRequest is the intent to post a transaction against the caller's account.
// Amount is a decimal string ("39.99") so no precision is lost in transit.
type PostTransactionRequest struct {
	Amount          string  `json:"amount" binding:"required"`
	TransactionType string  `json:"type" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	RecipientName   *string `json:"recipientName"`
	Status          string  `json:"status"` // Defaults to completed
	PaymentMethod   *string `json:"paymentMethod"`
	CardID          *string `json:"cardId"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit *int `form:"limit"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID int64     `json:"id"`
	UserID        string    `json:"userId"`
	Amount        string    `json:"amount"` // Exactly two fraction digits
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	RecipientName *string   `json:"recipientName"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
	PaymentMethod *string   `json:"paymentMethod"`
	CardID        *string   `json:"cardId"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		UserID:        txn.AccountID,
		Amount:        utils.FormatAmount(txn.Amount),
		Type:          string(txn.TransactionType),
		Description:   txn.Description,
		Category:      txn.Category,
		RecipientName: txn.RecipientName,
		Status:        string(txn.Status),
		Date:          txn.Date.UTC(),
		PaymentMethod: txn.PaymentMethod,
		CardID:        txn.CardID,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
