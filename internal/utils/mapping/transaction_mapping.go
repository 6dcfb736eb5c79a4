package mapping

import (
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		Description:     d.Description,
		Category:        d.Category,
		RecipientName:   ToNullString(d.RecipientName),
		Status:          string(d.Status),
		Date:            d.Date,
		PaymentMethod:   ToNullString(d.PaymentMethod),
		CardID:          ToNullString(d.CardID),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Description:     m.Description,
		Category:        m.Category,
		RecipientName:   FromNullString(m.RecipientName),
		Status:          domain.TransactionStatus(m.Status),
		Date:            m.Date,
		PaymentMethod:   FromNullString(m.PaymentMethod),
		CardID:          FromNullString(m.CardID),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
