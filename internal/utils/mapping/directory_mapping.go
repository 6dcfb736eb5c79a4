package mapping

import (
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/models"
)

// ToModelContact converts a domain Contact to a model Contact
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:     d.ContactID,
		UserID:        d.UserID,
		ContactUserID: d.ContactUserID,
		LastPaid:      ToNullTime(d.LastPaid),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainContact converts a model Contact to a domain Contact
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:     m.ContactID,
		UserID:        m.UserID,
		ContactUserID: m.ContactUserID,
		LastPaid:      FromNullTime(m.LastPaid),
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainContactWithPayee converts a joined contact row.
func ToDomainContactWithPayee(m models.ContactWithPayee) domain.ContactWithPayee {
	return domain.ContactWithPayee{
		Contact:        ToDomainContact(m.Contact),
		PayeeFirstName: m.PayeeFirstName,
		PayeeLastName:  m.PayeeLastName,
		PayeeEmail:     m.PayeeEmail,
	}
}

// ToModelCard converts a domain Card to a model Card
func ToModelCard(d domain.Card) models.Card {
	return models.Card(d)
}

// ToDomainCard converts a model Card to a domain Card
func ToDomainCard(m models.Card) domain.Card {
	return domain.Card(m)
}

// ToModelQRCode converts a domain QRCode to a model QRCode
func ToModelQRCode(d domain.QRCode) models.QRCode {
	return models.QRCode(d)
}

// ToDomainQRCode converts a model QRCode to a domain QRCode
func ToDomainQRCode(m models.QRCode) domain.QRCode {
	return domain.QRCode(m)
}
