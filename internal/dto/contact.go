package dto

import (
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// AddContactRequest names the payee to add, by username.
type AddContactRequest struct {
	Username string `json:"username" binding:"required"`
}

// ContactResponse is a contact with the payee's display name.
type ContactResponse struct {
	ContactID string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	LastPaid  *time.Time `json:"lastPaid"`
}

// ToContactResponse converts a domain.ContactWithPayee to ContactResponse
func ToContactResponse(c *domain.ContactWithPayee) ContactResponse {
	return ContactResponse{
		ContactID: c.ContactID,
		Name:      c.DisplayName(),
		Email:     c.PayeeEmail,
		LastPaid:  c.LastPaid,
	}
}

// ToListContactResponse converts contacts to response DTOs
func ToListContactResponse(contacts []domain.ContactWithPayee) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i := range contacts {
		res[i] = ToContactResponse(&contacts[i])
	}
	return res
}
