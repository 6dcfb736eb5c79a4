package domain

import "time"

// Contact links an owner to a payee they pay regularly.
type Contact struct {
	ContactID     string     `json:"id"`
	UserID        string     `json:"userId"`        // Owner
	ContactUserID string     `json:"contactUserId"` // Payee
	LastPaid      *time.Time `json:"lastPaid"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ContactWithPayee is a contact joined to the payee's identity.
type ContactWithPayee struct {
	Contact
	PayeeFirstName string
	PayeeLastName  string
	PayeeEmail     string
}

// DisplayName is the payee's full name as recipient labels spell it.
func (c ContactWithPayee) DisplayName() string {
	return DisplayName(c.PayeeFirstName, c.PayeeLastName)
}
