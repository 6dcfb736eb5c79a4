package models

import (
	"database/sql"
	"time"
)

// Contact is a row of the contacts table.
type Contact struct {
	ContactID     string       `db:"contact_id"`
	UserID        string       `db:"user_id"`
	ContactUserID string       `db:"contact_user_id"`
	LastPaid      sql.NullTime `db:"last_paid"`
	CreatedAt     time.Time    `db:"created_at"`
}

// ContactWithPayee is a contact joined to the payee's user row.
type ContactWithPayee struct {
	Contact
	PayeeFirstName string `db:"first_name"`
	PayeeLastName  string `db:"last_name"`
	PayeeEmail     string `db:"email"`
}
