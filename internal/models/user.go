package models

import "database/sql"

// User is a row of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"` // Empty for Google-only users
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	Address      sql.NullString `db:"address"`
	AuditFields
}
