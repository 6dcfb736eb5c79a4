package models

import "time"

// QRCode is a row of the qr_codes table.
type QRCode struct {
	QRCodeID  string    `db:"qr_code_id"`
	UserID    string    `db:"user_id"`
	QRString  string    `db:"qr_string"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}
