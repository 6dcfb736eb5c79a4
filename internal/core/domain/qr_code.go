package domain

import "time"

// QRCode is a scannable payment handle for a user. At most one per user is active.
type QRCode struct {
	QRCodeID  string    `json:"id"`
	UserID    string    `json:"userId"`
	QRString  string    `json:"qrString"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
