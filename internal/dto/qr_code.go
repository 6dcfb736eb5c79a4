package dto

import (
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// QRCodeResponse defines the data returned for a QR code.
type QRCodeResponse struct {
	QRCodeID  string    `json:"id"`
	QRString  string    `json:"qrString"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResolveQRCodeRequest carries a scanned QR payload.
type ResolveQRCodeRequest struct {
	QRString string `json:"qrString" binding:"required"`
}

// ResolveQRCodeResponse names the payee behind a QR code, ready to use as recipientName.
type ResolveQRCodeResponse struct {
	UserID        string `json:"userId"`
	RecipientName string `json:"recipientName"`
}

// ToQRCodeResponse converts a domain.QRCode to QRCodeResponse
func ToQRCodeResponse(code *domain.QRCode) QRCodeResponse {
	return QRCodeResponse{
		QRCodeID:  code.QRCodeID,
		QRString:  code.QRString,
		Active:    code.Active,
		CreatedAt: code.CreatedAt,
	}
}
