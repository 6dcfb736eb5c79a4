package repositories

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// QRCodeReader defines read operations for QR payment handles
type QRCodeReader interface {
	// FindActiveQRCode returns the user's active code.
	FindActiveQRCode(ctx context.Context, userID string) (*domain.QRCode, error)

	// FindQRCodeByString resolves a scanned payload to its (active) code.
	FindQRCodeByString(ctx context.Context, qrString string) (*domain.QRCode, error)
}

// QRCodeWriter defines write operations for QR payment handles
type QRCodeWriter interface {
	// SaveQRCode deactivates the user's previous codes and stores code as active.
	SaveQRCode(ctx context.Context, code domain.QRCode) error
}

// QRCodeRepositoryFacade combines all QR-code repository interfaces
type QRCodeRepositoryFacade interface {
	QRCodeReader
	QRCodeWriter
}
