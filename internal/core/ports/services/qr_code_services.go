package services

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

// QRCodeSvcFacade issues and resolves QR payment handles.
type QRCodeSvcFacade interface {
	// GetActiveQRCode returns the user's active code, issuing one if none exists.
	GetActiveQRCode(ctx context.Context, userID string) (*domain.QRCode, error)

	// IssueQRCode creates a new active code and deactivates the previous one.
	IssueQRCode(ctx context.Context, userID string) (*domain.QRCode, error)

	// ResolveQRCode returns the user an active code belongs to.
	ResolveQRCode(ctx context.Context, qrString string) (*domain.User, error)
}
