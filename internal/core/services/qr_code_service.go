package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/google/uuid"
)

// QRStringPrefix starts every payload this service issues.
const QRStringPrefix = "payhub:user:"

type qrCodeService struct {
	BaseService
	qrRepo   portsrepo.QRCodeRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewQRCodeService creates a new QR code service.
func NewQRCodeService(qrRepo portsrepo.QRCodeRepositoryFacade, userRepo portsrepo.UserReader) portssvc.QRCodeSvcFacade {
	return &qrCodeService{qrRepo: qrRepo, userRepo: userRepo}
}

var _ portssvc.QRCodeSvcFacade = (*qrCodeService)(nil)

func (s *qrCodeService) GetActiveQRCode(ctx context.Context, userID string) (*domain.QRCode, error) {
	code, err := s.qrRepo.FindActiveQRCode(ctx, userID)
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load QR code", slog.String("user_id", userID))
		return nil, err
	}
	return s.IssueQRCode(ctx, userID)
}

func (s *qrCodeService) IssueQRCode(ctx context.Context, userID string) (*domain.QRCode, error) {
	nonce, err := utils.GenerateSecureRandomString(8)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate QR nonce")
		return nil, apperrors.NewInternalServerError("failed to generate QR code")
	}

	code := domain.QRCode{
		QRCodeID:  uuid.NewString(),
		UserID:    userID,
		QRString:  fmt.Sprintf("%s%s:%s", QRStringPrefix, userID, nonce),
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.qrRepo.SaveQRCode(ctx, code); err != nil {
		s.LogError(ctx, err, "Failed to save QR code", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "QR code issued", slog.String("user_id", userID), slog.String("qr_code_id", code.QRCodeID))
	return &code, nil
}

// ResolveQRCode maps a scanned payload to the user it pays.
func (s *qrCodeService) ResolveQRCode(ctx context.Context, qrString string) (*domain.User, error) {
	qrString = strings.TrimSpace(qrString)
	if !strings.HasPrefix(qrString, QRStringPrefix) {
		return nil, fmt.Errorf("%w: not a payhub QR code", apperrors.ErrValidation)
	}

	code, err := s.qrRepo.FindQRCodeByString(ctx, qrString)
	if err != nil {
		return nil, err
	}
	if !code.Active {
		return nil, fmt.Errorf("QR code %w", apperrors.ErrNotFound)
	}
	return s.userRepo.FindUserByID(ctx, code.UserID)
}
