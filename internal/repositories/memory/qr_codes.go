package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
)

func (s *Store) FindActiveQRCode(ctx context.Context, userID string) (*domain.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, code := range s.qrCodes {
		if code.UserID == userID && code.Active {
			found := code
			return &found, nil
		}
	}
	return nil, fmt.Errorf("active qr code for %s: %w", userID, apperrors.ErrNotFound)
}

func (s *Store) FindQRCodeByString(ctx context.Context, qrString string) (*domain.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.qrByString[qrString]
	if !ok || !s.qrCodes[id].Active {
		return nil, fmt.Errorf("qr code: %w", apperrors.ErrNotFound)
	}
	code := s.qrCodes[id]
	return &code, nil
}

// SaveQRCode deactivates the user's codes and stores code as the active one.
func (s *Store) SaveQRCode(ctx context.Context, code domain.QRCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.qrByString[code.QRString]; taken {
		return fmt.Errorf("qr string: %w", apperrors.ErrDuplicate)
	}
	for id, existing := range s.qrCodes {
		if existing.UserID == code.UserID && existing.Active {
			existing.Active = false
			s.qrCodes[id] = existing
		}
	}
	code.Active = true
	s.qrCodes[code.QRCodeID] = code
	s.qrByString[code.QRString] = code.QRCodeID
	return nil
}
