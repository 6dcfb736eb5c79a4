package pgsql

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/models"
	"github.com/SscSPs/payhub_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const qrCodeColumns = `qr_code_id, user_id, qr_string, active, created_at`

type PgxQRCodeRepository struct {
	BaseRepository
}

func newPgxQRCodeRepository(base BaseRepository) portsrepo.QRCodeRepositoryFacade {
	return &PgxQRCodeRepository{BaseRepository: base}
}

var _ portsrepo.QRCodeRepositoryFacade = (*PgxQRCodeRepository)(nil)

func (r *PgxQRCodeRepository) findOne(ctx context.Context, what, where string, arg any) (*domain.QRCode, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+qrCodeColumns+` FROM qr_codes WHERE `+where+` = $1 AND active;`, arg)
	if err != nil {
		return nil, dbError("failed to get qr code", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.QRCode])
	if err != nil {
		return nil, notFoundOr(what, err)
	}
	code := mapping.ToDomainQRCode(m)
	return &code, nil
}

func (r *PgxQRCodeRepository) FindActiveQRCode(ctx context.Context, userID string) (*domain.QRCode, error) {
	return r.findOne(ctx, "active qr code for "+userID, "user_id", userID)
}

func (r *PgxQRCodeRepository) FindQRCodeByString(ctx context.Context, qrString string) (*domain.QRCode, error) {
	return r.findOne(ctx, "qr code", "qr_string", qrString)
}

// SaveQRCode retires the user's active code and stores code in its place.
func (r *PgxQRCodeRepository) SaveQRCode(ctx context.Context, code domain.QRCode) error {
	m := mapping.ToModelQRCode(code)
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE qr_codes SET active = FALSE WHERE user_id = $1 AND active;`, m.UserID); err != nil {
			return dbError("failed to retire qr codes", err)
		}
		query := `
			INSERT INTO qr_codes (qr_code_id, user_id, qr_string, active, created_at)
			VALUES ($1, $2, $3, $4, $5);
		`
		if _, err := tx.Exec(ctx, query, m.QRCodeID, m.UserID, m.QRString, m.Active, m.CreatedAt); err != nil {
			return classifyWriteError("qr code", err)
		}
		return nil
	})
}
