package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/models"
	"github.com/SscSPs/payhub_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const contactWithPayeeColumns = `c.contact_id, c.user_id, c.contact_user_id, c.last_paid, c.created_at,
	u.first_name, u.last_name, u.email`

type PgxContactRepository struct {
	BaseRepository
}

func newPgxContactRepository(base BaseRepository) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{BaseRepository: base}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

// FindByDisplayName matches "first last" of the payee exactly; the oldest contact wins.
func (r *PgxContactRepository) FindByDisplayName(ctx context.Context, ownerID string, displayName string) (*domain.Contact, error) {
	query := `
		SELECT ` + contactWithPayeeColumns + `
		FROM contacts c
		JOIN users u ON u.user_id = c.contact_user_id
		WHERE c.user_id = $1 AND u.first_name || ' ' || u.last_name = $2
		ORDER BY c.seq
		LIMIT 1;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, displayName)
	if err != nil {
		return nil, dbError("failed to find contact", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ContactWithPayee])
	if err != nil {
		return nil, notFoundOr(fmt.Sprintf("contact %q", displayName), err)
	}
	contact := mapping.ToDomainContact(m.Contact)
	return &contact, nil
}

func (r *PgxContactRepository) ListContacts(ctx context.Context, ownerID string) ([]domain.ContactWithPayee, error) {
	query := `
		SELECT ` + contactWithPayeeColumns + `
		FROM contacts c
		JOIN users u ON u.user_id = c.contact_user_id
		WHERE c.user_id = $1
		ORDER BY c.seq;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, dbError("failed to list contacts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ContactWithPayee])
	if err != nil {
		return nil, dbError("failed to scan contacts", err)
	}

	contacts := make([]domain.ContactWithPayee, len(ms))
	for i, m := range ms {
		contacts[i] = mapping.ToDomainContactWithPayee(m)
	}
	return contacts, nil
}

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		INSERT INTO contacts (contact_id, user_id, contact_user_id, last_paid, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, m.ContactID, m.UserID, m.ContactUserID, m.LastPaid, m.CreatedAt); err != nil {
		return classifyWriteError("contact", err)
	}
	return nil
}

func (r *PgxContactRepository) Touch(ctx context.Context, contactID string, ts time.Time) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE contacts SET last_paid = $2 WHERE contact_id = $1;`, contactID, ts)
	if err != nil {
		return dbError("failed to update contact", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", contactID, apperrors.ErrNotFound)
	}
	return nil
}
