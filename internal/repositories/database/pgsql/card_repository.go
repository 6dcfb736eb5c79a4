package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/models"
	"github.com/SscSPs/payhub_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const cardColumns = `card_id, user_id, last4, cardholder_name, expiry_date, card_type, is_default, created_at`

type PgxCardRepository struct {
	BaseRepository
}

func newPgxCardRepository(base BaseRepository) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{BaseRepository: base}
}

var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+cardColumns+` FROM cards WHERE card_id = $1;`, cardID)
	if err != nil {
		return nil, dbError("failed to get card", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Card])
	if err != nil {
		return nil, notFoundOr("card "+cardID, err)
	}
	card := mapping.ToDomainCard(m)
	return &card, nil
}

func (r *PgxCardRepository) ListCardsByUserID(ctx context.Context, userID string) ([]domain.Card, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+cardColumns+` FROM cards WHERE user_id = $1 ORDER BY seq;`, userID)
	if err != nil {
		return nil, dbError("failed to list cards", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Card])
	if err != nil {
		return nil, dbError("failed to scan cards", err)
	}
	cards := make([]domain.Card, len(ms))
	for i, m := range ms {
		cards[i] = mapping.ToDomainCard(m)
	}
	return cards, nil
}

// lockOwner takes the owner's account row lock so default changes of one user
// are serialised.
func lockOwner(ctx context.Context, tx pgx.Tx, userID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT account_id FROM accounts WHERE account_id = $1 FOR UPDATE;`, userID).Scan(&id)
	if err != nil {
		return notFoundOr("user "+userID, err)
	}
	return nil
}

func clearDefaults(ctx context.Context, tx pgx.Tx, userID string) error {
	if _, err := tx.Exec(ctx, `UPDATE cards SET is_default = FALSE WHERE user_id = $1 AND is_default;`, userID); err != nil {
		return dbError("failed to clear default card", err)
	}
	return nil
}

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	m := mapping.ToModelCard(card)
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, m.UserID); err != nil {
			return err
		}
		if m.IsDefault {
			if err := clearDefaults(ctx, tx, m.UserID); err != nil {
				return err
			}
		}
		query := `
			INSERT INTO cards (card_id, user_id, last4, cardholder_name, expiry_date, card_type, is_default, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err := tx.Exec(ctx, query, m.CardID, m.UserID, m.Last4, m.CardholderName, m.ExpiryDate, m.CardType, m.IsDefault, m.CreatedAt)
		if err != nil {
			return classifyWriteError("card", err)
		}
		return nil
	})
}

func (r *PgxCardRepository) SetDefaultCard(ctx context.Context, userID string, cardID string) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, userID); err != nil {
			return err
		}
		if err := clearDefaults(ctx, tx, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE cards SET is_default = TRUE WHERE card_id = $1 AND user_id = $2;`, cardID, userID)
		if err != nil {
			return dbError("failed to set default card", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
		}
		return nil
	})
}

func (r *PgxCardRepository) DeleteCard(ctx context.Context, userID string, cardID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM cards WHERE card_id = $1 AND user_id = $2;`, cardID, userID)
	if err != nil {
		return dbError("failed to delete card", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", cardID, apperrors.ErrNotFound)
	}
	return nil
}
