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

const userColumns = `user_id, username, password_hash, first_name, last_name, email, phone, address,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(base BaseRepository) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: base}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, what, where string, arg any) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1;`, arg)
	if err != nil {
		return nil, dbError("failed to get user", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, notFoundOr(what, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user "+userID, "user_id", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, fmt.Sprintf("user with username %q", username), "username", username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, fmt.Sprintf("user with email %q", email), "email", email)
}

// SaveUserWithAccount inserts the user row, its account row and any initial
// postings in one transaction.
func (r *PgxUserRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account, initial ...domain.Transaction) error {
	mu := mapping.ToModelUser(user)
	ma := mapping.ToModelAccount(account)

	return r.InTx(ctx, func(tx pgx.Tx) error {
		userQuery := `
			INSERT INTO users (user_id, username, password_hash, first_name, last_name, email, phone, address,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err := tx.Exec(ctx, userQuery,
			mu.UserID, mu.Username, mu.PasswordHash, mu.FirstName, mu.LastName, mu.Email, mu.Phone, mu.Address,
			mu.CreatedAt, mu.CreatedBy, mu.LastUpdatedAt, mu.LastUpdatedBy,
		)
		if err != nil {
			return classifyWriteError("user "+mu.Username, err)
		}

		accountQuery := `
			INSERT INTO accounts (account_id, balance, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4);
		`
		if _, err := tx.Exec(ctx, accountQuery, ma.AccountID, ma.Balance, ma.CreatedAt, ma.LastUpdatedAt); err != nil {
			return classifyWriteError("account "+ma.AccountID, err)
		}

		unit := &pgxLedgerTx{tx: tx, accountID: ma.AccountID}
		for i := range initial {
			if err := unit.InsertTransaction(ctx, &initial[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateUser updates profile fields. Username and creation audit fields are immutable.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UserID, m.FirstName, m.LastName, m.Email, m.Phone, m.Address, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return classifyWriteError("user "+m.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", m.UserID, apperrors.ErrNotFound)
	}
	return nil
}
