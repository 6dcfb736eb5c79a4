package pgsql

import (
	"context"

	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/models"
	"github.com/SscSPs/payhub_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, balance, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID), accountID)
}

func scanAccount(row pgx.Row, accountID string) (*domain.Account, error) {
	var m models.Account
	if err := row.Scan(&m.AccountID, &m.Balance, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return nil, notFoundOr("account "+accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}
