package pgsql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/models"
	"github.com/SscSPs/payhub_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, account_id, amount, transaction_type, description, category,
	recipient_name, status, date, payment_method, card_id`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(base BaseRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: base}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// RunInAccountTx runs fn in one database transaction. The account row lock taken by
// FindAccountForUpdate serialises units of the same account until commit.
func (r *PgxTransactionRepository) RunInAccountTx(ctx context.Context, accountID string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgxLedgerTx{tx: tx, accountID: accountID})
	})
}

// pgxLedgerTx is the LedgerTx view of an open pgx transaction.
type pgxLedgerTx struct {
	tx        pgx.Tx
	accountID string
}

func (t *pgxLedgerTx) checkScope(accountID string) error {
	if accountID != t.accountID {
		return apperrors.NewAppError(http.StatusInternalServerError,
			fmt.Sprintf("ledger unit for account %s cannot write account %s", t.accountID, accountID), nil)
	}
	return nil
}

func (t *pgxLedgerTx) FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if err := t.checkScope(accountID); err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return scanAccount(t.tx.QueryRow(ctx, query, accountID), accountID)
}

// InsertTransaction stores txn with a server date that never precedes the
// account's latest stored date. GREATEST ignores the NULL of an empty history.
func (t *pgxLedgerTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	if err := t.checkScope(txn.AccountID); err != nil {
		return err
	}
	m := mapping.ToModelTransaction(*txn)

	query := `
		INSERT INTO transactions (account_id, amount, transaction_type, description, category,
			recipient_name, status, payment_method, card_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			GREATEST(statement_timestamp(), (SELECT MAX(date) FROM transactions WHERE account_id = $1)))
		RETURNING transaction_id, date;
	`
	err := t.tx.QueryRow(ctx, query,
		m.AccountID,
		m.Amount,
		m.TransactionType,
		m.Description,
		m.Category,
		m.RecipientName,
		m.Status,
		m.PaymentMethod,
		m.CardID,
	).Scan(&txn.TransactionID, &txn.Date)
	if err != nil {
		return classifyWriteError("transaction", err)
	}
	return nil
}

func (t *pgxLedgerTx) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := t.checkScope(accountID); err != nil {
		return decimal.Zero, err
	}
	query := `
		UPDATE accounts SET balance = balance + $2, last_updated_at = now()
		WHERE account_id = $1
		RETURNING balance;
	`
	var balance decimal.Decimal
	if err := t.tx.QueryRow(ctx, query, accountID, delta).Scan(&balance); err != nil {
		return decimal.Zero, notFoundOr("account "+accountID, err)
	}
	return balance, nil
}

// ListTransactionsByAccountID returns the newest transactions first. A NULL limit returns all.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY date DESC, transaction_id DESC
		LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, accountID, lim)
	if err != nil {
		return nil, dbError("failed to list transactions", err)
	}
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, dbError("failed to scan transactions", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, accountID string, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND account_id = $2;`
	rows, err := r.Pool.Query(ctx, query, transactionID, accountID)
	if err != nil {
		return nil, dbError("failed to get transaction", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, notFoundOr(fmt.Sprintf("transaction %d", transactionID), err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}
