package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories translate.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, dbError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return dbError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return dbError("failed to rollback transaction", err)
	}
	return nil
}

// InTx runs fn inside a transaction, committing only when fn succeeds.
func (r *BaseRepository) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(context.WithoutCancel(ctx), tx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// dbError marks err as a storage failure.
func dbError(msg string, err error) error {
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

// pgErrCode returns the SQLSTATE of a Postgres error, or "".
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classifyWriteError maps constraint violations to domain errors and
// everything else to a storage failure.
func classifyWriteError(what string, err error) error {
	switch pgErrCode(err) {
	case uniqueViolation:
		return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
	case foreignKeyViolation:
		return fmt.Errorf("%s: referenced row %w", what, apperrors.ErrNotFound)
	case checkViolation:
		return fmt.Errorf("%w: %s violates a constraint", apperrors.ErrValidation, what)
	}
	return dbError("failed to write "+what, err)
}

// notFoundOr maps pgx.ErrNoRows to ErrNotFound and anything else to a storage failure.
func notFoundOr(what string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return dbError("failed to read "+what, err)
}
