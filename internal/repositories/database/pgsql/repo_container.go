package pgsql

import (
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(base),
		TransactionRepo: newPgxTransactionRepository(base),
		ContactRepo:     newPgxContactRepository(base),
		CardRepo:        newPgxCardRepository(base),
		UserRepo:        newPgxUserRepository(base),
		QRCodeRepo:      newPgxQRCodeRepository(base),
	}
}
