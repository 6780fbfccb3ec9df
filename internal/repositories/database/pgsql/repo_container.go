package pgsql

import (
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the concrete pgx repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	openingBalanceRepo := newPgxOpeningBalanceRepository(dbPool)
	balanceSheetRepo := newPgxBalanceSheetRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		JournalRepo:        journalRepo,
		OpeningBalanceRepo: openingBalanceRepo,
		BalanceSheetRepo:   balanceSheetRepo,
		TxManager:          &accountRepo.BaseRepository,
	}
}
