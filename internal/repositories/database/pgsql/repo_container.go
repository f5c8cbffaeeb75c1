package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		TillRepo:         newPgxTillRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		InventoryRepo:    newPgxInventoryRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
