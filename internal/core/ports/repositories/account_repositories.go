package repositories

import (
	"context"
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// LedgerAccountFilter narrows ListLedgerAccounts.
type LedgerAccountFilter struct {
	MainAccountID *string
	CurrencyCode  *string
	BranchID      *string
	IsCash        *bool
	ActiveOnly    bool
}

// AccountReader defines read operations for the chart-of-accounts directory.
type AccountReader interface {
	// FindMainAccountByCategory retrieves the category root (assets, revenue, ...).
	FindMainAccountByCategory(ctx context.Context, category domain.MainAccountCategory) (*domain.MainAccount, error)

	// ListMainAccounts retrieves all category roots.
	ListMainAccounts(ctx context.Context) ([]domain.MainAccount, error)

	// FindLedgerAccountByID retrieves a ledger account by id.
	FindLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// FindLedgerAccountByCode retrieves a ledger account by its unique code.
	FindLedgerAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error)

	// ListLedgerAccounts retrieves ledger accounts matching the filter.
	ListLedgerAccounts(ctx context.Context, filter LedgerAccountFilter) ([]domain.LedgerAccount, error)

	// FindCashAccountByCurrency retrieves the active cash ledger account for a
	// currency, used to resolve journal posting legs.
	FindCashAccountByCurrency(ctx context.Context, currencyCode string) (*domain.LedgerAccount, error)
}

// AccountWriter defines write operations for the chart-of-accounts directory.
type AccountWriter interface {
	// SaveLedgerAccount persists a new ledger account. A duplicate code maps
	// to apperrors.ErrConflict.
	SaveLedgerAccount(ctx context.Context, account domain.LedgerAccount) error

	// UpdateLedgerAccount applies a typed partial update.
	UpdateLedgerAccount(ctx context.Context, accountID string, update domain.LedgerAccountUpdate, userID string, now time.Time) (*domain.LedgerAccount, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
