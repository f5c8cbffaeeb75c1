package services

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart-of-accounts directory.
type AccountReaderSvc interface {
	// GetLedgerAccountByID retrieves a ledger account by id.
	GetLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// ListLedgerAccounts retrieves ledger accounts matching the filter.
	ListLedgerAccounts(ctx context.Context, filter repositories.LedgerAccountFilter) ([]domain.LedgerAccount, error)

	// ListMainAccounts retrieves the chart-of-accounts category roots.
	ListMainAccounts(ctx context.Context) ([]domain.MainAccount, error)

	// GetMainAccountByCategory retrieves one category root.
	GetMainAccountByCategory(ctx context.Context, category domain.MainAccountCategory) (*domain.MainAccount, error)
}

// AccountWriterSvc defines write operations for the chart-of-accounts directory.
type AccountWriterSvc interface {
	// CreateLedgerAccount persists a new ledger account; a duplicate code is
	// a state conflict.
	CreateLedgerAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.LedgerAccount, error)

	// UpdateLedgerAccount applies a typed partial update.
	UpdateLedgerAccount(ctx context.Context, accountID string, req dto.UpdateLedgerAccountRequest, userID string) (*domain.LedgerAccount, error)
}

// AccountSvcFacade combines all account-directory service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
