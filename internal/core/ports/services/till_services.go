package services

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

// TillReaderSvc defines read operations for tills, balances and transactions.
type TillReaderSvc interface {
	// GetTillByID retrieves a till by id.
	GetTillByID(ctx context.Context, tillID string) (*domain.Till, error)

	// ListTills retrieves tills, optionally scoped to a branch.
	ListTills(ctx context.Context, branchID *string) ([]domain.Till, error)

	// GetCurrentTillBalances retrieves the till's per-currency cash balances.
	GetCurrentTillBalances(ctx context.Context, tillID string) ([]domain.CashLedgerAccount, error)

	// ListTransactions retrieves till transactions visible to the caller:
	// managers and compliance officers see everything, tellers their own.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams, callerID string) ([]domain.TillTransaction, error)

	// GetCurrentTillTransactions retrieves the caller's transactions on a
	// till, optionally limited to the active sign-in session.
	GetCurrentTillTransactions(ctx context.Context, tillID string, callerID string, currentSessionOnly bool) ([]domain.TillTransaction, error)
}

// TillWriterSvc defines write operations for tills and their cash activity.
type TillWriterSvc interface {
	// CreateTill persists a new till.
	CreateTill(ctx context.Context, req dto.CreateTillRequest, creatorUserID string) (*domain.Till, error)

	// UpdateTill applies a typed partial update.
	UpdateTill(ctx context.Context, tillID string, req dto.UpdateTillRequest, userID string) (*domain.Till, error)

	// RemoveTill deactivates a till.
	RemoveTill(ctx context.Context, tillID string, userID string) error

	// SignIn makes the caller the till occupant; occupied non-shared tills conflict.
	SignIn(ctx context.Context, tillID, userID string) (*domain.Till, error)

	// SignOut releases the till; only the current occupant may.
	SignOut(ctx context.Context, tillID, userID string) error

	// CreateCashAccounts idempotently provisions one cash account per active
	// currency the till lacks. Returns the number created.
	CreateCashAccounts(ctx context.Context, tillID string, userID string) (int, error)

	// CreateCashMovement applies a cash_in/cash_out/adjustment to the till.
	CreateCashMovement(ctx context.Context, tillID string, req dto.CreateCashMovementRequest, userID string) (*domain.TillTransaction, error)

	// CreateCurrencyExchange applies both legs of a buy/sell exchange atomically.
	CreateCurrencyExchange(ctx context.Context, tillID string, req dto.CreateExchangeRequest, userID string) (*domain.TillTransaction, error)
}

// TillSvcFacade combines all till service interfaces.
type TillSvcFacade interface {
	TillReaderSvc
	TillWriterSvc
}
