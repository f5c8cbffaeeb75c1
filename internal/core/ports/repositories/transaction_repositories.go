package repositories

import (
	"context"
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// TransactionFilter narrows ListTransactions.
type TransactionFilter struct {
	TillID       *string
	UserID       *string
	Status       *domain.TransactionStatus
	CreatedSince *time.Time
	Limit        int
}

// TransactionReader defines read operations for till transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a till transaction by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.TillTransaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.TillTransaction, error)

	// ListCompletedWithoutJournal retrieves completed transactions that no
	// journal entry references yet, oldest first. Used by the batch back-fill.
	ListCompletedWithoutJournal(ctx context.Context) ([]domain.TillTransaction, error)
}

// TransactionWriter persists till transactions together with their cash
// balance effects. Each call is one atomic unit: the affected cash account
// rows are locked, balance invariants are checked against that consistent
// read, and the transaction row plus every balance patch commit together or
// not at all. A leg that would go negative maps to
// apperrors.ErrInsufficientBalance with no partial application; a caller not
// signed into the till maps to apperrors.ErrForbidden.
type TransactionWriter interface {
	// SaveCashMovement applies a cash_in/cash_out/adjustment to the till's
	// cash account for txn.FromCurrencyCode and persists txn.
	SaveCashMovement(ctx context.Context, txn domain.TillTransaction) error

	// SaveCurrencyExchange applies both currency legs of a buy/sell exchange
	// and persists txn.
	SaveCurrencyExchange(ctx context.Context, txn domain.TillTransaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
