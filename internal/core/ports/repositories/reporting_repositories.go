package repositories

import (
	"context"
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// ReportingReader defines the read paths the reconciliation and P&L engine
// consumes. Each call reads one consistent snapshot.
type ReportingReader interface {
	// ListTransactionsInWindow retrieves transactions created inside
	// [from, to), optionally narrowed to one branch via the owning till.
	ListTransactionsInWindow(ctx context.Context, from, to time.Time, branchID *string) ([]domain.TillTransaction, error)

	// ListCompletedExchanges retrieves completed currency_buy/currency_sell
	// transactions, optionally bounded by creation time and branch.
	ListCompletedExchanges(ctx context.Context, from, to *time.Time, branchID *string) ([]domain.TillTransaction, error)
}
