package services

import (
	"context"
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// ReportingSvcFacade defines the reconciliation and P&L read paths.
type ReportingSvcFacade interface {
	// GetDailyReconciliation aggregates one local midnight-to-midnight day:
	// completed vs voided counts, per-currency bought/sold totals, the
	// branch's current inventory snapshot and net = totalBuy - totalSell.
	GetDailyReconciliation(ctx context.Context, date time.Time, branchID *string) (*domain.DailyReconciliation, error)

	// GetProfitLossByCurrency estimates spread profit per currency over the
	// optional window, valued at the latest known rate at query time, sorted
	// by descending estimated profit.
	GetProfitLossByCurrency(ctx context.Context, dateFrom, dateTo *time.Time, branchID *string) ([]domain.ProfitLossRow, error)
}
