package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyDayTotals aggregates one currency's completed exchange activity
// inside a reconciliation window.
type CurrencyDayTotals struct {
	CurrencyCode string          `json:"currencyCode"`
	BoughtAmount decimal.Decimal `json:"boughtAmount"`
	BoughtCount  int             `json:"boughtCount"`
	SoldAmount   decimal.Decimal `json:"soldAmount"`
	SoldCount    int             `json:"soldCount"`
}

// DailyReconciliation is the midnight-to-midnight picture of one day:
// completed vs voided transactions, per-currency totals, the branch's current
// inventory snapshot and the day's net flow.
type DailyReconciliation struct {
	Date              time.Time           `json:"date"`
	BranchID          string              `json:"branchID,omitempty"`
	CompletedCount    int                 `json:"completedCount"`
	VoidedCount       int                 `json:"voidedCount"`
	CurrencyTotals    []CurrencyDayTotals `json:"currencyTotals"`
	InventorySnapshot []CurrencyInventory `json:"inventorySnapshot"`
	TotalBuy          decimal.Decimal     `json:"totalBuy"`
	TotalSell         decimal.Decimal     `json:"totalSell"`
	Net               decimal.Decimal     `json:"net"` // totalBuy - totalSell
}

// ProfitLossRow is the spread-based profit estimate for one currency.
// Estimates use the latest known mid rate at query time, not the rate
// effective when each transaction happened.
type ProfitLossRow struct {
	CurrencyCode     string          `json:"currencyCode"`
	TransactionCount int             `json:"transactionCount"`
	Volume           decimal.Decimal `json:"volume"`
	EstimatedProfit  decimal.Decimal `json:"estimatedProfit"`
}
