package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyDayTotalsResponse aggregates one currency inside a reconciliation window.
type CurrencyDayTotalsResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	BoughtAmount decimal.Decimal `json:"boughtAmount"`
	BoughtCount  int             `json:"boughtCount"`
	SoldAmount   decimal.Decimal `json:"soldAmount"`
	SoldCount    int             `json:"soldCount"`
}

// DailyReconciliationResponse is the API shape of one day's reconciliation.
type DailyReconciliationResponse struct {
	Date              string                      `json:"date"`
	BranchID          string                      `json:"branchID,omitempty"`
	CompletedCount    int                         `json:"completedCount"`
	VoidedCount       int                         `json:"voidedCount"`
	CurrencyTotals    []CurrencyDayTotalsResponse `json:"currencyTotals"`
	InventorySnapshot []InventoryResponse         `json:"inventorySnapshot"`
	TotalBuy          decimal.Decimal             `json:"totalBuy"`
	TotalSell         decimal.Decimal             `json:"totalSell"`
	Net               decimal.Decimal             `json:"net"`
}

// ProfitLossRowResponse is the estimated spread profit for one currency.
type ProfitLossRowResponse struct {
	CurrencyCode     string          `json:"currencyCode"`
	TransactionCount int             `json:"transactionCount"`
	Volume           decimal.Decimal `json:"volume"`
	EstimatedProfit  decimal.Decimal `json:"estimatedProfit"`
}

// ProfitLossResponse is the API shape of the P&L estimate.
type ProfitLossResponse struct {
	DateFrom string                  `json:"dateFrom,omitempty"`
	DateTo   string                  `json:"dateTo,omitempty"`
	BranchID string                  `json:"branchID,omitempty"`
	Rows     []ProfitLossRowResponse `json:"rows"`
	Total    decimal.Decimal         `json:"total"`
}

// ToDailyReconciliationResponse converts a domain reconciliation to a DTO.
func ToDailyReconciliationResponse(r *domain.DailyReconciliation) DailyReconciliationResponse {
	resp := DailyReconciliationResponse{
		Date:              r.Date.Format("2006-01-02"),
		BranchID:          r.BranchID,
		CompletedCount:    r.CompletedCount,
		VoidedCount:       r.VoidedCount,
		CurrencyTotals:    make([]CurrencyDayTotalsResponse, len(r.CurrencyTotals)),
		InventorySnapshot: ToInventoryResponses(r.InventorySnapshot),
		TotalBuy:          r.TotalBuy,
		TotalSell:         r.TotalSell,
		Net:               r.Net,
	}
	for i, ct := range r.CurrencyTotals {
		resp.CurrencyTotals[i] = CurrencyDayTotalsResponse{
			CurrencyCode: ct.CurrencyCode,
			BoughtAmount: ct.BoughtAmount,
			BoughtCount:  ct.BoughtCount,
			SoldAmount:   ct.SoldAmount,
			SoldCount:    ct.SoldCount,
		}
	}
	return resp
}

// ToProfitLossResponse converts P&L rows to a DTO.
func ToProfitLossResponse(rows []domain.ProfitLossRow, from, to *time.Time, branchID *string) ProfitLossResponse {
	resp := ProfitLossResponse{
		Rows:  make([]ProfitLossRowResponse, len(rows)),
		Total: decimal.Zero,
	}
	if from != nil {
		resp.DateFrom = from.Format("2006-01-02")
	}
	if to != nil {
		resp.DateTo = to.Format("2006-01-02")
	}
	if branchID != nil {
		resp.BranchID = *branchID
	}
	for i, row := range rows {
		resp.Rows[i] = ProfitLossRowResponse{
			CurrencyCode:     row.CurrencyCode,
			TransactionCount: row.TransactionCount,
			Volume:           row.Volume,
			EstimatedProfit:  row.EstimatedProfit,
		}
		resp.Total = resp.Total.Add(row.EstimatedProfit)
	}
	return resp
}
