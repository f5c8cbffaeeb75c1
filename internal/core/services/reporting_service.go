package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
	"github.com/fxbureau/fxbureau_backend/internal/utils/accounting"
)

// reportingService derives the daily reconciliation and the spread-based P&L
// estimate. Both are read-only aggregations over one consistent snapshot.
type reportingService struct {
	reportingRepo portsrepo.ReportingReader
	inventoryRepo portsrepo.InventoryReader
	rateRepo      portsrepo.ExchangeRateReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	reportingRepo portsrepo.ReportingReader,
	inventoryRepo portsrepo.InventoryReader,
	rateRepo portsrepo.ExchangeRateReader,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		inventoryRepo: inventoryRepo,
		rateRepo:      rateRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDailyReconciliation aggregates one midnight-to-midnight day in the
// date's own location. Bought/sold totals are keyed by the exchange's source
// currency: a buy takes that currency in, a sell pays it out.
func (s *reportingService) GetDailyReconciliation(ctx context.Context, date time.Time, branchID *string) (*domain.DailyReconciliation, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	transactions, err := s.reportingRepo.ListTransactionsInWindow(ctx, dayStart, dayEnd, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	recon := &domain.DailyReconciliation{
		Date:      dayStart,
		TotalBuy:  decimal.Zero,
		TotalSell: decimal.Zero,
	}
	if branchID != nil {
		recon.BranchID = *branchID
	}

	totalsByCurrency := make(map[string]*domain.CurrencyDayTotals)
	totals := func(code string) *domain.CurrencyDayTotals {
		if t, ok := totalsByCurrency[code]; ok {
			return t
		}
		t := &domain.CurrencyDayTotals{
			CurrencyCode: code,
			BoughtAmount: decimal.Zero,
			SoldAmount:   decimal.Zero,
		}
		totalsByCurrency[code] = t
		return t
	}

	for _, txn := range transactions {
		switch txn.Status {
		case domain.TxnCompleted:
			recon.CompletedCount++
		case domain.TxnVoided:
			recon.VoidedCount++
			continue
		default:
			continue
		}
		if !txn.IsExchange() {
			continue
		}
		t := totals(txn.FromCurrencyCode)
		switch txn.Type {
		case domain.TxnCurrencyBuy:
			t.BoughtAmount = t.BoughtAmount.Add(txn.FromAmount)
			t.BoughtCount++
			recon.TotalBuy = recon.TotalBuy.Add(txn.FromAmount)
		case domain.TxnCurrencySell:
			t.SoldAmount = t.SoldAmount.Add(txn.FromAmount)
			t.SoldCount++
			recon.TotalSell = recon.TotalSell.Add(txn.FromAmount)
		}
	}

	codes := make([]string, 0, len(totalsByCurrency))
	for code := range totalsByCurrency {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	recon.CurrencyTotals = make([]domain.CurrencyDayTotals, len(codes))
	for i, code := range codes {
		recon.CurrencyTotals[i] = *totalsByCurrency[code]
	}

	recon.Net = recon.TotalBuy.Sub(recon.TotalSell)

	if branchID != nil {
		snapshot, err := s.inventoryRepo.ListInventoryByBranch(ctx, *branchID)
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot inventory for branch %s: %w", *branchID, err)
		}
		recon.InventorySnapshot = snapshot
	}

	return recon, nil
}

// GetProfitLossByCurrency estimates spread profit per currency over the
// window. Each exchange is valued against the latest known mid rate at query
// time, not the rate effective when it happened; exchanges whose pair no
// longer has a published rate are skipped. Rows are grouped by the currency
// whose amount carries the rate delta and sorted by descending profit.
func (s *reportingService) GetProfitLossByCurrency(ctx context.Context, dateFrom, dateTo *time.Time, branchID *string) ([]domain.ProfitLossRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exchanges, err := s.reportingRepo.ListCompletedExchanges(ctx, dateFrom, dateTo, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed exchanges: %w", err)
	}

	midCache := make(map[string]*decimal.Decimal)
	currentMid := func(base, target string) (*decimal.Decimal, error) {
		key := base + "/" + target
		if mid, ok := midCache[key]; ok {
			return mid, nil
		}
		rate, err := s.rateRepo.FindCurrentRate(ctx, base, target)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				midCache[key] = nil
				return nil, nil
			}
			return nil, err
		}
		midCache[key] = &rate.MidRate
		return &rate.MidRate, nil
	}

	rowsByCurrency := make(map[string]*domain.ProfitLossRow)
	for _, txn := range exchanges {
		mid, err := currentMid(txn.FromCurrencyCode, txn.ToCurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve current rate %s/%s: %w", txn.FromCurrencyCode, txn.ToCurrencyCode, err)
		}
		if mid == nil {
			logger.Warn("No current rate for exchanged pair, excluded from P&L",
				slog.String("transactionID", txn.TransactionID),
				slog.String("pair", txn.FromCurrencyCode+"/"+txn.ToCurrencyCode))
			continue
		}

		profit := accounting.EstimatedProfit(txn.Type, txn.ExchangeRate, *mid, txn.FromAmount, txn.ToAmount)

		var code string
		var volume decimal.Decimal
		if txn.Type == domain.TxnCurrencyBuy {
			code, volume = txn.ToCurrencyCode, txn.ToAmount
		} else {
			code, volume = txn.FromCurrencyCode, txn.FromAmount
		}

		row, ok := rowsByCurrency[code]
		if !ok {
			row = &domain.ProfitLossRow{
				CurrencyCode:    code,
				Volume:          decimal.Zero,
				EstimatedProfit: decimal.Zero,
			}
			rowsByCurrency[code] = row
		}
		row.TransactionCount++
		row.Volume = row.Volume.Add(volume)
		row.EstimatedProfit = row.EstimatedProfit.Add(profit)
	}

	rows := make([]domain.ProfitLossRow, 0, len(rowsByCurrency))
	for _, row := range rowsByCurrency {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EstimatedProfit.Equal(rows[j].EstimatedProfit) {
			return rows[i].CurrencyCode < rows[j].CurrencyCode
		}
		return rows[i].EstimatedProfit.GreaterThan(rows[j].EstimatedProfit)
	})
	return rows, nil
}
