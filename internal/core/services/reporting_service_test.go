package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockInventoryRepo *MockInventoryRepository
	mockRateRepo      *MockExchangeRateRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockInventoryRepo, suite.mockRateRepo)
}

func exchange(txnType domain.TransactionType, status domain.TransactionStatus, from, to string, fromAmount, toAmount, rate decimal.Decimal) domain.TillTransaction {
	return domain.TillTransaction{
		TransactionID:    uuid.NewString(),
		Type:             txnType,
		Status:           status,
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		FromAmount:       fromAmount,
		ToAmount:         toAmount,
		ExchangeRate:     rate,
	}
}

func (suite *ReportingServiceTestSuite) TestGetDailyReconciliation_AggregatesOneDay() {
	ctx := context.Background()
	date := time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	branchID := uuid.NewString()

	transactions := []domain.TillTransaction{
		// Teller buys 100 USD from a customer for 1180 GHS.
		exchange(domain.TxnCurrencyBuy, domain.TxnCompleted, "USD", "GHS", decimal.NewFromInt(100), decimal.NewFromInt(1180), decimal.NewFromFloat(11.80)),
		// Teller sells 50 USD to a customer.
		exchange(domain.TxnCurrencySell, domain.TxnCompleted, "USD", "GHS", decimal.NewFromInt(50), decimal.NewFromInt(610), decimal.NewFromFloat(12.20)),
		exchange(domain.TxnCurrencyBuy, domain.TxnCompleted, "EUR", "GHS", decimal.NewFromInt(200), decimal.NewFromInt(2600), decimal.NewFromInt(13)),
		// Voided and cash movements must not reach the currency totals.
		exchange(domain.TxnCurrencyBuy, domain.TxnVoided, "USD", "GHS", decimal.NewFromInt(999), decimal.NewFromInt(999), decimal.NewFromInt(1)),
		{TransactionID: uuid.NewString(), Type: domain.TxnCashIn, Status: domain.TxnCompleted, FromCurrencyCode: "GHS", FromAmount: decimal.NewFromInt(500)},
	}
	suite.mockReportingRepo.On("ListTransactionsInWindow", ctx, dayStart, dayEnd, &branchID).Return(transactions, nil)

	snapshot := []domain.CurrencyInventory{{BranchID: branchID, CurrencyCode: "USD", Balance: decimal.NewFromInt(5000)}}
	suite.mockInventoryRepo.On("ListInventoryByBranch", ctx, branchID).Return(snapshot, nil)

	recon, err := suite.service.GetDailyReconciliation(ctx, date, &branchID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), dayStart, recon.Date)
	assert.Equal(suite.T(), branchID, recon.BranchID)
	assert.Equal(suite.T(), 4, recon.CompletedCount)
	assert.Equal(suite.T(), 1, recon.VoidedCount)
	assert.True(suite.T(), recon.TotalBuy.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), recon.TotalSell.Equal(decimal.NewFromInt(50)))
	assert.True(suite.T(), recon.Net.Equal(decimal.NewFromInt(250)))
	assert.Equal(suite.T(), snapshot, recon.InventorySnapshot)

	// Per-currency totals come back sorted by code.
	suite.Require().Len(recon.CurrencyTotals, 2)
	eur, usd := recon.CurrencyTotals[0], recon.CurrencyTotals[1]
	assert.Equal(suite.T(), "EUR", eur.CurrencyCode)
	assert.True(suite.T(), eur.BoughtAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(suite.T(), 1, eur.BoughtCount)
	assert.Equal(suite.T(), "USD", usd.CurrencyCode)
	assert.True(suite.T(), usd.BoughtAmount.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), usd.SoldAmount.Equal(decimal.NewFromInt(50)))
	assert.Equal(suite.T(), 1, usd.SoldCount)
}

func (suite *ReportingServiceTestSuite) TestGetDailyReconciliation_NoBranchSkipsSnapshot() {
	ctx := context.Background()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("ListTransactionsInWindow", ctx, date, date.Add(24*time.Hour), (*string)(nil)).
		Return([]domain.TillTransaction{}, nil)

	recon, err := suite.service.GetDailyReconciliation(ctx, date, nil)

	suite.Require().NoError(err)
	assert.Empty(suite.T(), recon.BranchID)
	assert.Nil(suite.T(), recon.InventorySnapshot)
	assert.True(suite.T(), recon.Net.IsZero())
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "ListInventoryByBranch", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetProfitLossByCurrency_ValuesAtCurrentMid() {
	ctx := context.Background()

	exchanges := []domain.TillTransaction{
		// Bought 118 GHS worth of value at 11.80; current mid is 12.00.
		exchange(domain.TxnCurrencyBuy, domain.TxnCompleted, "USD", "GHS", decimal.NewFromInt(10), decimal.NewFromInt(118), decimal.NewFromFloat(11.80)),
		// Sold 100 USD at 12.20 against the same mid.
		exchange(domain.TxnCurrencySell, domain.TxnCompleted, "USD", "GHS", decimal.NewFromInt(100), decimal.NewFromInt(1220), decimal.NewFromFloat(12.20)),
		exchange(domain.TxnCurrencyBuy, domain.TxnCompleted, "EUR", "GHS", decimal.NewFromInt(20), decimal.NewFromInt(260), decimal.NewFromInt(13)),
	}
	suite.mockReportingRepo.On("ListCompletedExchanges", ctx, (*time.Time)(nil), (*time.Time)(nil), (*string)(nil)).
		Return(exchanges, nil)

	usdMid := decimal.NewFromInt(12)
	suite.mockRateRepo.On("FindCurrentRate", ctx, "USD", "GHS").
		Return(&domain.ExchangeRate{BaseCurrencyCode: "USD", TargetCurrencyCode: "GHS", MidRate: usdMid}, nil)
	eurMid := decimal.NewFromFloat(13.50)
	suite.mockRateRepo.On("FindCurrentRate", ctx, "EUR", "GHS").
		Return(&domain.ExchangeRate{BaseCurrencyCode: "EUR", TargetCurrencyCode: "GHS", MidRate: eurMid}, nil)

	rows, err := suite.service.GetProfitLossByCurrency(ctx, nil, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	// Both buys pay out GHS, so they merge into one GHS row:
	// (12.00 - 11.80) * 118 + (13.50 - 13.00) * 260 = 23.60 + 130.00.
	// The sell stays under USD: (12.20 - 12.00) * 100 = 20.00.
	// Rows come back sorted by descending profit.
	ghs := rows[0]
	assert.Equal(suite.T(), "GHS", ghs.CurrencyCode)
	assert.Equal(suite.T(), 2, ghs.TransactionCount)
	assert.True(suite.T(), ghs.Volume.Equal(decimal.NewFromInt(378)))
	assert.True(suite.T(), ghs.EstimatedProfit.Equal(decimal.NewFromFloat(153.60)), "got %s", ghs.EstimatedProfit)

	usd := rows[1]
	assert.Equal(suite.T(), "USD", usd.CurrencyCode)
	assert.Equal(suite.T(), 1, usd.TransactionCount)
	assert.True(suite.T(), usd.Volume.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), usd.EstimatedProfit.Equal(decimal.NewFromInt(20)), "got %s", usd.EstimatedProfit)
}

func (suite *ReportingServiceTestSuite) TestGetProfitLossByCurrency_SkipsPairsWithoutCurrentRate() {
	ctx := context.Background()
	exchanges := []domain.TillTransaction{
		exchange(domain.TxnCurrencySell, domain.TxnCompleted, "USD", "GHS", decimal.NewFromInt(100), decimal.NewFromInt(1220), decimal.NewFromFloat(12.20)),
		exchange(domain.TxnCurrencySell, domain.TxnCompleted, "ZAR", "GHS", decimal.NewFromInt(500), decimal.NewFromInt(350), decimal.NewFromFloat(0.70)),
	}
	suite.mockReportingRepo.On("ListCompletedExchanges", ctx, (*time.Time)(nil), (*time.Time)(nil), (*string)(nil)).
		Return(exchanges, nil)
	suite.mockRateRepo.On("FindCurrentRate", ctx, "USD", "GHS").
		Return(&domain.ExchangeRate{MidRate: decimal.NewFromInt(12)}, nil)
	suite.mockRateRepo.On("FindCurrentRate", ctx, "ZAR", "GHS").
		Return(nil, apperrors.ErrNotFound)

	rows, err := suite.service.GetProfitLossByCurrency(ctx, nil, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	assert.Equal(suite.T(), "USD", rows[0].CurrencyCode)
}

func (suite *ReportingServiceTestSuite) TestGetProfitLossByCurrency_WindowAndBranchForwarded() {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	branchID := uuid.NewString()
	suite.mockReportingRepo.On("ListCompletedExchanges", ctx, &from, &to, &branchID).
		Return([]domain.TillTransaction{}, nil)

	rows, err := suite.service.GetProfitLossByCurrency(ctx, &from, &to, &branchID)

	suite.Require().NoError(err)
	assert.Empty(suite.T(), rows)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
