package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/core/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockCurrencyRepo  *MockCurrencyRepository
	service           portssvc.InventorySvcFacade
	branchID          string
	userID            string
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockCurrencyRepo)
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *InventoryServiceTestSuite) TestAdjustInventory_SignedDelta() {
	ctx := context.Background()
	req := dto.AdjustInventoryRequest{
		CurrencyCode: "usd",
		Delta:        decimal.NewFromInt(-200),
		Notes:        "spoiled notes removed",
	}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)

	var movement domain.InventoryMovement
	applied := &domain.InventoryMovement{BalanceAfter: decimal.NewFromInt(800)}
	suite.mockInventoryRepo.On("ApplyMovement", ctx, mock.AnythingOfType("domain.InventoryMovement"), false).
		Run(func(args mock.Arguments) { movement = args.Get(1).(domain.InventoryMovement) }).
		Return(applied, nil)

	got, err := suite.service.AdjustInventory(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), applied, got)
	assert.Equal(suite.T(), domain.MovementAdjustment, movement.MovementType)
	assert.Equal(suite.T(), "USD", movement.CurrencyCode)
	assert.True(suite.T(), movement.Amount.Equal(decimal.NewFromInt(-200)))
}

func (suite *InventoryServiceTestSuite) TestAdjustInventory_ZeroDeltaRejected() {
	req := dto.AdjustInventoryRequest{CurrencyCode: "USD", Delta: decimal.Zero}

	got, err := suite.service.AdjustInventory(context.Background(), suite.branchID, req, suite.userID)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestWholesaleBuy_PositiveAmount() {
	ctx := context.Background()
	req := dto.WholesaleRequest{CurrencyCode: "eur", Amount: decimal.NewFromInt(5000), Supplier: "Central Bank"}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil)

	var movement domain.InventoryMovement
	suite.mockInventoryRepo.On("ApplyMovement", ctx, mock.AnythingOfType("domain.InventoryMovement"), false).
		Run(func(args mock.Arguments) { movement = args.Get(1).(domain.InventoryMovement) }).
		Return(&domain.InventoryMovement{}, nil)

	_, err := suite.service.RecordWholesaleBuy(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.MovementWholesaleBuy, movement.MovementType)
	assert.True(suite.T(), movement.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(suite.T(), "Central Bank", movement.Supplier)
}

func (suite *InventoryServiceTestSuite) TestWholesaleSell_NegatesAmountAndRequiresRow() {
	ctx := context.Background()
	req := dto.WholesaleRequest{CurrencyCode: "EUR", Amount: decimal.NewFromInt(2000)}

	var movement domain.InventoryMovement
	suite.mockInventoryRepo.On("ApplyMovement", ctx, mock.AnythingOfType("domain.InventoryMovement"), true).
		Run(func(args mock.Arguments) { movement = args.Get(1).(domain.InventoryMovement) }).
		Return(&domain.InventoryMovement{}, nil)

	_, err := suite.service.RecordWholesaleSell(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.MovementWholesaleSell, movement.MovementType)
	assert.True(suite.T(), movement.Amount.Equal(decimal.NewFromInt(-2000)))
}

func (suite *InventoryServiceTestSuite) TestWholesaleSell_InsufficientStockPropagates() {
	ctx := context.Background()
	req := dto.WholesaleRequest{CurrencyCode: "EUR", Amount: decimal.NewFromInt(2000)}
	suite.mockInventoryRepo.On("ApplyMovement", ctx, mock.AnythingOfType("domain.InventoryMovement"), true).
		Return(nil, apperrors.ErrInsufficientBalance)

	got, err := suite.service.RecordWholesaleSell(ctx, suite.branchID, req, suite.userID)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
}

func (suite *InventoryServiceTestSuite) TestSetThresholds_LowAboveHighRejected() {
	low := decimal.NewFromInt(5000)
	high := decimal.NewFromInt(1000)
	req := dto.SetThresholdsRequest{LowThreshold: &low, HighThreshold: &high}

	err := suite.service.SetThresholds(context.Background(), suite.branchID, "USD", req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SetThresholds",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestSetThresholds_NoneProvidedRejected() {
	err := suite.service.SetThresholds(context.Background(), suite.branchID, "USD", dto.SetThresholdsRequest{}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestInitializeInventory_SeedsActiveCurrencies() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("ListActiveCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "GHS"}, {CurrencyCode: "USD"},
	}, nil)

	var rows []domain.CurrencyInventory
	suite.mockInventoryRepo.On("SaveMissingInventory", ctx, mock.AnythingOfType("[]domain.CurrencyInventory")).
		Run(func(args mock.Arguments) { rows = args.Get(1).([]domain.CurrencyInventory) }).
		Return(2, nil)

	created, err := suite.service.InitializeInventory(ctx, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, created)
	suite.Require().Len(rows, 2)
	assert.True(suite.T(), rows[0].Balance.IsZero())
	suite.Require().NotNil(rows[0].LowThreshold)
	assert.True(suite.T(), rows[0].LowThreshold.Equal(decimal.NewFromInt(1000)))
	suite.Require().NotNil(rows[0].HighThreshold)
	assert.True(suite.T(), rows[0].HighThreshold.Equal(decimal.NewFromInt(100000)))
}

func (suite *InventoryServiceTestSuite) TestGetLowInventoryAlerts() {
	ctx := context.Background()
	alerts := []domain.InventoryAlert{{
		BranchID:     suite.branchID,
		CurrencyCode: "EUR",
		Balance:      decimal.NewFromInt(300),
		LowThreshold: decimal.NewFromInt(1000),
		Shortfall:    decimal.NewFromInt(700),
	}}
	suite.mockInventoryRepo.On("ListLowInventory", ctx).Return(alerts, nil)

	got, err := suite.service.GetLowInventoryAlerts(ctx)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), alerts, got)
}

func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
