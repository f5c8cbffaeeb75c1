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
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/core/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

type TillServiceTestSuite struct {
	suite.Suite
	mockTillRepo        *MockTillRepository
	mockTransactionRepo *MockTransactionRepository
	mockCurrencyRepo    *MockCurrencyRepository
	mockUserRepo        *MockUserRepository
	mockAccountRepo     *MockAccountRepository
	service             portssvc.TillSvcFacade
	tillID              string
	userID              string
}

func (suite *TillServiceTestSuite) SetupTest() {
	suite.mockTillRepo = new(MockTillRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTillService(
		suite.mockTillRepo,
		suite.mockTransactionRepo,
		suite.mockCurrencyRepo,
		suite.mockUserRepo,
		suite.mockAccountRepo,
		decimal.NewFromInt(1000),
	)
	suite.tillID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TillServiceTestSuite) TestCreateCashMovement_CashIn() {
	ctx := context.Background()
	req := dto.CreateCashMovementRequest{
		Type:         "cash_in",
		Amount:       decimal.NewFromInt(500),
		CurrencyCode: "ghs",
	}

	var saved domain.TillTransaction
	suite.mockTransactionRepo.On("SaveCashMovement", ctx, mock.AnythingOfType("domain.TillTransaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.TillTransaction) }).
		Return(nil)

	txn, err := suite.service.CreateCashMovement(ctx, suite.tillID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	assert.Equal(suite.T(), domain.TxnCashIn, saved.Type)
	assert.Equal(suite.T(), "GHS", saved.FromCurrencyCode)
	assert.Equal(suite.T(), domain.TxnCompleted, saved.Status)
	suite.Require().NotNil(saved.CompletedAt)
	assert.Equal(suite.T(), suite.userID, saved.UserID)
}

func (suite *TillServiceTestSuite) TestCreateCashMovement_NonPositiveAmountRejected() {
	req := dto.CreateCashMovementRequest{
		Type:         "cash_out",
		Amount:       decimal.Zero,
		CurrencyCode: "GHS",
	}

	txn, err := suite.service.CreateCashMovement(context.Background(), suite.tillID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveCashMovement", mock.Anything, mock.Anything)
}

func (suite *TillServiceTestSuite) TestCreateCashMovement_InsufficientBalancePropagates() {
	ctx := context.Background()
	req := dto.CreateCashMovementRequest{
		Type:         "cash_out",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "GHS",
	}
	suite.mockTransactionRepo.On("SaveCashMovement", ctx, mock.AnythingOfType("domain.TillTransaction")).
		Return(apperrors.ErrInsufficientBalance)

	txn, err := suite.service.CreateCashMovement(ctx, suite.tillID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
}

func (suite *TillServiceTestSuite) TestCreateCurrencyExchange_BelowThresholdNotFlagged() {
	ctx := context.Background()
	req := dto.CreateExchangeRequest{
		Type:             "currency_buy",
		FromCurrencyCode: "usd",
		FromAmount:       decimal.NewFromInt(100),
		ToCurrencyCode:   "ghs",
		ToAmount:         decimal.NewFromInt(118),
		ExchangeRate:     decimal.NewFromFloat(1.18),
	}

	var saved domain.TillTransaction
	suite.mockTransactionRepo.On("SaveCurrencyExchange", ctx, mock.AnythingOfType("domain.TillTransaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.TillTransaction) }).
		Return(nil)

	txn, err := suite.service.CreateCurrencyExchange(ctx, suite.tillID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	assert.False(suite.T(), saved.RequiresCompliance)
	assert.Equal(suite.T(), "USD", saved.FromCurrencyCode)
	assert.Equal(suite.T(), "GHS", saved.ToCurrencyCode)
	assert.Equal(suite.T(), domain.TxnCompleted, saved.Status)
}

func (suite *TillServiceTestSuite) TestCreateCurrencyExchange_AtThresholdFlagged() {
	ctx := context.Background()
	req := dto.CreateExchangeRequest{
		Type:             "currency_sell",
		FromCurrencyCode: "USD",
		FromAmount:       decimal.NewFromInt(1500),
		ToCurrencyCode:   "GHS",
		ToAmount:         decimal.NewFromInt(120),
		ExchangeRate:     decimal.NewFromFloat(12.5),
	}

	var saved domain.TillTransaction
	suite.mockTransactionRepo.On("SaveCurrencyExchange", ctx, mock.AnythingOfType("domain.TillTransaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.TillTransaction) }).
		Return(nil)

	txn, err := suite.service.CreateCurrencyExchange(ctx, suite.tillID, req, suite.userID)

	suite.Require().NoError(err)
	assert.True(suite.T(), saved.RequiresCompliance)
	assert.True(suite.T(), txn.RequiresCompliance)
}

func (suite *TillServiceTestSuite) TestCreateCurrencyExchange_SameCurrencyRejected() {
	req := dto.CreateExchangeRequest{
		Type:             "currency_buy",
		FromCurrencyCode: "USD",
		FromAmount:       decimal.NewFromInt(100),
		ToCurrencyCode:   "usd",
		ToAmount:         decimal.NewFromInt(100),
		ExchangeRate:     decimal.NewFromInt(1),
	}

	txn, err := suite.service.CreateCurrencyExchange(context.Background(), suite.tillID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TillServiceTestSuite) TestCreateCurrencyExchange_NegativeFeeRejected() {
	req := dto.CreateExchangeRequest{
		Type:             "currency_buy",
		FromCurrencyCode: "USD",
		FromAmount:       decimal.NewFromInt(100),
		ToCurrencyCode:   "GHS",
		ToAmount:         decimal.NewFromInt(118),
		ExchangeRate:     decimal.NewFromFloat(1.18),
		ServiceFee:       decimal.NewFromInt(-1),
	}

	txn, err := suite.service.CreateCurrencyExchange(context.Background(), suite.tillID, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TillServiceTestSuite) TestSignIn_Success() {
	ctx := context.Background()
	signedIn := &domain.Till{TillID: suite.tillID, SignedInUserID: &suite.userID}
	suite.mockTillRepo.On("SignIn", ctx, suite.tillID, suite.userID, mock.AnythingOfType("time.Time")).Return(signedIn, nil)

	till, err := suite.service.SignIn(ctx, suite.tillID, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), signedIn, till)
}

func (suite *TillServiceTestSuite) TestSignIn_OccupiedConflict() {
	ctx := context.Background()
	suite.mockTillRepo.On("SignIn", ctx, suite.tillID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrConflict)

	till, err := suite.service.SignIn(ctx, suite.tillID, suite.userID)

	assert.Nil(suite.T(), till)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *TillServiceTestSuite) TestRemoveTill_OccupiedRejected() {
	ctx := context.Background()
	occupant := uuid.NewString()
	suite.mockTillRepo.On("FindTillByID", ctx, suite.tillID).
		Return(&domain.Till{TillID: suite.tillID, SignedInUserID: &occupant}, nil)

	err := suite.service.RemoveTill(ctx, suite.tillID, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockTillRepo.AssertNotCalled(suite.T(), "DeactivateTill", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TillServiceTestSuite) TestCreateCashAccounts_OnlyMissingCreated() {
	ctx := context.Background()
	suite.mockTillRepo.On("FindTillByID", ctx, suite.tillID).
		Return(&domain.Till{TillID: suite.tillID, Name: "Till 1"}, nil)
	suite.mockAccountRepo.On("FindMainAccountByCategory", ctx, domain.CategoryAssets).
		Return(&domain.MainAccount{MainAccountID: uuid.NewString(), Category: domain.CategoryAssets}, nil)
	suite.mockCurrencyRepo.On("ListActiveCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "GHS"}, {CurrencyCode: "USD"}, {CurrencyCode: "EUR"},
	}, nil)

	var provisioned []domain.CashLedgerAccount
	suite.mockTillRepo.On("SaveMissingCashAccounts", ctx, mock.AnythingOfType("[]domain.CashLedgerAccount")).
		Run(func(args mock.Arguments) { provisioned = args.Get(1).([]domain.CashLedgerAccount) }).
		Return(1, nil)

	created, err := suite.service.CreateCashAccounts(ctx, suite.tillID, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, created)
	suite.Require().Len(provisioned, 3)
	assert.Equal(suite.T(), "Till 1 Cash - GHS", provisioned[0].AccountName)
	assert.True(suite.T(), provisioned[0].Balance.IsZero())
}

func (suite *TillServiceTestSuite) TestCreateCashAccounts_NoAssetsRootRejected() {
	ctx := context.Background()
	suite.mockTillRepo.On("FindTillByID", ctx, suite.tillID).
		Return(&domain.Till{TillID: suite.tillID, Name: "Till 1"}, nil)
	suite.mockAccountRepo.On("FindMainAccountByCategory", ctx, domain.CategoryAssets).
		Return(nil, apperrors.ErrNotFound)

	created, err := suite.service.CreateCashAccounts(ctx, suite.tillID, suite.userID)

	assert.Zero(suite.T(), created)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockTillRepo.AssertNotCalled(suite.T(), "SaveMissingCashAccounts", mock.Anything, mock.Anything)
}

func (suite *TillServiceTestSuite) TestListTransactions_TellerPinnedToOwn() {
	ctx := context.Background()
	teller := &domain.User{UserID: suite.userID, Role: domain.RoleTeller}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(teller, nil)

	var filter portsrepo.TransactionFilter
	suite.mockTransactionRepo.On("ListTransactions", ctx, mock.AnythingOfType("repositories.TransactionFilter")).
		Run(func(args mock.Arguments) { filter = args.Get(1).(portsrepo.TransactionFilter) }).
		Return([]domain.TillTransaction{}, nil)

	_, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(filter.UserID)
	assert.Equal(suite.T(), suite.userID, *filter.UserID)
}

func (suite *TillServiceTestSuite) TestListTransactions_ManagerSeesAll() {
	ctx := context.Background()
	manager := &domain.User{UserID: suite.userID, Role: domain.RoleManager}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(manager, nil)

	var filter portsrepo.TransactionFilter
	suite.mockTransactionRepo.On("ListTransactions", ctx, mock.AnythingOfType("repositories.TransactionFilter")).
		Run(func(args mock.Arguments) { filter = args.Get(1).(portsrepo.TransactionFilter) }).
		Return([]domain.TillTransaction{}, nil)

	_, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{}, suite.userID)

	suite.Require().NoError(err)
	assert.Nil(suite.T(), filter.UserID)
}

func (suite *TillServiceTestSuite) TestListTransactions_CurrentSessionNeedsTillID() {
	ctx := context.Background()
	manager := &domain.User{UserID: suite.userID, Role: domain.RoleManager}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(manager, nil)

	_, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{CurrentSessionOnly: true}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TillServiceTestSuite) TestGetCurrentTillTransactions_SessionWindow() {
	ctx := context.Background()
	signedInAt := time.Now().Add(-2 * time.Hour)
	suite.mockTillRepo.On("FindTillByID", ctx, suite.tillID).
		Return(&domain.Till{TillID: suite.tillID, SignedInUserID: &suite.userID, SignedInAt: &signedInAt}, nil)

	var filter portsrepo.TransactionFilter
	suite.mockTransactionRepo.On("ListTransactions", ctx, mock.AnythingOfType("repositories.TransactionFilter")).
		Run(func(args mock.Arguments) { filter = args.Get(1).(portsrepo.TransactionFilter) }).
		Return([]domain.TillTransaction{}, nil)

	_, err := suite.service.GetCurrentTillTransactions(ctx, suite.tillID, suite.userID, true)

	suite.Require().NoError(err)
	suite.Require().NotNil(filter.CreatedSince)
	assert.True(suite.T(), filter.CreatedSince.Equal(signedInAt))
}

func (suite *TillServiceTestSuite) TestGetCurrentTillTransactions_NoActiveSession() {
	ctx := context.Background()
	suite.mockTillRepo.On("FindTillByID", ctx, suite.tillID).
		Return(&domain.Till{TillID: suite.tillID}, nil)

	transactions, err := suite.service.GetCurrentTillTransactions(ctx, suite.tillID, suite.userID, true)

	suite.Require().NoError(err)
	assert.Empty(suite.T(), transactions)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func TestTillService(t *testing.T) {
	suite.Run(t, new(TillServiceTestSuite))
}
