package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/core/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.AccountSvcFacade
	userID           string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencyRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateLedgerAccount_Success() {
	ctx := context.Background()
	mainAccountID := uuid.NewString()
	req := dto.CreateLedgerAccountRequest{
		Code:          " 1201 ",
		Name:          "Branch Vault - USD",
		MainAccountID: mainAccountID,
		CurrencyCode:  "usd",
		IsCash:        true,
	}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)

	var saved domain.LedgerAccount
	suite.mockAccountRepo.On("SaveLedgerAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.LedgerAccount) }).
		Return(nil)

	account, err := suite.service.CreateLedgerAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	assert.NotEmpty(suite.T(), account.AccountID)
	assert.Equal(suite.T(), "1201", saved.Code)
	assert.Equal(suite.T(), "USD", saved.CurrencyCode)
	assert.Equal(suite.T(), mainAccountID, saved.MainAccountID)
	assert.True(suite.T(), saved.IsCash)
	assert.True(suite.T(), saved.IsActive)
	assert.Equal(suite.T(), suite.userID, saved.CreatedBy)
}

func (suite *AccountServiceTestSuite) TestCreateLedgerAccount_BlankCodeRejected() {
	req := dto.CreateLedgerAccountRequest{Code: "   ", Name: "x", MainAccountID: uuid.NewString(), CurrencyCode: "USD"}

	account, err := suite.service.CreateLedgerAccount(context.Background(), req, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveLedgerAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateLedgerAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateLedgerAccountRequest{Code: "1201", Name: "x", MainAccountID: uuid.NewString(), CurrencyCode: "XXX"}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound)

	account, err := suite.service.CreateLedgerAccount(ctx, req, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveLedgerAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateLedgerAccount_DuplicateCodeConflict() {
	ctx := context.Background()
	req := dto.CreateLedgerAccountRequest{Code: "1201", Name: "x", MainAccountID: uuid.NewString(), CurrencyCode: "USD"}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockAccountRepo.On("SaveLedgerAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).
		Return(apperrors.ErrConflict)

	account, err := suite.service.CreateLedgerAccount(ctx, req, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestUpdateLedgerAccount_NoFieldsRejected() {
	account, err := suite.service.UpdateLedgerAccount(context.Background(), uuid.NewString(), dto.UpdateLedgerAccountRequest{}, suite.userID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateLedgerAccount_ForwardsTypedUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	name := "Renamed"
	inactive := false
	req := dto.UpdateLedgerAccountRequest{Name: &name, IsActive: &inactive}

	var update domain.LedgerAccountUpdate
	updated := &domain.LedgerAccount{AccountID: accountID, Name: name, IsActive: false}
	suite.mockAccountRepo.On("UpdateLedgerAccount", ctx, accountID, mock.AnythingOfType("domain.LedgerAccountUpdate"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { update = args.Get(2).(domain.LedgerAccountUpdate) }).
		Return(updated, nil)

	account, err := suite.service.UpdateLedgerAccount(ctx, accountID, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), updated, account)
	suite.Require().NotNil(update.Name)
	assert.Equal(suite.T(), "Renamed", *update.Name)
	suite.Require().NotNil(update.IsActive)
	assert.False(suite.T(), *update.IsActive)
}

func (suite *AccountServiceTestSuite) TestGetMainAccountByCategory() {
	ctx := context.Background()
	main := &domain.MainAccount{MainAccountID: uuid.NewString(), Category: domain.CategoryRevenue}
	suite.mockAccountRepo.On("FindMainAccountByCategory", ctx, domain.CategoryRevenue).Return(main, nil)

	got, err := suite.service.GetMainAccountByCategory(ctx, domain.CategoryRevenue)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), main, got)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
