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

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.CurrencySvcFacade
	userID           string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.userID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_UppercasesCode() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "ghs", Name: "Ghana Cedi", Symbol: "GH₵", DecimalPlaces: 2}

	var saved domain.Currency
	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Currency) }).
		Return(nil)

	currency, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "GHS", currency.CurrencyCode)
	assert.Equal(suite.T(), "GHS", saved.CurrencyCode)
	assert.True(suite.T(), saved.IsActive)
	assert.Equal(suite.T(), suite.userID, saved.CreatedBy)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_BadCodeLengthRejected() {
	req := dto.CreateCurrencyRequest{CurrencyCode: "CEDI", Name: "Ghana Cedi", Symbol: "GH₵"}

	currency, err := suite.service.CreateCurrency(context.Background(), req, suite.userID)

	assert.Nil(suite.T(), currency)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XOF").Return(nil, apperrors.ErrNotFound)

	currency, err := suite.service.GetCurrencyByCode(ctx, "xof")

	assert.Nil(suite.T(), currency)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestListActiveCurrencies() {
	ctx := context.Background()
	active := []domain.Currency{{CurrencyCode: "GHS"}, {CurrencyCode: "USD"}}
	suite.mockCurrencyRepo.On("ListActiveCurrencies", ctx).Return(active, nil)

	got, err := suite.service.ListActiveCurrencies(ctx)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), active, got)
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
