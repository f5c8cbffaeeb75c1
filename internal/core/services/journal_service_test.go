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
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo     *MockJournalRepository
	mockTransactionRepo *MockTransactionRepository
	mockAccountRepo     *MockAccountRepository
	service             portssvc.JournalSvcFacade
	userID              string
	usdCashAccount      domain.LedgerAccount
	ghsCashAccount      domain.LedgerAccount
	revenueAccount      domain.LedgerAccount
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockTransactionRepo, suite.mockAccountRepo, "GHS")
	suite.userID = uuid.NewString()

	suite.usdCashAccount = domain.LedgerAccount{
		AccountID: uuid.NewString(), Code: "1010", CurrencyCode: "USD", IsCash: true, IsActive: true,
	}
	suite.ghsCashAccount = domain.LedgerAccount{
		AccountID: uuid.NewString(), Code: "1000", CurrencyCode: "GHS", IsCash: true, IsActive: true,
	}
	suite.revenueAccount = domain.LedgerAccount{
		AccountID: uuid.NewString(), Code: "4100", IsActive: true,
	}
}

func (suite *JournalServiceTestSuite) completedBuy() *domain.TillTransaction {
	completedAt := time.Now().Add(-time.Hour)
	return &domain.TillTransaction{
		TransactionID:    uuid.NewString(),
		Type:             domain.TxnCurrencyBuy,
		FromCurrencyCode: "USD",
		FromAmount:       decimal.NewFromInt(100),
		ToCurrencyCode:   "GHS",
		ToAmount:         decimal.NewFromInt(1180),
		ExchangeRate:     decimal.NewFromFloat(11.80),
		Status:           domain.TxnCompleted,
		CompletedAt:      &completedAt,
	}
}

func (suite *JournalServiceTestSuite) expectCashAccounts(ctx context.Context) {
	suite.mockAccountRepo.On("FindLedgerAccountByCode", ctx, "4100").Return(&suite.revenueAccount, nil)
	suite.mockAccountRepo.On("FindCashAccountByCurrency", ctx, "USD").Return(&suite.usdCashAccount, nil)
	suite.mockAccountRepo.On("FindCashAccountByCurrency", ctx, "GHS").Return(&suite.ghsCashAccount, nil)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_BuyDebitsTargetCreditsSource() {
	ctx := context.Background()
	txn := suite.completedBuy()

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil)
	suite.expectCashAccounts(ctx)
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000001", nil)

	var savedEntry domain.JournalEntry
	var savedLines []domain.JournalEntryLine
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedLines = args.Get(2).([]domain.JournalEntryLine)
		}).
		Return(nil)

	entry, alreadyExists, err := suite.service.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	assert.False(suite.T(), alreadyExists)
	suite.Require().NotNil(entry)
	assert.Equal(suite.T(), "JE-000001", savedEntry.EntryNumber)
	suite.Require().NotNil(savedEntry.ReferenceType)
	assert.Equal(suite.T(), domain.RefTillTransaction, *savedEntry.ReferenceType)
	assert.True(suite.T(), savedEntry.EntryDate.Equal(*txn.CompletedAt))

	suite.Require().Len(savedLines, 2)
	// Buy: the bureau receives GHS (target cash up, debit) and pays USD (source cash down, credit).
	assert.Equal(suite.T(), suite.ghsCashAccount.AccountID, savedLines[0].AccountID)
	assert.True(suite.T(), savedLines[0].Debit.Equal(txn.ToAmount))
	assert.Equal(suite.T(), suite.usdCashAccount.AccountID, savedLines[1].AccountID)
	assert.True(suite.T(), savedLines[1].Credit.Equal(txn.FromAmount))
}

func (suite *JournalServiceTestSuite) TestPostTransaction_SellMirrorsBuy() {
	ctx := context.Background()
	txn := suite.completedBuy()
	txn.Type = domain.TxnCurrencySell

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil)
	suite.expectCashAccounts(ctx)
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000002", nil)

	var savedLines []domain.JournalEntryLine
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Run(func(args mock.Arguments) { savedLines = args.Get(2).([]domain.JournalEntryLine) }).
		Return(nil)

	_, alreadyExists, err := suite.service.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	assert.False(suite.T(), alreadyExists)
	suite.Require().Len(savedLines, 2)
	// Sell: source cash up (debit), target cash down (credit).
	assert.Equal(suite.T(), suite.usdCashAccount.AccountID, savedLines[0].AccountID)
	assert.True(suite.T(), savedLines[0].Debit.Equal(txn.FromAmount))
	assert.Equal(suite.T(), suite.ghsCashAccount.AccountID, savedLines[1].AccountID)
	assert.True(suite.T(), savedLines[1].Credit.Equal(txn.ToAmount))
}

func (suite *JournalServiceTestSuite) TestPostTransaction_SecondCallReturnsExisting() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.JournalEntry{JournalEntryID: uuid.NewString(), EntryNumber: "JE-000001"}

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, transactionID).Return(existing, nil)
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, existing.JournalEntryID).
		Return([]domain.JournalEntryLine{{LineID: "l1"}, {LineID: "l2"}}, nil)

	entry, alreadyExists, err := suite.service.CreateJournalEntryFromTransaction(ctx, transactionID, suite.userID)

	suite.Require().NoError(err)
	assert.True(suite.T(), alreadyExists)
	assert.Equal(suite.T(), "JE-000001", entry.EntryNumber)
	assert.Len(suite.T(), entry.Lines, 2)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_RaceLoserReturnsWinner() {
	ctx := context.Background()
	txn := suite.completedBuy()
	winner := &domain.JournalEntry{JournalEntryID: uuid.NewString(), EntryNumber: "JE-000009"}

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil)
	suite.expectCashAccounts(ctx)
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000010", nil)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Return(apperrors.ErrDuplicate)
	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(winner, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, winner.JournalEntryID).
		Return([]domain.JournalEntryLine{}, nil)

	entry, alreadyExists, err := suite.service.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	assert.True(suite.T(), alreadyExists)
	assert.Equal(suite.T(), "JE-000009", entry.EntryNumber)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_PendingRejected() {
	ctx := context.Background()
	txn := suite.completedBuy()
	txn.Status = domain.TxnPending

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(nil, apperrors.ErrNotFound)
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil)

	_, _, err := suite.service.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_CashMovementRejected() {
	ctx := context.Background()
	txn := suite.completedBuy()
	txn.Type = domain.TxnCashIn

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(nil, apperrors.ErrNotFound)
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil)

	_, _, err := suite.service.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_LazilyCreatesRevenueAccount() {
	ctx := context.Background()
	txn := suite.completedBuy()
	revenueMain := &domain.MainAccount{MainAccountID: uuid.NewString(), Category: domain.CategoryRevenue}

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, txn.TransactionID).
		Return(nil, apperrors.ErrNotFound)
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil)
	suite.mockAccountRepo.On("FindLedgerAccountByCode", ctx, "4100").Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("FindMainAccountByCategory", ctx, domain.CategoryRevenue).Return(revenueMain, nil)

	var createdAccount domain.LedgerAccount
	suite.mockAccountRepo.On("SaveLedgerAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).
		Run(func(args mock.Arguments) { createdAccount = args.Get(1).(domain.LedgerAccount) }).
		Return(nil)
	suite.mockAccountRepo.On("FindCashAccountByCurrency", ctx, "USD").Return(&suite.usdCashAccount, nil)
	suite.mockAccountRepo.On("FindCashAccountByCurrency", ctx, "GHS").Return(&suite.ghsCashAccount, nil)
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000003", nil)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Return(nil)

	_, _, err := suite.service.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "4100", createdAccount.Code)
	assert.Equal(suite.T(), revenueMain.MainAccountID, createdAccount.MainAccountID)
	assert.True(suite.T(), createdAccount.IsActive)
	// ledger_accounts.currency_code is NOT NULL; the account is denominated
	// in the bureau's home currency.
	assert.Equal(suite.T(), "GHS", createdAccount.CurrencyCode)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnbalancedRejected() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "manual",
		Lines: []dto.JournalLineRequest{
			{AccountID: "a", Debit: decimal.NewFromInt(100)},
			{AccountID: "b", Credit: decimal.NewFromInt(90)},
		},
	}

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccountRejected() {
	ctx := context.Background()
	inactive := domain.LedgerAccount{AccountID: "a", Code: "9999", IsActive: false}
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.JournalLineRequest{
			{AccountID: "a", Debit: decimal.NewFromInt(100)},
			{AccountID: "b", Credit: decimal.NewFromInt(100)},
		},
	}
	suite.mockAccountRepo.On("FindLedgerAccountByID", ctx, "a").Return(&inactive, nil)

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	active := domain.LedgerAccount{AccountID: "a", Code: "1000", IsActive: true}
	active2 := domain.LedgerAccount{AccountID: "b", Code: "4100", IsActive: true}
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "opening float",
		Lines: []dto.JournalLineRequest{
			{AccountID: "a", Debit: decimal.NewFromInt(100)},
			{AccountID: "b", Credit: decimal.NewFromInt(100)},
		},
	}
	suite.mockAccountRepo.On("FindLedgerAccountByID", ctx, "a").Return(&active, nil)
	suite.mockAccountRepo.On("FindLedgerAccountByID", ctx, "b").Return(&active2, nil)
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000004", nil)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Return(nil)

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "JE-000004", entry.EntryNumber)
	assert.Equal(suite.T(), domain.JournalPosted, entry.Status)
	assert.Len(suite.T(), entry.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestBackfill_CountsCreatedAndSkipped() {
	ctx := context.Background()
	good := suite.completedBuy()
	bad := suite.completedBuy()

	suite.mockTransactionRepo.On("ListCompletedWithoutJournal", ctx).
		Return([]domain.TillTransaction{*good, *bad}, nil)

	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, good.TransactionID).
		Return(nil, apperrors.ErrNotFound)
	suite.mockJournalRepo.On("FindEntryByReference", ctx, domain.RefTillTransaction, bad.TransactionID).
		Return(nil, apperrors.ErrNotFound)
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, good.TransactionID).Return(good, nil)
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, bad.TransactionID).
		Return(nil, apperrors.NewAppError(500, "read failed", nil))
	suite.expectCashAccounts(ctx)
	suite.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000005", nil)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine")).
		Return(nil)

	result, err := suite.service.GenerateAllJournalEntries(ctx, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, result.Total)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Equal(suite.T(), 1, result.Skipped)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
