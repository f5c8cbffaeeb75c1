package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindCurrentRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode, targetCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListCurrentRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRateHistory(ctx context.Context, baseCode, targetCode string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCode, targetCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ReplaceActiveRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindMainAccountByCategory(ctx context.Context, category domain.MainAccountCategory) (*domain.MainAccount, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MainAccount), args.Error(1)
}

func (m *MockAccountRepository) ListMainAccounts(ctx context.Context) ([]domain.MainAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MainAccount), args.Error(1)
}

func (m *MockAccountRepository) FindLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindLedgerAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) ListLedgerAccounts(ctx context.Context, filter portsrepo.LedgerAccountFilter) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindCashAccountByCurrency(ctx context.Context, currencyCode string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveLedgerAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateLedgerAccount(ctx context.Context, accountID string, update domain.LedgerAccountUpdate, userID string, now time.Time) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID, update, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

// --- Mock TillRepository ---

type MockTillRepository struct {
	mock.Mock
}

var _ portsrepo.TillRepositoryFacade = (*MockTillRepository)(nil)

func (m *MockTillRepository) FindTillByID(ctx context.Context, tillID string) (*domain.Till, error) {
	args := m.Called(ctx, tillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Till), args.Error(1)
}

func (m *MockTillRepository) ListTills(ctx context.Context, branchID *string) ([]domain.Till, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Till), args.Error(1)
}

func (m *MockTillRepository) ListCashAccountsByTill(ctx context.Context, tillID string) ([]domain.CashLedgerAccount, error) {
	args := m.Called(ctx, tillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashLedgerAccount), args.Error(1)
}

func (m *MockTillRepository) SaveTill(ctx context.Context, till domain.Till) error {
	args := m.Called(ctx, till)
	return args.Error(0)
}

func (m *MockTillRepository) UpdateTill(ctx context.Context, tillID string, update domain.TillUpdate, userID string, now time.Time) (*domain.Till, error) {
	args := m.Called(ctx, tillID, update, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Till), args.Error(1)
}

func (m *MockTillRepository) DeactivateTill(ctx context.Context, tillID string, userID string, now time.Time) error {
	args := m.Called(ctx, tillID, userID, now)
	return args.Error(0)
}

func (m *MockTillRepository) SignIn(ctx context.Context, tillID, userID string, at time.Time) (*domain.Till, error) {
	args := m.Called(ctx, tillID, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Till), args.Error(1)
}

func (m *MockTillRepository) SignOut(ctx context.Context, tillID, userID string, at time.Time) error {
	args := m.Called(ctx, tillID, userID, at)
	return args.Error(0)
}

func (m *MockTillRepository) SaveMissingCashAccounts(ctx context.Context, accounts []domain.CashLedgerAccount) (int, error) {
	args := m.Called(ctx, accounts)
	return args.Int(0), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TillTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TillTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.TillTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TillTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListCompletedWithoutJournal(ctx context.Context) ([]domain.TillTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TillTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveCashMovement(ctx context.Context, txn domain.TillTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveCurrencyExchange(ctx context.Context, txn domain.TillTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByReference(ctx context.Context, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

// --- Mock InventoryRepository ---

type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindInventory(ctx context.Context, branchID, currencyCode string) (*domain.CurrencyInventory, error) {
	args := m.Called(ctx, branchID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyInventory), args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryByBranch(ctx context.Context, branchID string) ([]domain.CurrencyInventory, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyInventory), args.Error(1)
}

func (m *MockInventoryRepository) ListMovements(ctx context.Context, branchID string, currencyCode *string, limit int) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, branchID, currencyCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryMovement), args.Error(1)
}

func (m *MockInventoryRepository) ListLowInventory(ctx context.Context) ([]domain.InventoryAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryAlert), args.Error(1)
}

func (m *MockInventoryRepository) ApplyMovement(ctx context.Context, movement domain.InventoryMovement, requireExisting bool) (*domain.InventoryMovement, error) {
	args := m.Called(ctx, movement, requireExisting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryMovement), args.Error(1)
}

func (m *MockInventoryRepository) SetThresholds(ctx context.Context, branchID, currencyCode string, low, high *decimal.Decimal, userID string) error {
	args := m.Called(ctx, branchID, currencyCode, low, high, userID)
	return args.Error(0)
}

func (m *MockInventoryRepository) SaveMissingInventory(ctx context.Context, rows []domain.CurrencyInventory) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingReader = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListTransactionsInWindow(ctx context.Context, from, to time.Time, branchID *string) ([]domain.TillTransaction, error) {
	args := m.Called(ctx, from, to, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TillTransaction), args.Error(1)
}

func (m *MockReportingRepository) ListCompletedExchanges(ctx context.Context, from, to *time.Time, branchID *string) ([]domain.TillTransaction, error) {
	args := m.Called(ctx, from, to, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TillTransaction), args.Error(1)
}
