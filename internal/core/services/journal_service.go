package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
	"github.com/fxbureau/fxbureau_backend/internal/utils/accounting"
)

// fxRevenueAccountCode is the well-known code of the lazily created account
// that spread income rolls up under.
const fxRevenueAccountCode = "4100"

// journalService converts till transactions into balanced ledger postings and
// accepts manually authored entries. Idempotence rests on the store's unique
// (referenceType, referenceID) constraint, not on a read-then-write check.
type journalService struct {
	journalRepo      portsrepo.JournalRepositoryFacade
	transactionRepo  portsrepo.TransactionRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	baseCurrencyCode string
}

// NewJournalService creates a new JournalService. baseCurrencyCode is the
// home currency the FX revenue account is denominated in.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	baseCurrencyCode string,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:      journalRepo,
		transactionRepo:  transactionRepo,
		accountRepo:      accountRepo,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry posts a manually authored entry. Debits and credits must
// balance within the cent tolerance and every referenced account must exist
// and be active.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			JournalEntryID: entryID,
			AccountID:      lr.AccountID,
			Debit:          lr.Debit,
			Credit:         lr.Credit,
			Description:    lr.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := accounting.ValidateManualEntryLines(lines); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if seen[line.AccountID] {
			continue
		}
		seen[line.AccountID] = true
		account, err := s.accountRepo.FindLedgerAccountByID(ctx, line.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve account %s: %w", line.AccountID, err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
		}
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		EntryNumber:    entryNumber,
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		Status:         domain.JournalPosted,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("entryNumber", entryNumber), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entryNumber", entryNumber), slog.Int("lines", len(lines)))
	return &entry, nil
}

// CreateJournalEntryFromTransaction posts the two-line entry for a completed
// exchange. Buys debit the target-currency cash account and credit the
// source-currency one; sells mirror that. Cross-currency amounts are not
// forced equal; the entry balances structurally, one debit and one credit per
// leg. Returns alreadyExists true when the transaction was posted before,
// including when a concurrent poster wins the race.
func (s *journalService) CreateJournalEntryFromTransaction(ctx context.Context, transactionID string, userID string) (*domain.JournalEntry, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.journalRepo.FindEntryByReference(ctx, domain.RefTillTransaction, transactionID); err == nil {
		return s.withLines(ctx, existing, true)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check existing entry for transaction %s: %w", transactionID, err)
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}

	entry, err := s.buildExchangeEntry(ctx, txn, userID)
	if err != nil {
		return nil, false, err
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry, entry.Lines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race to a concurrent poster; the constraint kept
			// the ledger single-entry. Return the winner.
			existing, findErr := s.journalRepo.FindEntryByReference(ctx, domain.RefTillTransaction, transactionID)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to load winning entry for transaction %s: %w", transactionID, findErr)
			}
			return s.withLines(ctx, existing, true)
		}
		return nil, false, fmt.Errorf("failed to post entry for transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction posted to journal",
		slog.String("transactionID", transactionID), slog.String("entryNumber", entry.EntryNumber))
	return entry, false, nil
}

// buildExchangeEntry assembles the unsaved two-line entry for one completed
// exchange transaction.
func (s *journalService) buildExchangeEntry(ctx context.Context, txn *domain.TillTransaction, userID string) (*domain.JournalEntry, error) {
	if txn.Status != domain.TxnCompleted {
		return nil, fmt.Errorf("%w: transaction %s is %s, only completed transactions post", apperrors.ErrValidation, txn.TransactionID, txn.Status)
	}
	if !txn.IsExchange() {
		return nil, fmt.Errorf("%w: transaction %s is a %s, only currency exchanges post", apperrors.ErrValidation, txn.TransactionID, txn.Type)
	}

	if err := s.ensureFXRevenueAccount(ctx, userID); err != nil {
		return nil, err
	}

	fromAccount, err := s.accountRepo.FindCashAccountByCurrency(ctx, txn.FromCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cash account for %s: %w", txn.FromCurrencyCode, err)
	}
	toAccount, err := s.accountRepo.FindCashAccountByCurrency(ctx, txn.ToCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cash account for %s: %w", txn.ToCurrencyCode, err)
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	var debit, credit domain.JournalEntryLine
	switch txn.Type {
	case domain.TxnCurrencyBuy:
		debit = domain.JournalEntryLine{AccountID: toAccount.AccountID, Debit: txn.ToAmount}
		credit = domain.JournalEntryLine{AccountID: fromAccount.AccountID, Credit: txn.FromAmount}
	case domain.TxnCurrencySell:
		debit = domain.JournalEntryLine{AccountID: fromAccount.AccountID, Debit: txn.FromAmount}
		credit = domain.JournalEntryLine{AccountID: toAccount.AccountID, Credit: txn.ToAmount}
	}
	for _, line := range []*domain.JournalEntryLine{&debit, &credit} {
		line.LineID = uuid.NewString()
		line.JournalEntryID = entryID
		line.Description = fmt.Sprintf("%s %s/%s", txn.Type, txn.FromCurrencyCode, txn.ToCurrencyCode)
		line.AuditFields = audit
	}

	refType := domain.RefTillTransaction
	refID := txn.TransactionID
	entryDate := now
	if txn.CompletedAt != nil {
		entryDate = *txn.CompletedAt
	}
	return &domain.JournalEntry{
		JournalEntryID: entryID,
		EntryNumber:    entryNumber,
		EntryDate:      entryDate,
		Description:    fmt.Sprintf("FX %s %s %s for %s %s", txn.Type, txn.FromAmount.String(), txn.FromCurrencyCode, txn.ToAmount.String(), txn.ToCurrencyCode),
		ReferenceType:  &refType,
		ReferenceID:    &refID,
		Status:         domain.JournalPosted,
		Lines:          []domain.JournalEntryLine{debit, credit},
		AuditFields:    audit,
	}, nil
}

// ensureFXRevenueAccount lazily creates the FX revenue account under the
// revenue category the first time anything posts.
func (s *journalService) ensureFXRevenueAccount(ctx context.Context, userID string) error {
	_, err := s.accountRepo.FindLedgerAccountByCode(ctx, fxRevenueAccountCode)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up FX revenue account: %w", err)
	}

	revenue, err := s.accountRepo.FindMainAccountByCategory(ctx, domain.CategoryRevenue)
	if err != nil {
		return fmt.Errorf("failed to resolve revenue main account: %w", err)
	}

	now := time.Now().UTC()
	account := domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Code:          fxRevenueAccountCode,
		Name:          "FX Revenue",
		MainAccountID: revenue.MainAccountID,
		CurrencyCode:  s.baseCurrencyCode,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveLedgerAccount(ctx, account); err != nil {
		// Another poster created it concurrently.
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create FX revenue account: %w", err)
	}
	return nil
}

// GenerateAllJournalEntries back-fills entries for every completed exchange
// lacking one, oldest first. Individual failures are skipped so one bad
// transaction cannot wedge the whole run.
func (s *journalService) GenerateAllJournalEntries(ctx context.Context, userID string) (*dto.BackfillResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pending, err := s.transactionRepo.ListCompletedWithoutJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unposted transactions: %w", err)
	}

	result := &dto.BackfillResult{Total: len(pending)}
	for _, txn := range pending {
		_, alreadyExists, err := s.CreateJournalEntryFromTransaction(ctx, txn.TransactionID, userID)
		if err != nil || alreadyExists {
			if err != nil {
				logger.Warn("Back-fill skipped transaction",
					slog.String("transactionID", txn.TransactionID), slog.String("error", err.Error()))
			}
			result.Skipped++
			continue
		}
		result.Created++
	}

	logger.Info("Journal back-fill finished",
		slog.Int("total", result.Total), slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	return result, nil
}

// GetJournalEntries retrieves entries newest first.
func (s *journalService) GetJournalEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// GetJournalEntryWithLines retrieves one entry with its lines populated.
func (s *journalService) GetJournalEntryWithLines(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// withLines loads an entry's lines and returns it with the alreadyExists flag.
func (s *journalService) withLines(ctx context.Context, entry *domain.JournalEntry, alreadyExists bool) (*domain.JournalEntry, bool, error) {
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.JournalEntryID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get lines for entry %s: %w", entry.JournalEntryID, err)
	}
	entry.Lines = lines
	return entry, alreadyExists, nil
}
