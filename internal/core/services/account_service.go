package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
)

// accountService maintains the chart-of-accounts directory.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, currencyRepo: currencyRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateLedgerAccount persists a new ledger account under a main-account
// category. The account code is unique; a duplicate surfaces as ErrConflict.
func (s *accountService) CreateLedgerAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, creatorUserID string) (*domain.LedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(req.CurrencyCode)); err != nil {
		return nil, fmt.Errorf("failed to verify currency %s: %w", req.CurrencyCode, err)
	}

	now := time.Now().UTC()
	account := domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		Code:          code,
		Name:          req.Name,
		MainAccountID: req.MainAccountID,
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		BranchID:      req.BranchID,
		TillID:        req.TillID,
		IsCash:        req.IsCash,
		IsBank:        req.IsBank,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveLedgerAccount(ctx, account); err != nil {
		logger.Error("Failed to save ledger account", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create ledger account: %w", err)
	}

	logger.Info("Ledger account created", slog.String("accountID", account.AccountID), slog.String("code", code))
	return &account, nil
}

// UpdateLedgerAccount applies a typed partial update.
func (s *accountService) UpdateLedgerAccount(ctx context.Context, accountID string, req dto.UpdateLedgerAccountRequest, userID string) (*domain.LedgerAccount, error) {
	if req.Name == nil && req.IsActive == nil {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}
	update := domain.LedgerAccountUpdate{Name: req.Name, IsActive: req.IsActive}
	account, err := s.accountRepo.UpdateLedgerAccount(ctx, accountID, update, userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update ledger account %s: %w", accountID, err)
	}
	return account, nil
}

// GetLedgerAccountByID retrieves a ledger account by id.
func (s *accountService) GetLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindLedgerAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger account %s: %w", accountID, err)
	}
	return account, nil
}

// ListLedgerAccounts retrieves ledger accounts matching the filter.
func (s *accountService) ListLedgerAccounts(ctx context.Context, filter portsrepo.LedgerAccountFilter) ([]domain.LedgerAccount, error) {
	accounts, err := s.accountRepo.ListLedgerAccounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger accounts: %w", err)
	}
	return accounts, nil
}

// ListMainAccounts retrieves the chart-of-accounts category roots.
func (s *accountService) ListMainAccounts(ctx context.Context) ([]domain.MainAccount, error) {
	mains, err := s.accountRepo.ListMainAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list main accounts: %w", err)
	}
	return mains, nil
}

// GetMainAccountByCategory retrieves one category root.
func (s *accountService) GetMainAccountByCategory(ctx context.Context, category domain.MainAccountCategory) (*domain.MainAccount, error) {
	main, err := s.accountRepo.FindMainAccountByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get main account for category %s: %w", category, err)
	}
	return main, nil
}
