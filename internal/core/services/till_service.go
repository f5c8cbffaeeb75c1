package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
	"github.com/fxbureau/fxbureau_backend/internal/utils/accounting"
)

// tillService manages tills, their per-currency cash balances and the
// transactions that move cash through them. Balance invariants are enforced
// by the transaction repository inside its atomic unit; the service validates
// shape and stamps identity before handing off.
type tillService struct {
	tillRepo            portsrepo.TillRepositoryFacade
	transactionRepo     portsrepo.TransactionRepositoryFacade
	currencyRepo        portsrepo.CurrencyRepositoryFacade
	userRepo            portsrepo.UserRepositoryFacade
	accountRepo         portsrepo.AccountRepositoryFacade
	complianceThreshold decimal.Decimal
}

// NewTillService creates a new TillService. complianceThreshold is the
// per-leg amount at or above which an exchange is flagged for compliance
// review.
func NewTillService(
	tillRepo portsrepo.TillRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	complianceThreshold decimal.Decimal,
) portssvc.TillSvcFacade {
	return &tillService{
		tillRepo:            tillRepo,
		transactionRepo:     transactionRepo,
		currencyRepo:        currencyRepo,
		userRepo:            userRepo,
		accountRepo:         accountRepo,
		complianceThreshold: complianceThreshold,
	}
}

var _ portssvc.TillSvcFacade = (*tillService)(nil)

// CreateTill persists a new till.
func (s *tillService) CreateTill(ctx context.Context, req dto.CreateTillRequest, creatorUserID string) (*domain.Till, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	till := domain.Till{
		TillID:    uuid.NewString(),
		Name:      req.Name,
		BranchID:  req.BranchID,
		IsActive:  true,
		ShareTill: req.ShareTill,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.tillRepo.SaveTill(ctx, till); err != nil {
		logger.Error("Failed to save till", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create till: %w", err)
	}

	logger.Info("Till created", slog.String("tillID", till.TillID), slog.String("branchID", till.BranchID))
	return &till, nil
}

// UpdateTill applies a typed partial update.
func (s *tillService) UpdateTill(ctx context.Context, tillID string, req dto.UpdateTillRequest, userID string) (*domain.Till, error) {
	if req.Name == nil && req.IsActive == nil && req.ShareTill == nil {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}
	update := domain.TillUpdate{Name: req.Name, IsActive: req.IsActive, ShareTill: req.ShareTill}
	till, err := s.tillRepo.UpdateTill(ctx, tillID, update, userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update till %s: %w", tillID, err)
	}
	return till, nil
}

// RemoveTill deactivates a till. An occupied till cannot be removed.
func (s *tillService) RemoveTill(ctx context.Context, tillID string, userID string) error {
	till, err := s.tillRepo.FindTillByID(ctx, tillID)
	if err != nil {
		return fmt.Errorf("failed to get till %s: %w", tillID, err)
	}
	if till.IsOccupied() {
		return fmt.Errorf("%w: till is currently signed in", apperrors.ErrConflict)
	}
	if err := s.tillRepo.DeactivateTill(ctx, tillID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate till %s: %w", tillID, err)
	}
	return nil
}

// SignIn makes the caller the till occupant. The repository performs the
// check-and-set under a row lock, so two tellers racing for a non-shared till
// cannot both win.
func (s *tillService) SignIn(ctx context.Context, tillID, userID string) (*domain.Till, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	till, err := s.tillRepo.SignIn(ctx, tillID, userID, time.Now().UTC())
	if err != nil {
		logger.Warn("Till sign-in failed",
			slog.String("tillID", tillID), slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign in to till %s: %w", tillID, err)
	}

	logger.Info("Till sign-in", slog.String("tillID", tillID), slog.String("userID", userID))
	return till, nil
}

// SignOut releases the till. Only the current occupant may.
func (s *tillService) SignOut(ctx context.Context, tillID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tillRepo.SignOut(ctx, tillID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to sign out of till %s: %w", tillID, err)
	}

	logger.Info("Till sign-out", slog.String("tillID", tillID), slog.String("userID", userID))
	return nil
}

// CreateCashAccounts provisions one zero-balance cash account per active
// currency the till lacks. Idempotent: re-running creates only the missing
// ones and returns how many were added. Till cash rolls up under the assets
// chart root, which must already exist.
func (s *tillService) CreateCashAccounts(ctx context.Context, tillID string, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	till, err := s.tillRepo.FindTillByID(ctx, tillID)
	if err != nil {
		return 0, fmt.Errorf("failed to get till %s: %w", tillID, err)
	}

	if _, err := s.accountRepo.FindMainAccountByCategory(ctx, domain.CategoryAssets); err != nil {
		return 0, fmt.Errorf("failed to resolve assets main account: %w", err)
	}

	currencies, err := s.currencyRepo.ListActiveCurrencies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active currencies: %w", err)
	}

	now := time.Now().UTC()
	accounts := make([]domain.CashLedgerAccount, 0, len(currencies))
	for _, currency := range currencies {
		accounts = append(accounts, domain.CashLedgerAccount{
			CashAccountID: uuid.NewString(),
			TillID:        till.TillID,
			CurrencyCode:  currency.CurrencyCode,
			Balance:       decimal.Zero,
			AccountName:   fmt.Sprintf("%s Cash - %s", till.Name, currency.CurrencyCode),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	created, err := s.tillRepo.SaveMissingCashAccounts(ctx, accounts)
	if err != nil {
		return 0, fmt.Errorf("failed to create cash accounts for till %s: %w", tillID, err)
	}

	logger.Info("Till cash accounts provisioned", slog.String("tillID", tillID), slog.Int("created", created))
	return created, nil
}

// GetCurrentTillBalances retrieves the till's per-currency cash balances.
func (s *tillService) GetCurrentTillBalances(ctx context.Context, tillID string) ([]domain.CashLedgerAccount, error) {
	accounts, err := s.tillRepo.ListCashAccountsByTill(ctx, tillID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash accounts for till %s: %w", tillID, err)
	}
	return accounts, nil
}

// CreateCashMovement applies a cash_in/cash_out/adjustment to the till. The
// repository locks the cash account row, checks the balance invariant and
// commits the patch with the transaction record in one atomic unit.
func (s *tillService) CreateCashMovement(ctx context.Context, tillID string, req dto.CreateCashMovementRequest, userID string) (*domain.TillTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movementType := domain.TransactionType(req.Type)
	switch movementType {
	case domain.TxnCashIn, domain.TxnCashOut:
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
	case domain.TxnAdjustment:
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: adjustment sets an absolute balance and cannot be negative", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported cash movement type %q", apperrors.ErrValidation, req.Type)
	}

	now := time.Now().UTC()
	txn := domain.TillTransaction{
		TransactionID:    uuid.NewString(),
		TillID:           tillID,
		UserID:           userID,
		Type:             movementType,
		FromCurrencyCode: strings.ToUpper(req.CurrencyCode),
		FromAmount:       req.Amount,
		Status:           domain.TxnCompleted,
		Notes:            req.Notes,
		CompletedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveCashMovement(ctx, txn); err != nil {
		logger.Warn("Cash movement rejected",
			slog.String("tillID", tillID), slog.String("type", req.Type),
			slog.String("amount", req.Amount.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to apply cash movement: %w", err)
	}

	logger.Info("Cash movement applied",
		slog.String("transactionID", txn.TransactionID), slog.String("tillID", tillID),
		slog.String("type", req.Type), slog.String("currency", txn.FromCurrencyCode))
	return &txn, nil
}

// CreateCurrencyExchange applies both legs of a buy/sell exchange. Legs that
// would go negative fail the whole operation inside the repository's atomic
// unit; transactions at or above the compliance threshold are flagged but
// never blocked.
func (s *tillService) CreateCurrencyExchange(ctx context.Context, tillID string, req dto.CreateExchangeRequest, userID string) (*domain.TillTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exchangeType := domain.TransactionType(req.Type)
	if exchangeType != domain.TxnCurrencyBuy && exchangeType != domain.TxnCurrencySell {
		return nil, fmt.Errorf("%w: unsupported exchange type %q", apperrors.ErrValidation, req.Type)
	}
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)
	if from == to {
		return nil, fmt.Errorf("%w: exchange legs must use different currencies", apperrors.ErrValidation)
	}
	if !req.FromAmount.IsPositive() || !req.ToAmount.IsPositive() {
		return nil, fmt.Errorf("%w: both leg amounts must be positive", apperrors.ErrValidation)
	}
	if !req.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.ServiceFee.IsNegative() {
		return nil, fmt.Errorf("%w: service fee cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.TillTransaction{
		TransactionID:      uuid.NewString(),
		TillID:             tillID,
		UserID:             userID,
		Type:               exchangeType,
		FromCurrencyCode:   from,
		FromAmount:         req.FromAmount,
		ToCurrencyCode:     to,
		ToAmount:           req.ToAmount,
		ExchangeRate:       req.ExchangeRate,
		ServiceFee:         req.ServiceFee,
		CustomerName:       req.CustomerName,
		CustomerIDNumber:   req.CustomerIDNumber,
		Status:             domain.TxnCompleted,
		RequiresCompliance: accounting.RequiresCompliance(req.FromAmount, req.ToAmount, s.complianceThreshold),
		Notes:              req.Notes,
		CompletedAt:        &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveCurrencyExchange(ctx, txn); err != nil {
		logger.Warn("Currency exchange rejected",
			slog.String("tillID", tillID), slog.String("pair", from+"/"+to),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to apply currency exchange: %w", err)
	}

	if txn.RequiresCompliance {
		logger.Info("Exchange flagged for compliance review",
			slog.String("transactionID", txn.TransactionID),
			slog.String("fromAmount", req.FromAmount.String()),
			slog.String("toAmount", req.ToAmount.String()))
	}
	logger.Info("Currency exchange applied",
		slog.String("transactionID", txn.TransactionID), slog.String("tillID", tillID),
		slog.String("type", req.Type), slog.String("pair", from+"/"+to))
	return &txn, nil
}

// ListTransactions retrieves till transactions visible to the caller.
// Managers and compliance officers see everything; tellers are pinned to
// their own transactions regardless of the requested filter.
func (s *tillService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, callerID string) ([]domain.TillTransaction, error) {
	caller, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller %s: %w", callerID, err)
	}

	filter := portsrepo.TransactionFilter{
		TillID: params.TillID,
		Limit:  params.Limit,
	}
	if params.Status != nil {
		status := domain.TransactionStatus(*params.Status)
		filter.Status = &status
	}
	if !caller.Role.CanViewAllTills() {
		filter.UserID = &caller.UserID
	}
	if params.CurrentSessionOnly {
		if params.TillID == nil {
			return nil, fmt.Errorf("%w: currentSessionOnly requires a tillID", apperrors.ErrValidation)
		}
		till, err := s.tillRepo.FindTillByID(ctx, *params.TillID)
		if err != nil {
			return nil, fmt.Errorf("failed to get till %s: %w", *params.TillID, err)
		}
		if till.SignedInAt == nil {
			return []domain.TillTransaction{}, nil
		}
		filter.CreatedSince = till.SignedInAt
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// GetCurrentTillTransactions retrieves the caller's transactions on a till,
// optionally limited to the active sign-in session.
func (s *tillService) GetCurrentTillTransactions(ctx context.Context, tillID string, callerID string, currentSessionOnly bool) ([]domain.TillTransaction, error) {
	filter := portsrepo.TransactionFilter{
		TillID: &tillID,
		UserID: &callerID,
	}
	if currentSessionOnly {
		till, err := s.tillRepo.FindTillByID(ctx, tillID)
		if err != nil {
			return nil, fmt.Errorf("failed to get till %s: %w", tillID, err)
		}
		if till.SignedInAt == nil {
			return []domain.TillTransaction{}, nil
		}
		filter.CreatedSince = till.SignedInAt
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list till transactions: %w", err)
	}
	return transactions, nil
}

// GetTillByID retrieves a till by id.
func (s *tillService) GetTillByID(ctx context.Context, tillID string) (*domain.Till, error) {
	till, err := s.tillRepo.FindTillByID(ctx, tillID)
	if err != nil {
		return nil, fmt.Errorf("failed to get till %s: %w", tillID, err)
	}
	return till, nil
}

// ListTills retrieves tills, optionally scoped to a branch.
func (s *tillService) ListTills(ctx context.Context, branchID *string) ([]domain.Till, error) {
	tills, err := s.tillRepo.ListTills(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tills: %w", err)
	}
	return tills, nil
}
