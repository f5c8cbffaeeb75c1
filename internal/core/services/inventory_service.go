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
)

// Default alert thresholds for freshly initialized inventory rows.
var (
	defaultLowThreshold  = decimal.NewFromInt(1000)
	defaultHighThreshold = decimal.NewFromInt(100000)
)

// inventoryService maintains branch-level currency stock. Every balance
// mutation goes through the repository's ApplyMovement so the movement log
// and the balance can never drift apart.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	currencyRepo  portsrepo.CurrencyRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo, currencyRepo: currencyRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) newMovement(branchID, currencyCode string, movementType domain.MovementType, amount decimal.Decimal, supplier, notes, userID string) domain.InventoryMovement {
	now := time.Now().UTC()
	return domain.InventoryMovement{
		MovementID:   uuid.NewString(),
		BranchID:     branchID,
		CurrencyCode: strings.ToUpper(currencyCode),
		MovementType: movementType,
		Amount:       amount,
		Supplier:     supplier,
		Notes:        notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// AdjustInventory applies a signed manual delta to one (branch, currency)
// balance. The repository rejects any delta that would take the balance
// negative, with no partial effect.
func (s *inventoryService) AdjustInventory(ctx context.Context, branchID string, req dto.AdjustInventoryRequest, userID string) (*domain.InventoryMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: adjustment delta must be non-zero", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(req.CurrencyCode)); err != nil {
		return nil, fmt.Errorf("failed to verify currency %s: %w", req.CurrencyCode, err)
	}

	movement := s.newMovement(branchID, req.CurrencyCode, domain.MovementAdjustment, req.Delta, "", req.Notes, userID)
	applied, err := s.inventoryRepo.ApplyMovement(ctx, movement, false)
	if err != nil {
		logger.Warn("Inventory adjustment rejected",
			slog.String("branchID", branchID), slog.String("currency", movement.CurrencyCode),
			slog.String("delta", req.Delta.String()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to adjust inventory: %w", err)
	}

	logger.Info("Inventory adjusted",
		slog.String("branchID", branchID), slog.String("currency", movement.CurrencyCode),
		slog.String("balanceAfter", applied.BalanceAfter.String()))
	return applied, nil
}

// RecordWholesaleBuy adds stock bought from a wholesale counterparty.
func (s *inventoryService) RecordWholesaleBuy(ctx context.Context, branchID string, req dto.WholesaleRequest, userID string) (*domain.InventoryMovement, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: wholesale amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(req.CurrencyCode)); err != nil {
		return nil, fmt.Errorf("failed to verify currency %s: %w", req.CurrencyCode, err)
	}

	movement := s.newMovement(branchID, req.CurrencyCode, domain.MovementWholesaleBuy, req.Amount, req.Supplier, req.Notes, userID)
	applied, err := s.inventoryRepo.ApplyMovement(ctx, movement, false)
	if err != nil {
		return nil, fmt.Errorf("failed to record wholesale buy: %w", err)
	}
	return applied, nil
}

// RecordWholesaleSell removes stock sold to a wholesale counterparty. Selling
// from a branch that never stocked the currency is a not-found, not a silent
// zero-start.
func (s *inventoryService) RecordWholesaleSell(ctx context.Context, branchID string, req dto.WholesaleRequest, userID string) (*domain.InventoryMovement, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: wholesale amount must be positive", apperrors.ErrValidation)
	}

	movement := s.newMovement(branchID, req.CurrencyCode, domain.MovementWholesaleSell, req.Amount.Neg(), req.Supplier, req.Notes, userID)
	applied, err := s.inventoryRepo.ApplyMovement(ctx, movement, true)
	if err != nil {
		return nil, fmt.Errorf("failed to record wholesale sell: %w", err)
	}
	return applied, nil
}

// SetThresholds upserts the alert thresholds without touching the balance.
func (s *inventoryService) SetThresholds(ctx context.Context, branchID, currencyCode string, req dto.SetThresholdsRequest, userID string) error {
	if req.LowThreshold == nil && req.HighThreshold == nil {
		return fmt.Errorf("%w: at least one threshold is required", apperrors.ErrValidation)
	}
	if req.LowThreshold != nil && req.HighThreshold != nil && req.LowThreshold.GreaterThan(*req.HighThreshold) {
		return fmt.Errorf("%w: low threshold exceeds high threshold", apperrors.ErrValidation)
	}
	if err := s.inventoryRepo.SetThresholds(ctx, branchID, strings.ToUpper(currencyCode), req.LowThreshold, req.HighThreshold, userID); err != nil {
		return fmt.Errorf("failed to set thresholds for %s/%s: %w", branchID, currencyCode, err)
	}
	return nil
}

// InitializeInventory creates zero-balance rows for every active currency the
// branch lacks. Idempotent: existing rows are left untouched.
func (s *inventoryService) InitializeInventory(ctx context.Context, branchID string, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currencies, err := s.currencyRepo.ListActiveCurrencies(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active currencies: %w", err)
	}

	now := time.Now().UTC()
	rows := make([]domain.CurrencyInventory, 0, len(currencies))
	for _, currency := range currencies {
		low := defaultLowThreshold
		high := defaultHighThreshold
		rows = append(rows, domain.CurrencyInventory{
			InventoryID:   uuid.NewString(),
			BranchID:      branchID,
			CurrencyCode:  currency.CurrencyCode,
			Balance:       decimal.Zero,
			LowThreshold:  &low,
			HighThreshold: &high,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	created, err := s.inventoryRepo.SaveMissingInventory(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize inventory for branch %s: %w", branchID, err)
	}

	logger.Info("Inventory initialized", slog.String("branchID", branchID), slog.Int("created", created))
	return created, nil
}

// GetInventory retrieves the branch's full inventory.
func (s *inventoryService) GetInventory(ctx context.Context, branchID string) ([]domain.CurrencyInventory, error) {
	rows, err := s.inventoryRepo.ListInventoryByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for branch %s: %w", branchID, err)
	}
	return rows, nil
}

// GetMovements retrieves the branch's movement log newest first.
func (s *inventoryService) GetMovements(ctx context.Context, branchID string, currencyCode *string, limit int) ([]domain.InventoryMovement, error) {
	var code *string
	if currencyCode != nil {
		upper := strings.ToUpper(*currencyCode)
		code = &upper
	}
	movements, err := s.inventoryRepo.ListMovements(ctx, branchID, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory movements for branch %s: %w", branchID, err)
	}
	return movements, nil
}

// GetLowInventoryAlerts retrieves rows with balance at or under their low threshold.
func (s *inventoryService) GetLowInventoryAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	alerts, err := s.inventoryRepo.ListLowInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low inventory alerts: %w", err)
	}
	return alerts, nil
}
