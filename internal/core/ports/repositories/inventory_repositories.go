package repositories

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryReader defines read operations for branch currency inventory.
type InventoryReader interface {
	// FindInventory retrieves one (branch, currency) inventory row.
	FindInventory(ctx context.Context, branchID, currencyCode string) (*domain.CurrencyInventory, error)

	// ListInventoryByBranch retrieves the branch's full inventory.
	ListInventoryByBranch(ctx context.Context, branchID string) ([]domain.CurrencyInventory, error)

	// ListMovements retrieves the branch's movement log newest first,
	// optionally narrowed to one currency, capped at limit when limit > 0.
	ListMovements(ctx context.Context, branchID string, currencyCode *string, limit int) ([]domain.InventoryMovement, error)

	// ListLowInventory retrieves rows with balance at or under their low threshold.
	ListLowInventory(ctx context.Context) ([]domain.InventoryAlert, error)
}

// InventoryWriter defines write operations for branch currency inventory.
type InventoryWriter interface {
	// ApplyMovement locks the (branch, currency) row, computes
	// balanceAfter = balanceBefore + movement.Amount against that single
	// consistent read, and commits the balance patch together with exactly
	// one movement row. A negative balanceAfter maps to
	// apperrors.ErrInsufficientBalance with no mutation. When
	// requireExisting is set, a missing inventory row maps to
	// apperrors.ErrNotFound instead of starting at zero.
	ApplyMovement(ctx context.Context, movement domain.InventoryMovement, requireExisting bool) (*domain.InventoryMovement, error)

	// SetThresholds upserts the low/high thresholds without touching the balance.
	SetThresholds(ctx context.Context, branchID, currencyCode string, low, high *decimal.Decimal, userID string) error

	// SaveMissingInventory inserts zero-balance rows for the given
	// currencies, skipping any (branch, currency) that already exists.
	// Returns the number created.
	SaveMissingInventory(ctx context.Context, rows []domain.CurrencyInventory) (int, error)
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
