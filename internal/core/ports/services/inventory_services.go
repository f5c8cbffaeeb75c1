package services

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

// InventoryReaderSvc defines read operations for branch currency inventory.
type InventoryReaderSvc interface {
	// GetInventory retrieves the branch's full inventory.
	GetInventory(ctx context.Context, branchID string) ([]domain.CurrencyInventory, error)

	// GetMovements retrieves the branch's movement log newest first.
	GetMovements(ctx context.Context, branchID string, currencyCode *string, limit int) ([]domain.InventoryMovement, error)

	// GetLowInventoryAlerts retrieves rows with balance at or under their low threshold.
	GetLowInventoryAlerts(ctx context.Context) ([]domain.InventoryAlert, error)
}

// InventoryWriterSvc defines balance-changing operations on branch inventory.
// Every mutation writes exactly one movement row atomically with the balance patch.
type InventoryWriterSvc interface {
	// AdjustInventory applies a signed manual delta.
	AdjustInventory(ctx context.Context, branchID string, req dto.AdjustInventoryRequest, userID string) (*domain.InventoryMovement, error)

	// RecordWholesaleBuy adds stock bought from a wholesale counterparty.
	RecordWholesaleBuy(ctx context.Context, branchID string, req dto.WholesaleRequest, userID string) (*domain.InventoryMovement, error)

	// RecordWholesaleSell removes stock sold to a wholesale counterparty.
	RecordWholesaleSell(ctx context.Context, branchID string, req dto.WholesaleRequest, userID string) (*domain.InventoryMovement, error)

	// SetThresholds upserts alert thresholds without touching the balance.
	SetThresholds(ctx context.Context, branchID, currencyCode string, req dto.SetThresholdsRequest, userID string) error

	// InitializeInventory creates zero-balance rows for every active currency
	// the branch lacks; idempotent. Returns the number created.
	InitializeInventory(ctx context.Context, branchID string, userID string) (int, error)
}

// InventorySvcFacade combines all inventory service interfaces.
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
