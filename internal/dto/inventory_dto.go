package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest defines the structure for a manual inventory adjustment.
type AdjustInventoryRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Delta        decimal.Decimal `json:"delta" binding:"required"`
	Notes        string          `json:"notes"`
}

// WholesaleRequest defines the structure for a wholesale buy or sell.
type WholesaleRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Supplier     string          `json:"supplier"`
	Notes        string          `json:"notes"`
}

// SetThresholdsRequest defines the structure for updating alert thresholds.
type SetThresholdsRequest struct {
	LowThreshold  *decimal.Decimal `json:"lowThreshold,omitempty"`
	HighThreshold *decimal.Decimal `json:"highThreshold,omitempty"`
}

// InventoryResponse defines the structure for one (branch, currency) balance.
type InventoryResponse struct {
	BranchID      string           `json:"branchID"`
	CurrencyCode  string           `json:"currencyCode"`
	Balance       decimal.Decimal  `json:"balance"`
	LowThreshold  *decimal.Decimal `json:"lowThreshold,omitempty"`
	HighThreshold *decimal.Decimal `json:"highThreshold,omitempty"`
}

// InventoryMovementResponse defines the structure for one movement-log row.
type InventoryMovementResponse struct {
	MovementID    string          `json:"movementID"`
	BranchID      string          `json:"branchID"`
	CurrencyCode  string          `json:"currencyCode"`
	MovementType  string          `json:"movementType"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Supplier      string          `json:"supplier,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// InventoryAlertResponse defines the structure for one low-inventory alert.
type InventoryAlertResponse struct {
	BranchID     string          `json:"branchID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	LowThreshold decimal.Decimal `json:"lowThreshold"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// InitializeInventoryResponse reports how many zero-balance rows were created.
type InitializeInventoryResponse struct {
	Created int `json:"created"`
}

// ToInventoryResponse converts a domain.CurrencyInventory to a DTO.
func ToInventoryResponse(inv *domain.CurrencyInventory) InventoryResponse {
	return InventoryResponse{
		BranchID:      inv.BranchID,
		CurrencyCode:  inv.CurrencyCode,
		Balance:       inv.Balance,
		LowThreshold:  inv.LowThreshold,
		HighThreshold: inv.HighThreshold,
	}
}

// ToInventoryResponses converts a slice of inventory rows to DTOs.
func ToInventoryResponses(rows []domain.CurrencyInventory) []InventoryResponse {
	responses := make([]InventoryResponse, len(rows))
	for i := range rows {
		responses[i] = ToInventoryResponse(&rows[i])
	}
	return responses
}

// ToInventoryMovementResponse converts a domain.InventoryMovement to a DTO.
func ToInventoryMovementResponse(m *domain.InventoryMovement) InventoryMovementResponse {
	return InventoryMovementResponse{
		MovementID:    m.MovementID,
		BranchID:      m.BranchID,
		CurrencyCode:  m.CurrencyCode,
		MovementType:  string(m.MovementType),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Supplier:      m.Supplier,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToInventoryMovementResponses converts a slice of movements to DTOs.
func ToInventoryMovementResponses(movements []domain.InventoryMovement) []InventoryMovementResponse {
	responses := make([]InventoryMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToInventoryMovementResponse(&movements[i])
	}
	return responses
}

// ToInventoryAlertResponses converts a slice of alerts to DTOs.
func ToInventoryAlertResponses(alerts []domain.InventoryAlert) []InventoryAlertResponse {
	responses := make([]InventoryAlertResponse, len(alerts))
	for i, a := range alerts {
		responses[i] = InventoryAlertResponse{
			BranchID:     a.BranchID,
			CurrencyCode: a.CurrencyCode,
			Balance:      a.Balance,
			LowThreshold: a.LowThreshold,
			Shortfall:    a.Shortfall,
		}
	}
	return responses
}
