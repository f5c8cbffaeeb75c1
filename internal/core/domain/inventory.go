package domain

import "github.com/shopspring/decimal"

// MovementType classifies one inventory balance change.
type MovementType string

const (
	MovementAdjustment    MovementType = "adjustment"
	MovementWholesaleBuy  MovementType = "wholesale_buy"
	MovementWholesaleSell MovementType = "wholesale_sell"
)

// CurrencyInventory is the branch-level balance of one currency, independent
// of any specific till. Balance never goes below zero.
type CurrencyInventory struct {
	InventoryID   string           `json:"inventoryID"`
	BranchID      string           `json:"branchID"`
	CurrencyCode  string           `json:"currencyCode"`
	Balance       decimal.Decimal  `json:"balance"`
	LowThreshold  *decimal.Decimal `json:"lowThreshold,omitempty"`
	HighThreshold *decimal.Decimal `json:"highThreshold,omitempty"`
	AuditFields
}

// InventoryMovement is the append-only audit record of one inventory balance
// change. Exactly one movement row is written per balance-changing operation,
// in the same atomic unit as the balance patch.
type InventoryMovement struct {
	MovementID    string          `json:"movementID"`
	BranchID      string          `json:"branchID"`
	CurrencyCode  string          `json:"currencyCode"`
	MovementType  MovementType    `json:"movementType"`
	Amount        decimal.Decimal `json:"amount"` // Signed delta
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Supplier      string          `json:"supplier,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	AuditFields
}

// InventoryAlert is one low-inventory row: balance at or under its threshold.
type InventoryAlert struct {
	BranchID     string          `json:"branchID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	LowThreshold decimal.Decimal `json:"lowThreshold"`
	Shortfall    decimal.Decimal `json:"shortfall"` // lowThreshold - balance
}
