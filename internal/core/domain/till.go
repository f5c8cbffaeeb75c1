package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Till is a cash-register scope holding one cash balance per currency.
// SignedInUserID set implies exclusive occupancy unless ShareTill.
type Till struct {
	TillID         string     `json:"tillID"`
	Name           string     `json:"name"`
	BranchID       string     `json:"branchID"`
	SignedInUserID *string    `json:"signedInUserID,omitempty"`
	SignedInAt     *time.Time `json:"signedInAt,omitempty"`
	IsActive       bool       `json:"isActive"`
	ShareTill      bool       `json:"shareTill"`
	AuditFields
}

// IsOccupied reports whether a teller currently holds the till.
func (t Till) IsOccupied() bool {
	return t.SignedInUserID != nil && *t.SignedInUserID != ""
}

// TillUpdate exposes the genuinely mutable fields of a till.
type TillUpdate struct {
	Name      *string `json:"name,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	ShareTill *bool   `json:"shareTill,omitempty"`
}

// CashLedgerAccount is one (till, currency) cash balance row.
// Balance stays >= 0 except direct adjustment sets.
type CashLedgerAccount struct {
	CashAccountID string          `json:"cashAccountID"`
	TillID        string          `json:"tillID"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	AccountName   string          `json:"accountName"`
	AuditFields
}
