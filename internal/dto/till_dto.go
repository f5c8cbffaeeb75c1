package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTillRequest defines the structure for creating a till.
type CreateTillRequest struct {
	Name      string `json:"name" binding:"required"`
	BranchID  string `json:"branchID" binding:"required"`
	ShareTill bool   `json:"shareTill"`
}

// UpdateTillRequest defines the mutable fields of a till.
type UpdateTillRequest struct {
	Name      *string `json:"name,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	ShareTill *bool   `json:"shareTill,omitempty"`
}

// TillResponse defines the structure for API responses containing till details.
type TillResponse struct {
	TillID         string     `json:"tillID"`
	Name           string     `json:"name"`
	BranchID       string     `json:"branchID"`
	SignedInUserID *string    `json:"signedInUserID,omitempty"`
	SignedInAt     *time.Time `json:"signedInAt,omitempty"`
	IsActive       bool       `json:"isActive"`
	ShareTill      bool       `json:"shareTill"`
}

// CashAccountResponse defines the structure for one till cash balance.
type CashAccountResponse struct {
	CashAccountID string          `json:"cashAccountID"`
	TillID        string          `json:"tillID"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	AccountName   string          `json:"accountName"`
}

// CreateCashAccountsResponse reports how many cash accounts were provisioned.
type CreateCashAccountsResponse struct {
	Created int `json:"created"`
}

// ToTillResponse converts a domain.Till to a DTO.
func ToTillResponse(t *domain.Till) TillResponse {
	return TillResponse{
		TillID:         t.TillID,
		Name:           t.Name,
		BranchID:       t.BranchID,
		SignedInUserID: t.SignedInUserID,
		SignedInAt:     t.SignedInAt,
		IsActive:       t.IsActive,
		ShareTill:      t.ShareTill,
	}
}

// ToTillResponses converts a slice of tills to DTOs.
func ToTillResponses(tills []domain.Till) []TillResponse {
	responses := make([]TillResponse, len(tills))
	for i := range tills {
		responses[i] = ToTillResponse(&tills[i])
	}
	return responses
}

// ToCashAccountResponse converts a domain.CashLedgerAccount to a DTO.
func ToCashAccountResponse(a *domain.CashLedgerAccount) CashAccountResponse {
	return CashAccountResponse{
		CashAccountID: a.CashAccountID,
		TillID:        a.TillID,
		CurrencyCode:  a.CurrencyCode,
		Balance:       a.Balance,
		AccountName:   a.AccountName,
	}
}

// ToCashAccountResponses converts a slice of cash accounts to DTOs.
func ToCashAccountResponses(accounts []domain.CashLedgerAccount) []CashAccountResponse {
	responses := make([]CashAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToCashAccountResponse(&accounts[i])
	}
	return responses
}
