package dto

import (
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// CreateLedgerAccountRequest defines the structure for creating a ledger account.
type CreateLedgerAccountRequest struct {
	Code          string  `json:"code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	MainAccountID string  `json:"mainAccountID" binding:"required"`
	CurrencyCode  string  `json:"currencyCode" binding:"required,len=3,uppercase"`
	BranchID      *string `json:"branchID,omitempty"`
	TillID        *string `json:"tillID,omitempty"`
	IsCash        bool    `json:"isCash"`
	IsBank        bool    `json:"isBank"`
}

// UpdateLedgerAccountRequest defines the mutable fields of a ledger account.
type UpdateLedgerAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// LedgerAccountResponse defines the structure for API responses containing account details.
type LedgerAccountResponse struct {
	AccountID     string  `json:"accountID"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	MainAccountID string  `json:"mainAccountID"`
	CurrencyCode  string  `json:"currencyCode"`
	BranchID      *string `json:"branchID,omitempty"`
	TillID        *string `json:"tillID,omitempty"`
	IsCash        bool    `json:"isCash"`
	IsBank        bool    `json:"isBank"`
	IsActive      bool    `json:"isActive"`
}

// MainAccountResponse defines the structure for chart-of-accounts category roots.
type MainAccountResponse struct {
	MainAccountID string `json:"mainAccountID"`
	Name          string `json:"name"`
	Category      string `json:"category"`
}

// ToLedgerAccountResponse converts a domain.LedgerAccount to a DTO.
func ToLedgerAccountResponse(a *domain.LedgerAccount) LedgerAccountResponse {
	return LedgerAccountResponse{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		MainAccountID: a.MainAccountID,
		CurrencyCode:  a.CurrencyCode,
		BranchID:      a.BranchID,
		TillID:        a.TillID,
		IsCash:        a.IsCash,
		IsBank:        a.IsBank,
		IsActive:      a.IsActive,
	}
}

// ToLedgerAccountResponses converts a slice of domain accounts to DTOs.
func ToLedgerAccountResponses(accounts []domain.LedgerAccount) []LedgerAccountResponse {
	responses := make([]LedgerAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToLedgerAccountResponse(&accounts[i])
	}
	return responses
}

// ToMainAccountResponse converts a domain.MainAccount to a DTO.
func ToMainAccountResponse(m *domain.MainAccount) MainAccountResponse {
	return MainAccountResponse{
		MainAccountID: m.MainAccountID,
		Name:          m.Name,
		Category:      string(m.Category),
	}
}
