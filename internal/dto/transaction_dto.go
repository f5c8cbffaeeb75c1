package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashMovementRequest defines the structure for a till cash movement.
type CreateCashMovementRequest struct {
	Type         string          `json:"type" binding:"required,oneof=cash_in cash_out adjustment"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Notes        string          `json:"notes"`
}

// CreateExchangeRequest defines the structure for a two-legged currency exchange.
type CreateExchangeRequest struct {
	Type             string          `json:"type" binding:"required,oneof=currency_buy currency_sell"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	FromAmount       decimal.Decimal `json:"fromAmount" binding:"required"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	ToAmount         decimal.Decimal `json:"toAmount" binding:"required"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate" binding:"required"`
	ServiceFee       decimal.Decimal `json:"serviceFee"`
	CustomerName     string          `json:"customerName"`
	CustomerIDNumber string          `json:"customerIDNumber"`
	Notes            string          `json:"notes"`
}

// ListTransactionsParams holds query parameters for listing till transactions.
type ListTransactionsParams struct {
	TillID             *string
	Status             *string
	Limit              int
	CurrentSessionOnly bool
}

// TransactionResponse defines the structure for API responses containing a till transaction.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	TillID             string          `json:"tillID"`
	UserID             string          `json:"userID"`
	Type               string          `json:"type"`
	FromCurrencyCode   string          `json:"fromCurrencyCode"`
	FromAmount         decimal.Decimal `json:"fromAmount"`
	ToCurrencyCode     string          `json:"toCurrencyCode,omitempty"`
	ToAmount           decimal.Decimal `json:"toAmount"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	ServiceFee         decimal.Decimal `json:"serviceFee"`
	CustomerName       string          `json:"customerName,omitempty"`
	CustomerIDNumber   string          `json:"customerIDNumber,omitempty"`
	Status             string          `json:"status"`
	RequiresCompliance bool            `json:"requiresCompliance"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
}

// ToTransactionResponse converts a domain.TillTransaction to a DTO.
func ToTransactionResponse(t *domain.TillTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		TillID:             t.TillID,
		UserID:             t.UserID,
		Type:               string(t.Type),
		FromCurrencyCode:   t.FromCurrencyCode,
		FromAmount:         t.FromAmount,
		ToCurrencyCode:     t.ToCurrencyCode,
		ToAmount:           t.ToAmount,
		ExchangeRate:       t.ExchangeRate,
		ServiceFee:         t.ServiceFee,
		CustomerName:       t.CustomerName,
		CustomerIDNumber:   t.CustomerIDNumber,
		Status:             string(t.Status),
		RequiresCompliance: t.RequiresCompliance,
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
		CompletedAt:        t.CompletedAt,
	}
}

// ToTransactionResponses converts a slice of till transactions to DTOs.
func ToTransactionResponses(transactions []domain.TillTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
