package dto

import (
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the structure for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Name          string `json:"name" binding:"required"`
	Symbol        string `json:"symbol" binding:"required"`
	DecimalPlaces int32  `json:"decimalPlaces" binding:"gte=0,lte=8"`
}

// CurrencyResponse defines the structure for API responses containing currency details.
type CurrencyResponse struct {
	CurrencyCode  string `json:"currencyCode"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int32  `json:"decimalPlaces"`
	IsActive      bool   `json:"isActive"`
}

// ToCurrencyResponse converts a domain.Currency to a CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Name:          c.Name,
		Symbol:        c.Symbol,
		DecimalPlaces: c.DecimalPlaces,
		IsActive:      c.IsActive,
	}
}

// ToCurrencyResponses converts a slice of domain currencies to DTOs.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}
