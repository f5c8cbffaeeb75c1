package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetRateRequest defines the structure for publishing a new buy/sell rate pair.
type SetRateRequest struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" binding:"required,len=3,uppercase"`
	BuyRate            decimal.Decimal `json:"buyRate" binding:"required"`
	SellRate           decimal.Decimal `json:"sellRate" binding:"required"`
	Source             string          `json:"source"`
}

// ExchangeRateResponse defines the structure for API responses containing rate details.
type ExchangeRateResponse struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	BuyRate            decimal.Decimal `json:"buyRate"`
	SellRate           decimal.Decimal `json:"sellRate"`
	MidRate            decimal.Decimal `json:"midRate"`
	SpreadPct          decimal.Decimal `json:"spreadPct"`
	Source             string          `json:"source"`
	EffectiveFrom      time.Time       `json:"effectiveFrom"`
	EffectiveTo        *time.Time      `json:"effectiveTo,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to an ExchangeRateResponse DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:     rate.ExchangeRateID,
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		BuyRate:            rate.BuyRate,
		SellRate:           rate.SellRate,
		MidRate:            rate.MidRate,
		SpreadPct:          rate.SpreadPct,
		Source:             rate.Source,
		EffectiveFrom:      rate.EffectiveFrom,
		EffectiveTo:        rate.EffectiveTo,
		CreatedAt:          rate.CreatedAt,
		CreatedBy:          rate.CreatedBy,
	}
}

// ToExchangeRateResponses converts a slice of domain rates to DTOs.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
