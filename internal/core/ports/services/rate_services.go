package services

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

// RateReaderSvc defines read operations against the rate registry.
type RateReaderSvc interface {
	// GetRate retrieves the currently effective rate for one pair.
	GetRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error)

	// GetCurrentRates retrieves one effective rate per target for a base currency.
	GetCurrentRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error)

	// GetRateHistory retrieves a pair's immutable history, most-recent-first.
	GetRateHistory(ctx context.Context, baseCode, targetCode string, limit int) ([]domain.ExchangeRate, error)
}

// RateWriterSvc defines write operations against the rate registry.
type RateWriterSvc interface {
	// SetRate closes the active row for the pair and publishes a new one.
	SetRate(ctx context.Context, req dto.SetRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// RateSvcFacade combines all rate-registry service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}
