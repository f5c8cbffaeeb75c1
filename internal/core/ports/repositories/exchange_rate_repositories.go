package repositories

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for the effective-dated rate registry.
type ExchangeRateReader interface {
	// FindCurrentRate retrieves the rate row effective now for the pair,
	// preferring the latest effectiveFrom and, on ties, the latest insert.
	FindCurrentRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error)

	// ListCurrentRates retrieves one currently effective rate per target for a base currency.
	ListCurrentRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error)

	// ListRateHistory retrieves the pair's full history most-recent-first,
	// capped at limit when limit > 0.
	ListRateHistory(ctx context.Context, baseCode, targetCode string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for the rate registry.
type ExchangeRateWriter interface {
	// ReplaceActiveRate closes the currently active row for the pair
	// (effectiveTo = rate.EffectiveFrom) and inserts the new active row, as
	// one atomic unit.
	ReplaceActiveRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
