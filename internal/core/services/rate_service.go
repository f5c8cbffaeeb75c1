package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
	"github.com/fxbureau/fxbureau_backend/internal/utils/accounting"
)

// rateService maintains the effective-dated exchange rate registry.
type rateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.RateSvcFacade {
	return &rateService{rateRepo: rateRepo, currencyRepo: currencyRepo}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// SetRate closes the pair's active row and publishes a new one with derived
// mid rate and spread. History stays intact: the superseded row keeps its
// values and gains an effectiveTo stamp.
func (s *rateService) SetRate(ctx context.Context, req dto.SetRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	base := strings.ToUpper(req.BaseCurrencyCode)
	target := strings.ToUpper(req.TargetCurrencyCode)
	if base == target {
		return nil, fmt.Errorf("%w: base and target currency must differ", apperrors.ErrValidation)
	}
	if !req.BuyRate.IsPositive() || !req.SellRate.IsPositive() {
		return nil, fmt.Errorf("%w: buy and sell rates must be positive", apperrors.ErrValidation)
	}

	for _, code := range []string{base, target} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			return nil, fmt.Errorf("failed to verify currency %s: %w", code, err)
		}
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   base,
		TargetCurrencyCode: target,
		BuyRate:            req.BuyRate,
		SellRate:           req.SellRate,
		MidRate:            accounting.MidRate(req.BuyRate, req.SellRate),
		SpreadPct:          accounting.SpreadPct(req.BuyRate, req.SellRate),
		Source:             req.Source,
		EffectiveFrom:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.ReplaceActiveRate(ctx, rate); err != nil {
		logger.Error("Failed to replace active rate",
			slog.String("base", base), slog.String("target", target), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to set rate %s/%s: %w", base, target, err)
	}

	logger.Info("Exchange rate published",
		slog.String("base", base), slog.String("target", target),
		slog.String("buy", rate.BuyRate.String()), slog.String("sell", rate.SellRate.String()))
	return &rate, nil
}

// GetRate retrieves the currently effective rate for one pair.
func (s *rateService) GetRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindCurrentRate(ctx, strings.ToUpper(baseCode), strings.ToUpper(targetCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get rate %s/%s: %w", baseCode, targetCode, err)
	}
	return rate, nil
}

// GetCurrentRates retrieves one effective rate per target for a base currency.
func (s *rateService) GetCurrentRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListCurrentRates(ctx, strings.ToUpper(baseCode))
	if err != nil {
		return nil, fmt.Errorf("failed to list current rates for %s: %w", baseCode, err)
	}
	return rates, nil
}

// GetRateHistory retrieves a pair's history, most-recent-first.
func (s *rateService) GetRateHistory(ctx context.Context, baseCode, targetCode string, limit int) ([]domain.ExchangeRate, error) {
	history, err := s.rateRepo.ListRateHistory(ctx, strings.ToUpper(baseCode), strings.ToUpper(targetCode), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate history %s/%s: %w", baseCode, targetCode, err)
	}
	return history, nil
}
