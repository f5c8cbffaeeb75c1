package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for the rate registry.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency_code, target_currency_code, buy_rate, sell_rate, mid_rate, spread_pct, source, effective_from, effective_to, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.BaseCurrencyCode,
		&rate.TargetCurrencyCode,
		&rate.BuyRate,
		&rate.SellRate,
		&rate.MidRate,
		&rate.SpreadPct,
		&rate.Source,
		&rate.EffectiveFrom,
		&rate.EffectiveTo,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	return rate, err
}

// ReplaceActiveRate closes the currently active row for the pair and inserts
// the new one in a single transaction, so at no instant does the pair carry
// zero or two active rows.
func (r *PgxExchangeRateRepository) ReplaceActiveRate(ctx context.Context, rate domain.ExchangeRate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	closeQuery := `
		UPDATE exchange_rates
		SET effective_to = $1, last_updated_at = $2, last_updated_by = $3
		WHERE base_currency_code = $4 AND target_currency_code = $5 AND effective_to IS NULL;
	`
	if _, err := tx.Exec(ctx, closeQuery,
		rate.EffectiveFrom, rate.LastUpdatedAt, rate.LastUpdatedBy,
		rate.BaseCurrencyCode, rate.TargetCurrencyCode,
	); err != nil {
		return fmt.Errorf("failed to close active rate %s/%s: %w", rate.BaseCurrencyCode, rate.TargetCurrencyCode, err)
	}

	insertQuery := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		rate.ExchangeRateID,
		rate.BaseCurrencyCode,
		rate.TargetCurrencyCode,
		rate.BuyRate,
		rate.SellRate,
		rate.MidRate,
		rate.SpreadPct,
		rate.Source,
		rate.EffectiveFrom,
		rate.EffectiveTo,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert rate %s/%s: %w", rate.BaseCurrencyCode, rate.TargetCurrencyCode, err)
	}

	return r.Commit(ctx, tx)
}

// FindCurrentRate retrieves the rate row effective now for the pair. Overlap
// from legacy data resolves to the latest effective_from, then latest insert.
func (r *PgxExchangeRateRepository) FindCurrentRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2
		  AND effective_from <= NOW()
		  AND (effective_to IS NULL OR effective_to > NOW())
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1;
	`
	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, baseCode, targetCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current rate %s/%s: %w", baseCode, targetCode, err)
	}
	return &rate, nil
}

// ListCurrentRates retrieves one currently effective rate per target for a base currency.
func (r *PgxExchangeRateRepository) ListCurrentRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT DISTINCT ON (target_currency_code) ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1
		  AND effective_from <= NOW()
		  AND (effective_to IS NULL OR effective_to > NOW())
		ORDER BY target_currency_code, effective_from DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, baseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query current rates for %s: %w", baseCode, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
}

// ListRateHistory retrieves the pair's history most-recent-first.
func (r *PgxExchangeRateRepository) ListRateHistory(ctx context.Context, baseCode, targetCode string, limit int) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2
		ORDER BY effective_from DESC, created_at DESC
	`
	args := []any{baseCode, targetCode}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history %s/%s: %w", baseCode, targetCode, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
}
