package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates the read-only repository the reconciliation
// and P&L engine aggregates over.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingReader {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingReader = (*ReportingRepository)(nil)

// ListTransactionsInWindow retrieves transactions created inside [from, to),
// optionally narrowed to one branch via the owning till.
func (r *ReportingRepository) ListTransactionsInWindow(ctx context.Context, from, to time.Time, branchID *string) ([]domain.TillTransaction, error) {
	query := `
		SELECT ` + prefixedTransactionColumns("t") + `
		FROM till_transactions t
		WHERE t.created_at >= $1 AND t.created_at < $2
	`
	args := []any{from, to}
	if branchID != nil {
		args = append(args, *branchID)
		query += fmt.Sprintf(` AND t.till_id IN (SELECT till_id FROM tills WHERE branch_id = $%d)`, len(args))
	}
	query += ` ORDER BY t.created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions in window: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TillTransaction, error) {
		return scanTransaction(row)
	})
}

// ListCompletedExchanges retrieves completed currency_buy/currency_sell
// transactions, optionally bounded by creation time and branch.
func (r *ReportingRepository) ListCompletedExchanges(ctx context.Context, from, to *time.Time, branchID *string) ([]domain.TillTransaction, error) {
	query := `
		SELECT ` + prefixedTransactionColumns("t") + `
		FROM till_transactions t
		WHERE t.status = 'completed' AND t.type IN ('currency_buy', 'currency_sell')
	`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if from != nil {
		query += ` AND t.created_at >= ` + arg(*from)
	}
	if to != nil {
		query += ` AND t.created_at < ` + arg(*to)
	}
	if branchID != nil {
		query += ` AND t.till_id IN (SELECT till_id FROM tills WHERE branch_id = ` + arg(*branchID) + `)`
	}
	query += ` ORDER BY t.created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed exchanges: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TillTransaction, error) {
		return scanTransaction(row)
	})
}

// prefixedTransactionColumns qualifies the shared column list with a table alias.
func prefixedTransactionColumns(alias string) string {
	return alias + ".transaction_id, " + alias + ".till_id, " + alias + ".user_id, " + alias + ".type, " +
		alias + ".from_currency_code, " + alias + ".from_amount, " + alias + ".to_currency_code, " + alias + ".to_amount, " +
		alias + ".exchange_rate, " + alias + ".service_fee, " + alias + ".customer_name, " + alias + ".customer_id_number, " +
		alias + ".status, " + alias + ".requires_compliance, " + alias + ".notes, " + alias + ".completed_at, " +
		alias + ".created_at, " + alias + ".created_by, " + alias + ".last_updated_at, " + alias + ".last_updated_by"
}
