package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
	"github.com/fxbureau/fxbureau_backend/internal/utils/accounting"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for till transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, till_id, user_id, type, from_currency_code, from_amount, to_currency_code, to_amount, exchange_rate, service_fee, customer_name, customer_id_number, status, requires_compliance, notes, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (domain.TillTransaction, error) {
	var t domain.TillTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.TillID,
		&t.UserID,
		&t.Type,
		&t.FromCurrencyCode,
		&t.FromAmount,
		&t.ToCurrencyCode,
		&t.ToAmount,
		&t.ExchangeRate,
		&t.ServiceFee,
		&t.CustomerName,
		&t.CustomerIDNumber,
		&t.Status,
		&t.RequiresCompliance,
		&t.Notes,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// checkOccupancy verifies inside tx that the user holds the till. Shared
// tills admit any user while the till is active.
func (r *PgxTransactionRepository) checkOccupancy(ctx context.Context, tx pgx.Tx, tillID, userID string) error {
	lockQuery := `SELECT ` + tillColumns + ` FROM tills WHERE till_id = $1 FOR UPDATE;`
	till, err := scanTill(tx.QueryRow(ctx, lockQuery, tillID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock till %s: %w", tillID, err)
	}
	if !till.IsActive {
		return fmt.Errorf("%w: till %s is inactive", apperrors.ErrValidation, tillID)
	}
	if till.ShareTill {
		return nil
	}
	if !till.IsOccupied() || *till.SignedInUserID != userID {
		return fmt.Errorf("%w: caller is not signed in to till %s", apperrors.ErrForbidden, tillID)
	}
	return nil
}

// lockCashBalance locks the (till, currency) cash account row and returns its
// id and balance.
func (r *PgxTransactionRepository) lockCashBalance(ctx context.Context, tx pgx.Tx, tillID, currencyCode string) (string, decimal.Decimal, error) {
	query := `
		SELECT cash_account_id, balance
		FROM cash_ledger_accounts
		WHERE till_id = $1 AND currency_code = $2
		FOR UPDATE;
	`
	var accountID string
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, query, tillID, currencyCode).Scan(&accountID, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", decimal.Zero, fmt.Errorf("%w: no cash account for %s on till %s", apperrors.ErrNotFound, currencyCode, tillID)
		}
		return "", decimal.Zero, fmt.Errorf("failed to lock cash account %s/%s: %w", tillID, currencyCode, err)
	}
	return accountID, balance, nil
}

func (r *PgxTransactionRepository) patchCashBalance(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, txn domain.TillTransaction) error {
	query := `
		UPDATE cash_ledger_accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE cash_account_id = $4;
	`
	if _, err := tx.Exec(ctx, query, balance, txn.LastUpdatedAt, txn.LastUpdatedBy, accountID); err != nil {
		return fmt.Errorf("failed to patch cash balance %s: %w", accountID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.TillTransaction) error {
	query := `
		INSERT INTO till_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.TillID,
		txn.UserID,
		txn.Type,
		txn.FromCurrencyCode,
		txn.FromAmount,
		txn.ToCurrencyCode,
		txn.ToAmount,
		txn.ExchangeRate,
		txn.ServiceFee,
		txn.CustomerName,
		txn.CustomerIDNumber,
		txn.Status,
		txn.RequiresCompliance,
		txn.Notes,
		txn.CompletedAt,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveCashMovement applies a cash_in/cash_out/adjustment to the till's cash
// account for txn.FromCurrencyCode. The affected row is locked, the balance
// invariant is checked against that single read, and the balance patch plus
// the transaction record commit together or not at all.
func (r *PgxTransactionRepository) SaveCashMovement(ctx context.Context, txn domain.TillTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkOccupancy(ctx, tx, txn.TillID, txn.UserID); err != nil {
		return err
	}

	accountID, balance, err := r.lockCashBalance(ctx, tx, txn.TillID, txn.FromCurrencyCode)
	if err != nil {
		return err
	}

	newBalance, err := accounting.ApplyCashMovement(balance, txn.Type, txn.FromAmount)
	if err != nil {
		return err
	}

	if err := r.patchCashBalance(ctx, tx, accountID, newBalance, txn); err != nil {
		return err
	}
	if err := r.insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveCurrencyExchange applies both currency legs of a buy/sell exchange and
// persists txn atomically. Legs are locked in currency-code order so two
// concurrent exchanges over the same pair cannot deadlock.
func (r *PgxTransactionRepository) SaveCurrencyExchange(ctx context.Context, txn domain.TillTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkOccupancy(ctx, tx, txn.TillID, txn.UserID); err != nil {
		return err
	}

	first, second := txn.FromCurrencyCode, txn.ToCurrencyCode
	if second < first {
		first, second = second, first
	}
	balances := make(map[string]decimal.Decimal, 2)
	accountIDs := make(map[string]string, 2)
	for _, code := range []string{first, second} {
		accountID, balance, err := r.lockCashBalance(ctx, tx, txn.TillID, code)
		if err != nil {
			return err
		}
		accountIDs[code] = accountID
		balances[code] = balance
	}

	newFrom, newTo, err := accounting.ApplyExchangeLegs(
		balances[txn.FromCurrencyCode], balances[txn.ToCurrencyCode],
		txn.Type, txn.FromAmount, txn.ToAmount,
	)
	if err != nil {
		return err
	}

	if err := r.patchCashBalance(ctx, tx, accountIDs[txn.FromCurrencyCode], newFrom, txn); err != nil {
		return err
	}
	if err := r.patchCashBalance(ctx, tx, accountIDs[txn.ToCurrencyCode], newTo, txn); err != nil {
		return err
	}
	if err := r.insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a till transaction by id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TillTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM till_transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.TillTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM till_transactions WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.TillID != nil {
		query += ` AND till_id = ` + arg(*filter.TillID)
	}
	if filter.UserID != nil {
		query += ` AND user_id = ` + arg(*filter.UserID)
	}
	if filter.Status != nil {
		query += ` AND status = ` + arg(*filter.Status)
	}
	if filter.CreatedSince != nil {
		query += ` AND created_at >= ` + arg(*filter.CreatedSince)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + arg(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TillTransaction, error) {
		return scanTransaction(row)
	})
}

// ListCompletedWithoutJournal retrieves completed exchanges that no journal
// entry references yet, oldest first.
func (r *PgxTransactionRepository) ListCompletedWithoutJournal(ctx context.Context) ([]domain.TillTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM till_transactions t
		WHERE t.status = 'completed'
		  AND t.type IN ('currency_buy', 'currency_sell')
		  AND NOT EXISTS (
			SELECT 1 FROM journal_entries j
			WHERE j.reference_type = 'till_transaction' AND j.reference_id = t.transaction_id
		  )
		ORDER BY t.created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unposted transactions: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TillTransaction, error) {
		return scanTransaction(row)
	})
}
