package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const ledgerAccountColumns = `account_id, code, name, main_account_id, currency_code, branch_id, till_id, is_cash, is_bank, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerAccount(row pgx.Row) (domain.LedgerAccount, error) {
	var a domain.LedgerAccount
	err := row.Scan(
		&a.AccountID,
		&a.Code,
		&a.Name,
		&a.MainAccountID,
		&a.CurrencyCode,
		&a.BranchID,
		&a.TillID,
		&a.IsCash,
		&a.IsBank,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// SaveLedgerAccount persists a new ledger account. A duplicate code maps to ErrConflict.
func (r *PgxAccountRepository) SaveLedgerAccount(ctx context.Context, account domain.LedgerAccount) error {
	query := `
		INSERT INTO ledger_accounts (` + ledgerAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Code,
		account.Name,
		account.MainAccountID,
		account.CurrencyCode,
		account.BranchID,
		account.TillID,
		account.IsCash,
		account.IsBank,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, account.Code)
		}
		return fmt.Errorf("failed to save ledger account %s: %w", account.Code, err)
	}
	return nil
}

// UpdateLedgerAccount applies a typed partial update and returns the fresh row.
func (r *PgxAccountRepository) UpdateLedgerAccount(ctx context.Context, accountID string, update domain.LedgerAccountUpdate, userID string, now time.Time) (*domain.LedgerAccount, error) {
	query := `
		UPDATE ledger_accounts
		SET name = COALESCE($1, name),
		    is_active = COALESCE($2, is_active),
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE account_id = $5
		RETURNING ` + ledgerAccountColumns + `;
	`
	account, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, update.Name, update.IsActive, now, userID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update ledger account %s: %w", accountID, err)
	}
	return &account, nil
}

// FindLedgerAccountByID retrieves a ledger account by id.
func (r *PgxAccountRepository) FindLedgerAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE account_id = $1;`
	account, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger account %s: %w", accountID, err)
	}
	return &account, nil
}

// FindLedgerAccountByCode retrieves a ledger account by its unique code.
func (r *PgxAccountRepository) FindLedgerAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE code = $1;`
	account, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger account by code %s: %w", code, err)
	}
	return &account, nil
}

// FindCashAccountByCurrency retrieves the active cash ledger account for a
// currency, used to resolve journal posting legs.
func (r *PgxAccountRepository) FindCashAccountByCurrency(ctx context.Context, currencyCode string) (*domain.LedgerAccount, error) {
	query := `
		SELECT ` + ledgerAccountColumns + `
		FROM ledger_accounts
		WHERE currency_code = $1 AND is_cash AND is_active
		ORDER BY created_at
		LIMIT 1;
	`
	account, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active cash account for currency %s", apperrors.ErrNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to find cash account for %s: %w", currencyCode, err)
	}
	return &account, nil
}

// ListLedgerAccounts retrieves ledger accounts matching the filter.
func (r *PgxAccountRepository) ListLedgerAccounts(ctx context.Context, filter portsrepo.LedgerAccountFilter) ([]domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.MainAccountID != nil {
		query += ` AND main_account_id = ` + arg(*filter.MainAccountID)
	}
	if filter.CurrencyCode != nil {
		query += ` AND currency_code = ` + arg(*filter.CurrencyCode)
	}
	if filter.BranchID != nil {
		query += ` AND branch_id = ` + arg(*filter.BranchID)
	}
	if filter.IsCash != nil {
		query += ` AND is_cash = ` + arg(*filter.IsCash)
	}
	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger accounts: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerAccount, error) {
		return scanLedgerAccount(row)
	})
}

const mainAccountColumns = `main_account_id, name, category, created_at, created_by, last_updated_at, last_updated_by`

func scanMainAccount(row pgx.Row) (domain.MainAccount, error) {
	var m domain.MainAccount
	err := row.Scan(
		&m.MainAccountID,
		&m.Name,
		&m.Category,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindMainAccountByCategory retrieves the category root (assets, revenue, ...).
func (r *PgxAccountRepository) FindMainAccountByCategory(ctx context.Context, category domain.MainAccountCategory) (*domain.MainAccount, error) {
	query := `SELECT ` + mainAccountColumns + ` FROM main_accounts WHERE category = $1;`
	main, err := scanMainAccount(r.Pool.QueryRow(ctx, query, category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no main account for category %s", apperrors.ErrNotFound, category)
		}
		return nil, fmt.Errorf("failed to find main account for category %s: %w", category, err)
	}
	return &main, nil
}

// ListMainAccounts retrieves all category roots.
func (r *PgxAccountRepository) ListMainAccounts(ctx context.Context) ([]domain.MainAccount, error) {
	query := `SELECT ` + mainAccountColumns + ` FROM main_accounts ORDER BY category;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query main accounts: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MainAccount, error) {
		return scanMainAccount(row)
	})
}
