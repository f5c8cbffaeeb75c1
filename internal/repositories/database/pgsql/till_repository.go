package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

type PgxTillRepository struct {
	BaseRepository
}

// newPgxTillRepository creates a new repository for tills and their cash accounts.
func newPgxTillRepository(pool *pgxpool.Pool) portsrepo.TillRepositoryFacade {
	return &PgxTillRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TillRepositoryFacade = (*PgxTillRepository)(nil)

const tillColumns = `till_id, name, branch_id, signed_in_user_id, signed_in_at, is_active, share_till, created_at, created_by, last_updated_at, last_updated_by`

func scanTill(row pgx.Row) (domain.Till, error) {
	var t domain.Till
	err := row.Scan(
		&t.TillID,
		&t.Name,
		&t.BranchID,
		&t.SignedInUserID,
		&t.SignedInAt,
		&t.IsActive,
		&t.ShareTill,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTill persists a new till.
func (r *PgxTillRepository) SaveTill(ctx context.Context, till domain.Till) error {
	query := `
		INSERT INTO tills (` + tillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		till.TillID,
		till.Name,
		till.BranchID,
		till.SignedInUserID,
		till.SignedInAt,
		till.IsActive,
		till.ShareTill,
		till.CreatedAt,
		till.CreatedBy,
		till.LastUpdatedAt,
		till.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save till %s: %w", till.TillID, err)
	}
	return nil
}

// UpdateTill applies a typed partial update and returns the fresh row.
func (r *PgxTillRepository) UpdateTill(ctx context.Context, tillID string, update domain.TillUpdate, userID string, now time.Time) (*domain.Till, error) {
	query := `
		UPDATE tills
		SET name = COALESCE($1, name),
		    is_active = COALESCE($2, is_active),
		    share_till = COALESCE($3, share_till),
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE till_id = $6
		RETURNING ` + tillColumns + `;
	`
	till, err := scanTill(r.Pool.QueryRow(ctx, query, update.Name, update.IsActive, update.ShareTill, now, userID, tillID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update till %s: %w", tillID, err)
	}
	return &till, nil
}

// DeactivateTill marks a till inactive.
func (r *PgxTillRepository) DeactivateTill(ctx context.Context, tillID string, userID string, now time.Time) error {
	query := `
		UPDATE tills
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE till_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, tillID)
	if err != nil {
		return fmt.Errorf("failed to deactivate till %s: %w", tillID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SignIn records userID as the till occupant. The till row is locked so two
// tellers racing for a non-shared till cannot both win.
func (r *PgxTillRepository) SignIn(ctx context.Context, tillID, userID string, at time.Time) (*domain.Till, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + tillColumns + ` FROM tills WHERE till_id = $1 FOR UPDATE;`
	till, err := scanTill(tx.QueryRow(ctx, lockQuery, tillID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock till %s: %w", tillID, err)
	}
	if !till.IsActive {
		return nil, fmt.Errorf("%w: till %s is inactive", apperrors.ErrValidation, tillID)
	}
	if till.IsOccupied() && *till.SignedInUserID != userID && !till.ShareTill {
		return nil, fmt.Errorf("%w: till is occupied by another user", apperrors.ErrConflict)
	}

	updateQuery := `
		UPDATE tills
		SET signed_in_user_id = $1, signed_in_at = $2, last_updated_at = $2, last_updated_by = $1
		WHERE till_id = $3;
	`
	if _, err := tx.Exec(ctx, updateQuery, userID, at, tillID); err != nil {
		return nil, fmt.Errorf("failed to sign in to till %s: %w", tillID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	till.SignedInUserID = &userID
	till.SignedInAt = &at
	till.LastUpdatedAt = at
	till.LastUpdatedBy = userID
	return &till, nil
}

// SignOut clears the till occupancy. Only the current occupant may.
func (r *PgxTillRepository) SignOut(ctx context.Context, tillID, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + tillColumns + ` FROM tills WHERE till_id = $1 FOR UPDATE;`
	till, err := scanTill(tx.QueryRow(ctx, lockQuery, tillID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock till %s: %w", tillID, err)
	}
	if !till.IsOccupied() || *till.SignedInUserID != userID {
		return fmt.Errorf("%w: caller is not the current till occupant", apperrors.ErrForbidden)
	}

	updateQuery := `
		UPDATE tills
		SET signed_in_user_id = NULL, signed_in_at = NULL, last_updated_at = $1, last_updated_by = $2
		WHERE till_id = $3;
	`
	if _, err := tx.Exec(ctx, updateQuery, at, userID, tillID); err != nil {
		return fmt.Errorf("failed to sign out of till %s: %w", tillID, err)
	}
	return r.Commit(ctx, tx)
}

// FindTillByID retrieves a till by id.
func (r *PgxTillRepository) FindTillByID(ctx context.Context, tillID string) (*domain.Till, error) {
	query := `SELECT ` + tillColumns + ` FROM tills WHERE till_id = $1;`
	till, err := scanTill(r.Pool.QueryRow(ctx, query, tillID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find till %s: %w", tillID, err)
	}
	return &till, nil
}

// ListTills retrieves tills, optionally scoped to a branch.
func (r *PgxTillRepository) ListTills(ctx context.Context, branchID *string) ([]domain.Till, error) {
	query := `SELECT ` + tillColumns + ` FROM tills`
	args := []any{}
	if branchID != nil {
		query += ` WHERE branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tills: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Till, error) {
		return scanTill(row)
	})
}

const cashAccountColumns = `cash_account_id, till_id, currency_code, balance, account_name, created_at, created_by, last_updated_at, last_updated_by`

func scanCashAccount(row pgx.Row) (domain.CashLedgerAccount, error) {
	var a domain.CashLedgerAccount
	err := row.Scan(
		&a.CashAccountID,
		&a.TillID,
		&a.CurrencyCode,
		&a.Balance,
		&a.AccountName,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// ListCashAccountsByTill retrieves the till's per-currency cash balances.
func (r *PgxTillRepository) ListCashAccountsByTill(ctx context.Context, tillID string) ([]domain.CashLedgerAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_ledger_accounts WHERE till_id = $1 ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query, tillID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash accounts for till %s: %w", tillID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashLedgerAccount, error) {
		return scanCashAccount(row)
	})
}

// SaveMissingCashAccounts inserts the given cash accounts, skipping any
// (till, currency) that already exists. Returns the number created.
func (r *PgxTillRepository) SaveMissingCashAccounts(ctx context.Context, accounts []domain.CashLedgerAccount) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO cash_ledger_accounts (` + cashAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (till_id, currency_code) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(query,
			account.CashAccountID,
			account.TillID,
			account.CurrencyCode,
			account.Balance,
			account.AccountName,
			account.CreatedAt,
			account.CreatedBy,
			account.LastUpdatedAt,
			account.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	created := 0
	for range accounts {
		tag, err := br.Exec()
		if err != nil {
			return created, fmt.Errorf("failed to insert cash account batch: %w", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}
