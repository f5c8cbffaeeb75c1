package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fxbureau/fxbureau_backend/internal/apperrors"
	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	portsrepo "github.com/fxbureau/fxbureau_backend/internal/core/ports/repositories"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for branch currency inventory.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryColumns = `inventory_id, branch_id, currency_code, balance, low_threshold, high_threshold, created_at, created_by, last_updated_at, last_updated_by`

func scanInventory(row pgx.Row) (domain.CurrencyInventory, error) {
	var inv domain.CurrencyInventory
	err := row.Scan(
		&inv.InventoryID,
		&inv.BranchID,
		&inv.CurrencyCode,
		&inv.Balance,
		&inv.LowThreshold,
		&inv.HighThreshold,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}

// ApplyMovement locks the (branch, currency) row, computes the new balance
// against that single consistent read, and commits the balance patch together
// with exactly one movement row. A balance that would go negative aborts with
// ErrInsufficientBalance and no mutation.
func (r *PgxInventoryRepository) ApplyMovement(ctx context.Context, movement domain.InventoryMovement, requireExisting bool) (*domain.InventoryMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT inventory_id, balance
		FROM currency_inventory
		WHERE branch_id = $1 AND currency_code = $2
		FOR UPDATE;
	`
	var inventoryID string
	balanceBefore := decimal.Zero
	err = tx.QueryRow(ctx, lockQuery, movement.BranchID, movement.CurrencyCode).Scan(&inventoryID, &balanceBefore)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if requireExisting {
			return nil, fmt.Errorf("%w: branch %s holds no %s inventory", apperrors.ErrNotFound, movement.BranchID, movement.CurrencyCode)
		}
		// First movement for the pair starts from a fresh zero-balance row.
		insertRow := `
			INSERT INTO currency_inventory (` + inventoryColumns + `)
			VALUES ($1, $2, $3, 0, NULL, NULL, $4, $5, $6, $7)
			RETURNING inventory_id;
		`
		if err := tx.QueryRow(ctx, insertRow,
			uuid.NewString(), movement.BranchID, movement.CurrencyCode,
			movement.CreatedAt, movement.CreatedBy, movement.LastUpdatedAt, movement.LastUpdatedBy,
		).Scan(&inventoryID); err != nil {
			return nil, fmt.Errorf("failed to create inventory row %s/%s: %w", movement.BranchID, movement.CurrencyCode, err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to lock inventory %s/%s: %w", movement.BranchID, movement.CurrencyCode, err)
	}

	balanceAfter := balanceBefore.Add(movement.Amount)
	if balanceAfter.IsNegative() {
		return nil, fmt.Errorf("%w: movement of %s would take %s/%s below zero (balance %s)",
			apperrors.ErrInsufficientBalance, movement.Amount.String(),
			movement.BranchID, movement.CurrencyCode, balanceBefore.String())
	}

	patchQuery := `
		UPDATE currency_inventory
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE inventory_id = $4;
	`
	if _, err := tx.Exec(ctx, patchQuery, balanceAfter, movement.LastUpdatedAt, movement.LastUpdatedBy, inventoryID); err != nil {
		return nil, fmt.Errorf("failed to patch inventory balance %s: %w", inventoryID, err)
	}

	movement.BalanceBefore = balanceBefore
	movement.BalanceAfter = balanceAfter
	movementQuery := `
		INSERT INTO inventory_movements (movement_id, branch_id, currency_code, movement_type, amount, balance_before, balance_after, supplier, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	if _, err := tx.Exec(ctx, movementQuery,
		movement.MovementID,
		movement.BranchID,
		movement.CurrencyCode,
		movement.MovementType,
		movement.Amount,
		movement.BalanceBefore,
		movement.BalanceAfter,
		movement.Supplier,
		movement.Notes,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to insert movement %s: %w", movement.MovementID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// SetThresholds upserts the low/high thresholds without touching the balance.
func (r *PgxInventoryRepository) SetThresholds(ctx context.Context, branchID, currencyCode string, low, high *decimal.Decimal, userID string) error {
	query := `
		UPDATE currency_inventory
		SET low_threshold = COALESCE($1, low_threshold),
		    high_threshold = COALESCE($2, high_threshold),
		    last_updated_at = NOW(),
		    last_updated_by = $3
		WHERE branch_id = $4 AND currency_code = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, low, high, userID, branchID, currencyCode)
	if err != nil {
		return fmt.Errorf("failed to set thresholds %s/%s: %w", branchID, currencyCode, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: branch %s holds no %s inventory", apperrors.ErrNotFound, branchID, currencyCode)
	}
	return nil
}

// SaveMissingInventory inserts zero-balance rows, skipping any
// (branch, currency) that already exists. Returns the number created.
func (r *PgxInventoryRepository) SaveMissingInventory(ctx context.Context, inventoryRows []domain.CurrencyInventory) (int, error) {
	if len(inventoryRows) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO currency_inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (branch_id, currency_code) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, inv := range inventoryRows {
		batch.Queue(query,
			inv.InventoryID,
			inv.BranchID,
			inv.CurrencyCode,
			inv.Balance,
			inv.LowThreshold,
			inv.HighThreshold,
			inv.CreatedAt,
			inv.CreatedBy,
			inv.LastUpdatedAt,
			inv.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	created := 0
	for range inventoryRows {
		tag, err := br.Exec()
		if err != nil {
			return created, fmt.Errorf("failed to insert inventory batch: %w", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

// FindInventory retrieves one (branch, currency) inventory row.
func (r *PgxInventoryRepository) FindInventory(ctx context.Context, branchID, currencyCode string) (*domain.CurrencyInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM currency_inventory WHERE branch_id = $1 AND currency_code = $2;`
	inv, err := scanInventory(r.Pool.QueryRow(ctx, query, branchID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory %s/%s: %w", branchID, currencyCode, err)
	}
	return &inv, nil
}

// ListInventoryByBranch retrieves the branch's full inventory.
func (r *PgxInventoryRepository) ListInventoryByBranch(ctx context.Context, branchID string) ([]domain.CurrencyInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM currency_inventory WHERE branch_id = $1 ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory for branch %s: %w", branchID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CurrencyInventory, error) {
		return scanInventory(row)
	})
}

// ListMovements retrieves the branch's movement log newest first.
func (r *PgxInventoryRepository) ListMovements(ctx context.Context, branchID string, currencyCode *string, limit int) ([]domain.InventoryMovement, error) {
	query := `
		SELECT movement_id, branch_id, currency_code, movement_type, amount, balance_before, balance_after, supplier, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_movements
		WHERE branch_id = $1
	`
	args := []any{branchID}
	if currencyCode != nil {
		args = append(args, *currencyCode)
		query += fmt.Sprintf(` AND currency_code = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for branch %s: %w", branchID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryMovement, error) {
		var m domain.InventoryMovement
		err := row.Scan(
			&m.MovementID,
			&m.BranchID,
			&m.CurrencyCode,
			&m.MovementType,
			&m.Amount,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.Supplier,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
}

// ListLowInventory retrieves rows with balance at or under their low threshold.
func (r *PgxInventoryRepository) ListLowInventory(ctx context.Context) ([]domain.InventoryAlert, error) {
	query := `
		SELECT branch_id, currency_code, balance, low_threshold
		FROM currency_inventory
		WHERE low_threshold IS NOT NULL AND balance <= low_threshold
		ORDER BY branch_id, currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low inventory: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryAlert, error) {
		var a domain.InventoryAlert
		if err := row.Scan(&a.BranchID, &a.CurrencyCode, &a.Balance, &a.LowThreshold); err != nil {
			return a, err
		}
		a.Shortfall = a.LowThreshold.Sub(a.Balance)
		return a, nil
	})
}
