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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `journal_entry_id, entry_number, entry_date, description, reference_type, reference_id, status, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.JournalEntryID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.Description,
		&e.ReferenceType,
		&e.ReferenceID,
		&e.Status,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// NextEntryNumber reserves the next sequential entry number from the
// journal_entry_seq sequence, formatted "JE-000042".
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('journal_entry_seq');`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to reserve journal entry number: %w", err)
	}
	return fmt.Sprintf("JE-%06d", n), nil
}

// SaveEntry persists an entry header and its lines in one transaction. A
// second entry for the same (reference_type, reference_id) trips the unique
// constraint and maps to ErrDuplicate with nothing written.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := tx.Exec(ctx, entryQuery,
		entry.JournalEntryID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.ReferenceType,
		entry.ReferenceID,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	); err != nil {
		if isUniqueViolation(err) {
			refID := ""
			if entry.ReferenceID != nil {
				refID = *entry.ReferenceID
			}
			return fmt.Errorf("%w: journal entry already posted for reference %s", apperrors.ErrDuplicate, refID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.JournalEntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.JournalEntryID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.Description,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", entry.JournalEntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by id.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return &entry, nil
}

// FindEntryByReference retrieves the entry posted for a source record, if any.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE reference_type = $1 AND reference_id = $2;`
	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, refType, refID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry for %s %s: %w", refType, refID, err)
	}
	return &entry, nil
}

// FindLinesByEntryID retrieves an entry's debit/credit lines.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, journal_entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY debit DESC, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntryLine, error) {
		var l domain.JournalEntryLine
		err := row.Scan(
			&l.LineID,
			&l.JournalEntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		return l, err
	})
}

// ListEntries retrieves entries newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		return scanJournalEntry(row)
	})
}
