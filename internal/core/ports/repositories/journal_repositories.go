package repositories

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by id.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves the entry posted for a source record, if any.
	FindEntryByReference(ctx context.Context, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's debit/credit lines.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves entries newest first, capped at limit when limit > 0.
	ListEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// NextEntryNumber reserves the next sequential entry number.
	NextEntryNumber(ctx context.Context) (string, error)

	// SaveEntry persists an entry and its lines in one atomic unit. A second
	// entry for the same (referenceType, referenceID) violates the store's
	// unique constraint and maps to apperrors.ErrDuplicate.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
