package services

import (
	"context"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetJournalEntries retrieves entries newest first.
	GetJournalEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error)

	// GetJournalEntryWithLines retrieves one entry with its lines populated.
	GetJournalEntryWithLines(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines posting operations.
type JournalWriterSvc interface {
	// CreateJournalEntry posts a manually authored entry; debit and credit
	// totals must balance within the cent tolerance.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// CreateJournalEntryFromTransaction posts the two-line entry for a
	// completed till transaction. Idempotent: a second call returns the
	// existing entry with alreadyExists true.
	CreateJournalEntryFromTransaction(ctx context.Context, transactionID string, userID string) (*domain.JournalEntry, bool, error)

	// GenerateAllJournalEntries back-fills entries for every completed
	// transaction lacking one. Safe to re-run; skips failures.
	GenerateAllJournalEntries(ctx context.Context, userID string) (*dto.BackfillResult, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
