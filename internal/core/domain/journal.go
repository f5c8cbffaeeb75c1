package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalPosted   JournalStatus = "POSTED"
	JournalReversed JournalStatus = "REVERSED"
)

// ReferenceType identifies what kind of source record a journal entry was
// generated from. At most one entry exists per (ReferenceType, ReferenceID);
// the store enforces this with a unique constraint.
type ReferenceType string

const (
	RefTillTransaction ReferenceType = "till_transaction"
)

// JournalEntry is a dated set of debit/credit lines, optionally tied to a
// source till transaction. Manually authored entries balance to the cent;
// auto-generated FX entries balance structurally (one debit and one credit
// line per currency leg), not by cross-currency amount equality.
type JournalEntry struct {
	JournalEntryID string         `json:"journalEntryID"`
	EntryNumber    string         `json:"entryNumber"` // Unique, e.g. "JE-000042"
	EntryDate      time.Time      `json:"entryDate"`
	Description    string         `json:"description"`
	ReferenceType  *ReferenceType `json:"referenceType,omitempty"`
	ReferenceID    *string        `json:"referenceID,omitempty"`
	Status         JournalStatus  `json:"status"`
	Lines          []JournalEntryLine
	AuditFields
}

// JournalEntryLine is one debit-or-credit line posted to a ledger account.
// Exactly one of Debit and Credit is non-zero.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
	AuditFields
}
