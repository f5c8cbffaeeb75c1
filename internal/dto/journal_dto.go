package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest defines one debit/credit line of a manual journal entry.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the structure for a manually authored entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines one line of a journal entry response.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the structure for API responses containing a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	EntryNumber    string                `json:"entryNumber"`
	EntryDate      time.Time             `json:"entryDate"`
	Description    string                `json:"description"`
	ReferenceType  *string               `json:"referenceType,omitempty"`
	ReferenceID    *string               `json:"referenceID,omitempty"`
	Status         string                `json:"status"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// PostTransactionResponse wraps the entry posted for a till transaction,
// reporting whether it already existed.
type PostTransactionResponse struct {
	Entry         JournalEntryResponse `json:"entry"`
	AlreadyExists bool                 `json:"alreadyExists"`
}

// BackfillResult reports the outcome of a batch journal back-fill run.
type BackfillResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// ToJournalEntryResponse converts a domain.JournalEntry (with lines) to a DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      e.EntryDate,
		Description:    e.Description,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if e.ReferenceType != nil {
		rt := string(*e.ReferenceType)
		resp.ReferenceType = &rt
	}
	resp.ReferenceID = e.ReferenceID
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, line := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:      line.LineID,
				AccountID:   line.AccountID,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Description: line.Description,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries to DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
