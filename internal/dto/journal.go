package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one line of a manual journal entry.
// Exactly one of debit/credit must be positive.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest creates a manual journal entry. When Post is true
// the entry is validated and persisted directly as POSTED, otherwise as DRAFT.
type CreateJournalEntryRequest struct {
	EntryDate time.Time                  `json:"entryDate" binding:"required"`
	Narration string                     `json:"narration" binding:"required"`
	Post      bool                       `json:"post"`
	Lines     []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse is the public view of a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNo      int             `json:"lineNo"`
}

// JournalEntryResponse is the public view of a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryNumber       string                `json:"entryNumber"`
	EntryDate         time.Time             `json:"entryDate"`
	Narration         string                `json:"narration"`
	ReferenceType     string                `json:"referenceType"`
	ReferenceID       string                `json:"referenceID,omitempty"`
	TotalAmount       decimal.Decimal       `json:"totalAmount"`
	Status            string                `json:"status"`
	PostedBy          *string               `json:"postedBy,omitempty"`
	PostedAt          *time.Time            `json:"postedAt,omitempty"`
	CancelledBy       *string               `json:"cancelledBy,omitempty"`
	CancelledAt       *time.Time            `json:"cancelledAt,omitempty"`
	ReversalOfEntryID *string               `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
	Lines             []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		Narration:         e.Narration,
		ReferenceType:     string(e.ReferenceType),
		ReferenceID:       e.ReferenceID,
		TotalAmount:       e.TotalAmount,
		Status:            string(e.Status),
		PostedBy:          e.PostedBy,
		PostedAt:          e.PostedAt,
		CancelledBy:       e.CancelledBy,
		CancelledAt:       e.CancelledAt,
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:      l.LineID,
				AccountID:   l.AccountID,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Description: l.Description,
				LineNo:      l.LineNo,
			}
		}
	}
	return resp
}

// ListJournalEntriesParams carries list filters from the query string.
type ListJournalEntriesParams struct {
	Status        *string    `form:"status"`
	ReferenceType *string    `form:"referenceType"`
	FromDate      *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate        *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit         int        `form:"limit,default=20"`
	NextToken     *string    `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a paginated journal entry listing.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
