package services

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, actor domain.Actor, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new journal entry, as DRAFT or
	// directly POSTED. Accountant or above.
	CreateEntry(ctx context.Context, actor domain.Actor, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// PostEntry moves a DRAFT entry to POSTED.
	PostEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)

	// CancelEntry cancels a POSTED entry by creating a linked reversal entry
	// with debit and credit sides swapped. Admin only.
	CancelEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)
}

// DocumentNumberSvc defines sequential document number generation
type DocumentNumberSvc interface {
	// NextDocumentNumber returns the next number in the per-temple, per-year
	// sequence for the given document key, formatted as PREFIX/YYYY/NNNN.
	NextDocumentNumber(ctx context.Context, templeID string, docKey string, prefix string, date time.Time) (string, error)
}

// JournalCalculatorSvc defines calculation operations related to journals
type JournalCalculatorSvc interface {
	// CalculateAccountBalance calculates the current balance of an account
	// from its opening balance and all posted lines.
	CalculateAccountBalance(ctx context.Context, actor domain.Actor, accountID string) (decimal.Decimal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	DocumentNumberSvc
	JournalCalculatorSvc
}
