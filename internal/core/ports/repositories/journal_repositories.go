package repositories

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// ListEntriesFilter narrows a journal entry listing.
type ListEntriesFilter struct {
	Status        *domain.EntryStatus
	ReferenceType *domain.ReferenceType
	FromDate      *time.Time
	ToDate        *time.Time
}

// JournalRepositoryFacade defines persistence operations for journal entries and lines.
type JournalRepositoryFacade interface {
	// SaveEntry inserts the entry header and its lines in one database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	FindEntryByID(ctx context.Context, templeID, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntries(ctx context.Context, templeID string, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// MarkPosted transitions an entry to POSTED, stamping posted_by/posted_at.
	MarkPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error

	// SaveReversal atomically inserts the reversing entry with its lines,
	// marks the original CANCELLED and links the two entries.
	SaveReversal(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalLine, cancelledBy string, cancelledAt time.Time) error
}
