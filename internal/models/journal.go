package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	TempleID      string          `db:"temple_id"`
	EntryNumber   string          `db:"entry_number"`
	EntryDate     time.Time       `db:"entry_date"`
	Narration     string          `db:"narration"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   sql.NullString  `db:"reference_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Status        string          `db:"status"`

	PostedBy    sql.NullString `db:"posted_by"`
	PostedAt    sql.NullTime   `db:"posted_at"`
	CancelledBy sql.NullString `db:"cancelled_by"`
	CancelledAt sql.NullTime   `db:"cancelled_at"`

	ReversalOfEntryID sql.NullString `db:"reversal_of_entry_id"`
	ReversedByEntryID sql.NullString `db:"reversed_by_entry_id"`
	AuditFields
}

// JournalLine is the journal_lines table row.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	LineNo      int             `db:"line_no"`
}
