package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// Permitted transitions: DRAFT -> POSTED -> CANCELLED.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// ReferenceType links a journal entry back to the domain record that produced it.
type ReferenceType string

const (
	RefDonation    ReferenceType = "DONATION"
	RefSeva        ReferenceType = "SEVA"
	RefSponsorship ReferenceType = "SPONSORSHIP"
	RefInventory   ReferenceType = "INVENTORY"
	RefPayroll     ReferenceType = "PAYROLL"
	RefAsset       ReferenceType = "ASSET"
	RefHundi       ReferenceType = "HUNDI"
	RefBank        ReferenceType = "BANK"
	RefManual      ReferenceType = "MANUAL"
)

// JournalEntry is a balanced double-entry transaction header.
type JournalEntry struct {
	EntryID       string          `json:"entryID"` // Primary Key (UUID)
	TempleID      string          `json:"templeID"`
	EntryNumber   string          `json:"entryNumber"` // JE/YYYY/NNNN, sequential per temple+year
	EntryDate     time.Time       `json:"entryDate"`
	Narration     string          `json:"narration"`
	ReferenceType ReferenceType   `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // Sum of debit lines
	Status        EntryStatus     `json:"status"`

	PostedBy    *string    `json:"postedBy,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	CancelledBy *string    `json:"cancelledBy,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	// Cancellation never deletes lines: the original stays CANCELLED and a
	// reversing POSTED entry with swapped sides is linked through these.
	ReversalOfEntryID *string `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`

	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is one debit-or-credit row within a journal entry.
// Exactly one of Debit/Credit is non-zero. Lines are immutable once posted.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNo      int             `json:"lineNo"`
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns whichever side of the line is populated.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
