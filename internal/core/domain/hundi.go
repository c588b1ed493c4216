package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HundiBox is a physical donation box placed in the temple.
type HundiBox struct {
	BoxID    string `json:"boxID"`
	TempleID string `json:"templeID"`
	Code     string `json:"code"`
	Location string `json:"location"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// HundiOpening is one counted opening of a hundi box. The counted total must
// equal the sum of the denomination breakdown.
type HundiOpening struct {
	OpeningID     string          `json:"openingID"`
	TempleID      string          `json:"templeID"`
	BoxID         string          `json:"boxID"`
	OpeningNumber string          `json:"openingNumber"` // HUNDI/<box-code>/YYYY/NNNN
	OpeningDate   time.Time       `json:"openingDate"`
	CountedAmount decimal.Decimal `json:"countedAmount"`
	// Denomination face value (e.g. "500") -> note/coin count. Stored as JSONB.
	Denominations  map[string]int `json:"denominations"`
	Witnesses      string         `json:"witnesses"`
	CountedBy      string         `json:"countedBy"`
	JournalEntryID *string        `json:"journalEntryID,omitempty"`
	AuditFields
}

// BankAccount links a physical bank account to its GL account.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	TempleID      string `json:"templeID"`
	AccountID     string `json:"accountID"` // GL account (BANK subtype)
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	AuditFields
}

// ReconStatus is the match state of an imported bank statement line.
type ReconStatus string

const (
	ReconUnmatched ReconStatus = "UNMATCHED"
	ReconMatched   ReconStatus = "MATCHED"
	ReconVerified  ReconStatus = "VERIFIED"
)

// BankStatementLine is one imported row of a bank statement CSV.
type BankStatementLine struct {
	StatementLineID string          `json:"statementLineID"`
	TempleID        string          `json:"templeID"`
	BankAccountID   string          `json:"bankAccountID"`
	TxnDate         time.Time       `json:"txnDate"`
	ValueDate       *time.Time      `json:"valueDate,omitempty"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	Reference       string          `json:"reference"`
	MatchedLineID   *string         `json:"matchedJournalLineID,omitempty"`
	Status          ReconStatus     `json:"status"`
	AuditFields
}

// ReconciliationRun summarises one reconciliation pass over a statement period.
type ReconciliationRun struct {
	RunID          string    `json:"runID"`
	TempleID       string    `json:"templeID"`
	RunNumber      string    `json:"runNumber"` // VER/YYYY/NNNN
	BankAccountID  string    `json:"bankAccountID"`
	PeriodFrom     time.Time `json:"periodFrom"`
	PeriodTo       time.Time `json:"periodTo"`
	MatchedCount   int       `json:"matchedCount"`
	UnmatchedCount int       `json:"unmatchedCount"`
	AuditFields
}
