package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest links a physical bank account to a GL account.
type CreateBankAccountRequest struct {
	AccountID     string `json:"accountID" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	IFSC          string `json:"ifsc"`
}

// BankAccountResponse is the public view of a bank account.
type BankAccountResponse struct {
	BankAccountID string `json:"bankAccountID"`
	AccountID     string `json:"accountID"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
}

// ToBankAccountResponse converts a domain.BankAccount to its response DTO.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: b.BankAccountID,
		AccountID:     b.AccountID,
		BankName:      b.BankName,
		AccountNumber: b.AccountNumber,
		IFSC:          b.IFSC,
	}
}

// StatementImportResponse summarises one statement CSV import.
type StatementImportResponse struct {
	TotalRows     int `json:"totalRows"`
	Imported      int `json:"imported"`
	Duplicates    int `json:"duplicates"`
	SkippedRows   int `json:"skippedRows"`
	AutoMatched   int `json:"autoMatched"`
	UnmatchedLeft int `json:"unmatchedLeft"`
}

// StatementLineResponse is the public view of an imported statement line.
type StatementLineResponse struct {
	StatementLineID string          `json:"statementLineID"`
	BankAccountID   string          `json:"bankAccountID"`
	TxnDate         time.Time       `json:"txnDate"`
	ValueDate       *time.Time      `json:"valueDate,omitempty"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	Reference       string          `json:"reference"`
	MatchedLineID   *string         `json:"matchedJournalLineID,omitempty"`
	Status          string          `json:"status"`
}

// ToStatementLineResponse converts a domain.BankStatementLine to its response DTO.
func ToStatementLineResponse(l *domain.BankStatementLine) StatementLineResponse {
	return StatementLineResponse{
		StatementLineID: l.StatementLineID,
		BankAccountID:   l.BankAccountID,
		TxnDate:         l.TxnDate,
		ValueDate:       l.ValueDate,
		Description:     l.Description,
		Debit:           l.Debit,
		Credit:          l.Credit,
		Balance:         l.Balance,
		Reference:       l.Reference,
		MatchedLineID:   l.MatchedLineID,
		Status:          string(l.Status),
	}
}

// ListStatementLinesParams filters statement lines.
type ListStatementLinesParams struct {
	BankAccountID string     `form:"bankAccountID" binding:"required"`
	Status        *string    `form:"status" binding:"omitempty,oneof=UNMATCHED MATCHED VERIFIED"`
	FromDate      *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate        *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit         int        `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken     *string    `form:"nextToken"`
}

// ListStatementLinesResponse is a page of statement lines.
type ListStatementLinesResponse struct {
	Lines     []StatementLineResponse `json:"lines"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// MatchCandidateResponse is an unreconciled journal line offered as a match
// for a statement line.
type MatchCandidateResponse struct {
	JournalLineID string          `json:"journalLineID"`
	EntryID       string          `json:"entryID"`
	EntryNumber   string          `json:"entryNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	Narration     string          `json:"narration"`
	Amount        decimal.Decimal `json:"amount"`
	IsDebit       bool            `json:"isDebit"`
}

// MatchStatementLineRequest manually matches a statement line to a journal line.
type MatchStatementLineRequest struct {
	JournalLineID string `json:"journalLineID" binding:"required"`
}

// CreateReconciliationRunRequest verifies all matched lines in a period.
type CreateReconciliationRunRequest struct {
	BankAccountID string    `json:"bankAccountID" binding:"required"`
	PeriodFrom    time.Time `json:"periodFrom" binding:"required"`
	PeriodTo      time.Time `json:"periodTo" binding:"required"`
}

// ReconciliationRunResponse is the public view of a reconciliation run.
type ReconciliationRunResponse struct {
	RunID          string    `json:"runID"`
	RunNumber      string    `json:"runNumber"`
	BankAccountID  string    `json:"bankAccountID"`
	PeriodFrom     time.Time `json:"periodFrom"`
	PeriodTo       time.Time `json:"periodTo"`
	MatchedCount   int       `json:"matchedCount"`
	UnmatchedCount int       `json:"unmatchedCount"`
}

// ToReconciliationRunResponse converts a domain.ReconciliationRun to its response DTO.
func ToReconciliationRunResponse(r *domain.ReconciliationRun) ReconciliationRunResponse {
	return ReconciliationRunResponse{
		RunID:          r.RunID,
		RunNumber:      r.RunNumber,
		BankAccountID:  r.BankAccountID,
		PeriodFrom:     r.PeriodFrom,
		PeriodTo:       r.PeriodTo,
		MatchedCount:   r.MatchedCount,
		UnmatchedCount: r.UnmatchedCount,
	}
}
