package repositories

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchCandidate is an unreconciled journal line considered for auto-matching
// against a bank statement line.
type MatchCandidate struct {
	LineID      string
	EntryID     string
	EntryNumber string
	EntryDate   time.Time
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Narration   string
}

// BankRepositoryFacade defines persistence for bank accounts, imported
// statement lines and reconciliation runs.
type BankRepositoryFacade interface {
	SaveBankAccount(ctx context.Context, acc domain.BankAccount) error
	FindBankAccountByID(ctx context.Context, templeID, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, templeID string) ([]domain.BankAccount, error)

	// InsertStatementLines bulk-inserts imported rows, skipping duplicates by
	// (bank account, txn date, debit, credit, reference). Returns the number
	// actually inserted.
	InsertStatementLines(ctx context.Context, lines []domain.BankStatementLine) (int, error)
	FindStatementLineByID(ctx context.Context, templeID, statementLineID string) (*domain.BankStatementLine, error)
	ListStatementLines(ctx context.Context, templeID, bankAccountID string, status *domain.ReconStatus, from, to *time.Time) ([]domain.BankStatementLine, error)
	UpdateStatementMatch(ctx context.Context, statementLineID string, matchedLineID *string, status domain.ReconStatus, updatedBy string, updatedAt time.Time) error

	// FindMatchCandidates returns posted, not-yet-matched journal lines on the
	// GL account with the given amount whose entry date falls within the window.
	FindMatchCandidates(ctx context.Context, templeID, accountID string, amount decimal.Decimal, isDebit bool, around time.Time, window time.Duration) ([]MatchCandidate, error)

	SaveReconciliationRun(ctx context.Context, run domain.ReconciliationRun) error
	ListReconciliationRuns(ctx context.Context, templeID, bankAccountID string) ([]domain.ReconciliationRun, error)
}

// ReportingRepositoryFacade aggregates journal lines for the report endpoints.
// Implementations count POSTED and CANCELLED entries: a cancelled entry is
// always offset by its posted reversal, so the pair nets to zero.
type ReportingRepositoryFacade interface {
	// GetAccountActivity sums posted debits/credits per active account up to asOf,
	// together with each account's opening balances.
	GetAccountActivity(ctx context.Context, templeID string, asOf time.Time) ([]domain.AccountActivity, error)
	// GetAccountActivityRange sums posted debits/credits per active account within
	// [from, to], without opening balances (used for P&L).
	GetAccountActivityRange(ctx context.Context, templeID string, from, to time.Time) ([]domain.AccountActivity, error)
	// GetAccountOpening returns a single account's opening columns plus posted
	// activity strictly before the given date.
	GetAccountOpening(ctx context.Context, templeID, accountID string, before time.Time) (*domain.AccountActivity, error)
	// GetLedgerLines lists posted lines for one account within [from, to] in
	// chronological order.
	GetLedgerLines(ctx context.Context, templeID, accountID string, from, to time.Time) ([]domain.LedgerLine, error)
	// GetBookLines lists posted lines touching accounts of the given subtypes
	// within [from, to], classified into receipts and payments.
	GetBookLines(ctx context.Context, templeID string, subTypes []string, from, to time.Time) ([]domain.BookLine, error)
}
