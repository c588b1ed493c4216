package services

import (
	"context"
	"io"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// HundiSvcFacade defines hundi box and counted-opening operations.
type HundiSvcFacade interface {
	// CreateBox registers a hundi box.
	CreateBox(ctx context.Context, actor domain.Actor, req dto.CreateHundiBoxRequest) (*domain.HundiBox, error)

	// ListBoxes retrieves the hundi boxes of a temple.
	ListBoxes(ctx context.Context, actor domain.Actor) ([]domain.HundiBox, error)

	// RecordOpening records a witnessed hundi count. The counted amount must
	// equal the denomination breakdown total; the collection is then posted.
	RecordOpening(ctx context.Context, actor domain.Actor, req dto.RecordHundiOpeningRequest) (*domain.HundiOpening, error)

	// GetOpeningByID retrieves an opening by ID.
	GetOpeningByID(ctx context.Context, actor domain.Actor, openingID string) (*domain.HundiOpening, error)

	// ListOpenings retrieves a paginated list of openings for a box.
	ListOpenings(ctx context.Context, actor domain.Actor, boxID string, limit int, nextToken *string) (*dto.ListHundiOpeningsResponse, error)
}

// BankSvcFacade defines bank account and reconciliation operations.
type BankSvcFacade interface {
	// CreateBankAccount links a physical bank account to its GL account.
	CreateBankAccount(ctx context.Context, actor domain.Actor, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)

	// ListBankAccounts retrieves the bank accounts of a temple.
	ListBankAccounts(ctx context.Context, actor domain.Actor) ([]domain.BankAccount, error)

	// ImportStatementCSV parses a bank statement CSV, de-duplicates against
	// previously imported lines and auto-matches amounts against unreconciled
	// journal lines within a few days of the transaction date.
	ImportStatementCSV(ctx context.Context, actor domain.Actor, bankAccountID string, r io.Reader) (*dto.StatementImportResponse, error)

	// ListStatementLines retrieves imported statement lines with filters.
	ListStatementLines(ctx context.Context, actor domain.Actor, params dto.ListStatementLinesParams) (*dto.ListStatementLinesResponse, error)

	// SuggestMatches returns unreconciled journal lines that could match a
	// statement line.
	SuggestMatches(ctx context.Context, actor domain.Actor, statementLineID string) ([]dto.MatchCandidateResponse, error)

	// MatchLine manually matches a statement line to a journal line.
	MatchLine(ctx context.Context, actor domain.Actor, statementLineID string, journalLineID string) (*domain.BankStatementLine, error)

	// UnmatchLine clears a match and returns the line to UNMATCHED.
	UnmatchLine(ctx context.Context, actor domain.Actor, statementLineID string) (*domain.BankStatementLine, error)

	// CreateReconciliationRun verifies all MATCHED lines in the period and
	// records a numbered reconciliation run.
	CreateReconciliationRun(ctx context.Context, actor domain.Actor, bankAccountID string, from, to time.Time) (*domain.ReconciliationRun, error)
}
