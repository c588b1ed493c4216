package services

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// ReportingSvcFacade defines operations for generating financial reports
type ReportingSvcFacade interface {
	// TrialBalance generates a trial balance as of a date. Each account's
	// opening balance plus posted activity is netted to one side.
	TrialBalance(ctx context.Context, actor domain.Actor, asOf time.Time) (*dto.TrialBalanceResponse, error)

	// Ledger generates an account statement with a running balance over a period.
	Ledger(ctx context.Context, actor domain.Actor, accountID string, from, to time.Time) (*dto.LedgerResponse, error)

	// ProfitAndLoss generates the income and expenditure statement for a period,
	// grouped by account code ranges.
	ProfitAndLoss(ctx context.Context, actor domain.Actor, from, to time.Time) (*dto.ProfitLossResponse, error)

	// BalanceSheet generates a classified balance sheet as of a date, folding
	// the accumulated surplus into the funds side.
	BalanceSheet(ctx context.Context, actor domain.Actor, asOf time.Time) (*dto.BalanceSheetResponse, error)

	// DayBook lists all cash and bank movements for a period.
	DayBook(ctx context.Context, actor domain.Actor, from, to time.Time) (*dto.BookResponse, error)

	// CashBook lists cash account movements with a running balance.
	CashBook(ctx context.Context, actor domain.Actor, from, to time.Time) (*dto.BookResponse, error)

	// BankBook lists bank account movements, optionally for one account.
	BankBook(ctx context.Context, actor domain.Actor, from, to time.Time, accountID *string) (*dto.BookResponse, error)
}
