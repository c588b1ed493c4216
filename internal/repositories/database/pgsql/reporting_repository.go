package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-only aggregation repository
// behind the report endpoints. Aggregates count POSTED entries plus CANCELLED
// ones: a CANCELLED entry always has a POSTED reversal, so the pair nets to
// zero while both stay visible on the ledger.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func scanAccountActivity(row pgx.Row) (domain.AccountActivity, error) {
	var a domain.AccountActivity
	var accountType string
	err := row.Scan(
		&a.AccountID,
		&a.Code,
		&a.Name,
		&accountType,
		&a.SubType,
		&a.OpeningDebit,
		&a.OpeningCredit,
		&a.TotalDebit,
		&a.TotalCredit,
	)
	a.AccountType = domain.AccountType(accountType)
	return a, err
}

// GetAccountActivity sums posted and cancelled debits and credits per active account up to
// and including asOf, carrying each account's opening balances.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, templeID string, asOf time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.sub_type,
		       a.opening_debit, a.opening_credit,
		       COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_lines l
			JOIN journal_entries je ON je.entry_id = l.entry_id
			WHERE je.temple_id = $1 AND je.status IN ('POSTED', 'CANCELLED') AND je.entry_date <= $2
		) jl ON jl.account_id = a.account_id
		WHERE a.temple_id = $1 AND a.is_active = TRUE
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.sub_type, a.opening_debit, a.opening_credit
		ORDER BY a.code;
	`
	return r.queryAccountActivity(ctx, query, templeID, asOf)
}

// GetAccountActivityRange sums posted and cancelled debits and credits per active account
// within [from, to]. Opening columns are zero here; period reports ignore them.
func (r *PgxReportingRepository) GetAccountActivityRange(ctx context.Context, templeID string, from, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.sub_type,
		       0::numeric, 0::numeric,
		       COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_lines l
			JOIN journal_entries je ON je.entry_id = l.entry_id
			WHERE je.temple_id = $1 AND je.status IN ('POSTED', 'CANCELLED') AND je.entry_date BETWEEN $2 AND $3
		) jl ON jl.account_id = a.account_id
		WHERE a.temple_id = $1 AND a.is_active = TRUE
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.sub_type
		ORDER BY a.code;
	`
	return r.queryAccountActivity(ctx, query, templeID, from, to)
}

func (r *PgxReportingRepository) queryAccountActivity(ctx context.Context, query string, args ...interface{}) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	var activities []domain.AccountActivity
	for rows.Next() {
		a, err := scanAccountActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return activities, nil
}

// GetAccountOpening returns one account's opening columns plus its posted and cancelled
// activity strictly before the given date.
func (r *PgxReportingRepository) GetAccountOpening(ctx context.Context, templeID, accountID string, before time.Time) (*domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.sub_type,
		       a.opening_debit, a.opening_credit,
		       COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_lines l
			JOIN journal_entries je ON je.entry_id = l.entry_id
			WHERE je.temple_id = $1 AND je.status IN ('POSTED', 'CANCELLED') AND je.entry_date < $3
		) jl ON jl.account_id = a.account_id
		WHERE a.temple_id = $1 AND a.account_id = $2
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.sub_type, a.opening_debit, a.opening_credit;
	`
	a, err := scanAccountActivity(r.Pool.QueryRow(ctx, query, templeID, accountID, before))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opening for account %s: %w", accountID, err)
	}
	return &a, nil
}

// GetLedgerLines lists the posted and cancelled lines of one account within [from, to] in
// chronological order. RunningBalance is left for the service to fill.
func (r *PgxReportingRepository) GetLedgerLines(ctx context.Context, templeID, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT je.entry_id, je.entry_number, je.entry_date, je.narration, jl.description, jl.debit, jl.credit
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE je.temple_id = $1
		  AND jl.account_id = $2
		  AND je.status IN ('POSTED', 'CANCELLED')
		  AND je.entry_date BETWEEN $3 AND $4
		ORDER BY je.entry_date, je.created_at, jl.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, templeID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(&l.EntryID, &l.EntryNumber, &l.EntryDate, &l.Narration, &l.Description, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger line rows: %w", err)
	}
	return lines, nil
}

// GetBookLines lists posted and cancelled lines touching accounts of the given subtypes
// within [from, to]. Debits to those accounts are receipts, credits payments.
func (r *PgxReportingRepository) GetBookLines(ctx context.Context, templeID string, subTypes []string, from, to time.Time) ([]domain.BookLine, error) {
	query := `
		SELECT je.entry_id, je.entry_number, je.entry_date, a.account_id, a.name, je.narration, jl.debit, jl.credit
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		JOIN accounts a ON a.account_id = jl.account_id
		WHERE je.temple_id = $1
		  AND a.sub_type = ANY($2)
		  AND je.status IN ('POSTED', 'CANCELLED')
		  AND je.entry_date BETWEEN $3 AND $4
		ORDER BY je.entry_date, je.created_at, jl.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, templeID, subTypes, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query book lines for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var lines []domain.BookLine
	for rows.Next() {
		var l domain.BookLine
		if err := rows.Scan(&l.EntryID, &l.EntryNumber, &l.EntryDate, &l.AccountID, &l.AccountName, &l.Narration, &l.Receipt, &l.Payment); err != nil {
			return nil, fmt.Errorf("failed to scan book line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book line rows: %w", err)
	}
	return lines, nil
}
