package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank accounts, statement
// lines and reconciliation runs.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankAccountColumns = `bank_account_id, temple_id, account_id, bank_name, account_number, ifsc, created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (domain.BankAccount, error) {
	var a domain.BankAccount
	err := row.Scan(
		&a.BankAccountID,
		&a.TempleID,
		&a.AccountID,
		&a.BankName,
		&a.AccountNumber,
		&a.IFSC,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// SaveBankAccount inserts a new bank account link.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, acc domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		acc.BankAccountID,
		acc.TempleID,
		acc.AccountID,
		acc.BankName,
		acc.AccountNumber,
		acc.IFSC,
		acc.CreatedAt,
		acc.CreatedBy,
		acc.LastUpdatedAt,
		acc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: bank account %s already registered", apperrors.ErrDuplicate, acc.AccountNumber)
		}
		return fmt.Errorf("failed to save bank account %s: %w", acc.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves one bank account by ID within a temple.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, templeID, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE temple_id = $1 AND bank_account_id = $2;`

	a, err := scanBankAccount(r.Pool.QueryRow(ctx, query, templeID, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account by ID %s: %w", bankAccountID, err)
	}
	return &a, nil
}

// ListBankAccounts retrieves all bank accounts of a temple.
func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, templeID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE temple_id = $1 ORDER BY bank_name, account_number;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

const statementLineColumns = `statement_line_id, temple_id, bank_account_id, txn_date, value_date, description, debit, credit, balance, reference, matched_line_id, status, created_at, created_by, last_updated_at, last_updated_by`

const insertStatementLineQuery = `
	INSERT INTO bank_statement_lines (` + statementLineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (bank_account_id, txn_date, debit, credit, reference) DO NOTHING;
`

func scanStatementLine(row pgx.Row) (domain.BankStatementLine, error) {
	var l domain.BankStatementLine
	var status string
	err := row.Scan(
		&l.StatementLineID,
		&l.TempleID,
		&l.BankAccountID,
		&l.TxnDate,
		&l.ValueDate,
		&l.Description,
		&l.Debit,
		&l.Credit,
		&l.Balance,
		&l.Reference,
		&l.MatchedLineID,
		&status,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	l.Status = domain.ReconStatus(status)
	return l, err
}

// InsertStatementLines bulk-inserts imported rows in one transaction. Rows that
// collide on (bank_account_id, txn_date, debit, credit, reference) are skipped.
func (r *PgxBankRepository) InsertStatementLines(ctx context.Context, lines []domain.BankStatementLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(insertStatementLineQuery,
			l.StatementLineID,
			l.TempleID,
			l.BankAccountID,
			l.TxnDate,
			l.ValueDate,
			l.Description,
			l.Debit,
			l.Credit,
			l.Balance,
			l.Reference,
			l.MatchedLineID,
			string(l.Status),
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)

	inserted := 0
	for range lines {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("failed to insert statement line: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close statement line batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindStatementLineByID retrieves a single imported statement line.
func (r *PgxBankRepository) FindStatementLineByID(ctx context.Context, templeID, statementLineID string) (*domain.BankStatementLine, error) {
	query := `SELECT ` + statementLineColumns + ` FROM bank_statement_lines WHERE temple_id = $1 AND statement_line_id = $2;`
	line, err := scanStatementLine(r.Pool.QueryRow(ctx, query, templeID, statementLineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: statement line with ID %s", apperrors.ErrNotFound, statementLineID)
		}
		return nil, fmt.Errorf("failed to find statement line %s: %w", statementLineID, err)
	}
	return &line, nil
}

// ListStatementLines retrieves statement lines for a bank account with optional
// status and date filters.
func (r *PgxBankRepository) ListStatementLines(ctx context.Context, templeID, bankAccountID string, status *domain.ReconStatus, from, to *time.Time) ([]domain.BankStatementLine, error) {
	query := `SELECT ` + statementLineColumns + ` FROM bank_statement_lines WHERE temple_id = $1 AND bank_account_id = $2`
	args := []interface{}{templeID, bankAccountID}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += ` AND txn_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND txn_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY txn_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list statement lines for bank account %s: %w", bankAccountID, err)
	}
	defer rows.Close()

	var lines []domain.BankStatementLine
	for rows.Next() {
		l, err := scanStatementLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement line rows: %w", err)
	}
	return lines, nil
}

// UpdateStatementMatch sets or clears a statement line's matched journal line.
func (r *PgxBankRepository) UpdateStatementMatch(ctx context.Context, statementLineID string, matchedLineID *string, status domain.ReconStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bank_statement_lines
		SET matched_line_id = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE statement_line_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, matchedLineID, string(status), updatedAt, updatedBy, statementLineID)
	if err != nil {
		return fmt.Errorf("failed to update statement match %s: %w", statementLineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMatchCandidates returns posted journal lines on the GL account with the
// given amount on the right side, dated within the window, that no statement
// line has claimed yet.
func (r *PgxBankRepository) FindMatchCandidates(ctx context.Context, templeID, accountID string, amount decimal.Decimal, isDebit bool, around time.Time, window time.Duration) ([]portsrepo.MatchCandidate, error) {
	sideCond := `jl.debit = $3`
	if !isDebit {
		sideCond = `jl.credit = $3`
	}

	query := `
		SELECT jl.line_id, je.entry_id, je.entry_number, je.entry_date, jl.debit, jl.credit, je.narration
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE je.temple_id = $1
		  AND jl.account_id = $2
		  AND ` + sideCond + `
		  AND je.status = 'POSTED'
		  AND je.entry_date BETWEEN $4 AND $5
		  AND NOT EXISTS (
		      SELECT 1 FROM bank_statement_lines bsl WHERE bsl.matched_line_id = jl.line_id
		  )
		ORDER BY je.entry_date;
	`
	rows, err := r.Pool.Query(ctx, query, templeID, accountID, amount, around.Add(-window), around.Add(window))
	if err != nil {
		return nil, fmt.Errorf("failed to query match candidates for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var candidates []portsrepo.MatchCandidate
	for rows.Next() {
		var c portsrepo.MatchCandidate
		if err := rows.Scan(&c.LineID, &c.EntryID, &c.EntryNumber, &c.EntryDate, &c.Debit, &c.Credit, &c.Narration); err != nil {
			return nil, fmt.Errorf("failed to scan match candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match candidate rows: %w", err)
	}
	return candidates, nil
}

const reconRunColumns = `run_id, temple_id, run_number, bank_account_id, period_from, period_to, matched_count, unmatched_count, created_at, created_by, last_updated_at, last_updated_by`

// SaveReconciliationRun inserts a reconciliation run summary.
func (r *PgxBankRepository) SaveReconciliationRun(ctx context.Context, run domain.ReconciliationRun) error {
	query := `
		INSERT INTO reconciliation_runs (` + reconRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		run.RunID,
		run.TempleID,
		run.RunNumber,
		run.BankAccountID,
		run.PeriodFrom,
		run.PeriodTo,
		run.MatchedCount,
		run.UnmatchedCount,
		run.CreatedAt,
		run.CreatedBy,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: run number %s already exists", apperrors.ErrDuplicate, run.RunNumber)
		}
		return fmt.Errorf("failed to save reconciliation run %s: %w", run.RunID, err)
	}
	return nil
}

// ListReconciliationRuns retrieves runs for a bank account, newest first.
func (r *PgxBankRepository) ListReconciliationRuns(ctx context.Context, templeID, bankAccountID string) ([]domain.ReconciliationRun, error) {
	query := `SELECT ` + reconRunColumns + ` FROM reconciliation_runs WHERE temple_id = $1 AND bank_account_id = $2 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, templeID, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliation runs for bank account %s: %w", bankAccountID, err)
	}
	defer rows.Close()

	var runs []domain.ReconciliationRun
	for rows.Next() {
		var run domain.ReconciliationRun
		err := rows.Scan(
			&run.RunID,
			&run.TempleID,
			&run.RunNumber,
			&run.BankAccountID,
			&run.PeriodFrom,
			&run.PeriodTo,
			&run.MatchedCount,
			&run.UnmatchedCount,
			&run.CreatedAt,
			&run.CreatedBy,
			&run.LastUpdatedAt,
			&run.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation run rows: %w", err)
	}
	return runs, nil
}
