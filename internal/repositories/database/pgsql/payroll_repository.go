package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for employees and payroll entries.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

const employeeColumns = `employee_id, temple_id, employee_code, name, designation, department, basic_salary, hra, other_allowances, bank_name, bank_account_no, ifsc, joining_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.EmployeeID,
		&e.TempleID,
		&e.EmployeeCode,
		&e.Name,
		&e.Designation,
		&e.Department,
		&e.BasicSalary,
		&e.HRA,
		&e.OtherAllowances,
		&e.BankName,
		&e.BankAccountNo,
		&e.IFSC,
		&e.JoiningDate,
		&e.IsActive,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// SaveEmployee inserts a new employee record.
func (r *PgxPayrollRepository) SaveEmployee(ctx context.Context, emp domain.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		emp.EmployeeID,
		emp.TempleID,
		emp.EmployeeCode,
		emp.Name,
		emp.Designation,
		emp.Department,
		emp.BasicSalary,
		emp.HRA,
		emp.OtherAllowances,
		emp.BankName,
		emp.BankAccountNo,
		emp.IFSC,
		emp.JoiningDate,
		emp.IsActive,
		emp.CreatedAt,
		emp.CreatedBy,
		emp.LastUpdatedAt,
		emp.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: employee code %s already exists", apperrors.ErrDuplicate, emp.EmployeeCode)
		}
		return fmt.Errorf("failed to save employee %s: %w", emp.EmployeeID, err)
	}
	return nil
}

// FindEmployeeByID retrieves one employee by ID within a temple.
func (r *PgxPayrollRepository) FindEmployeeByID(ctx context.Context, templeID, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE temple_id = $1 AND employee_id = $2;`

	e, err := scanEmployee(r.Pool.QueryRow(ctx, query, templeID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}
	return &e, nil
}

// ListEmployees retrieves the temple's employees, optionally active ones only.
func (r *PgxPayrollRepository) ListEmployees(ctx context.Context, templeID string, activeOnly bool) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE temple_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY employee_code;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	return employees, nil
}

// UpdateEmployee updates an employee's details and active flag.
func (r *PgxPayrollRepository) UpdateEmployee(ctx context.Context, emp domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, designation = $2, department = $3, basic_salary = $4, hra = $5, other_allowances = $6, bank_name = $7, bank_account_no = $8, ifsc = $9, is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE temple_id = $13 AND employee_id = $14;
	`
	tag, err := r.Pool.Exec(ctx, query,
		emp.Name,
		emp.Designation,
		emp.Department,
		emp.BasicSalary,
		emp.HRA,
		emp.OtherAllowances,
		emp.BankName,
		emp.BankAccountNo,
		emp.IFSC,
		emp.IsActive,
		emp.LastUpdatedAt,
		emp.LastUpdatedBy,
		emp.TempleID,
		emp.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", emp.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const payrollColumns = `payroll_id, temple_id, employee_id, month, basic, allowances, deductions, net_pay, status, journal_entry_id, payment_journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const insertPayrollQuery = `
	INSERT INTO payroll_entries (` + payrollColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

func scanPayrollEntry(row pgx.Row) (domain.PayrollEntry, error) {
	var p domain.PayrollEntry
	var status string
	err := row.Scan(
		&p.PayrollID,
		&p.TempleID,
		&p.EmployeeID,
		&p.Month,
		&p.Basic,
		&p.Allowances,
		&p.Deductions,
		&p.NetPay,
		&status,
		&p.JournalEntryID,
		&p.PaymentJournalEntryID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	p.Status = domain.PayrollStatus(status)
	return p, err
}

// SavePayrollEntries inserts the whole month's payroll in one transaction.
func (r *PgxPayrollRepository) SavePayrollEntries(ctx context.Context, entries []domain.PayrollEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, p := range entries {
		batch.Queue(insertPayrollQuery,
			p.PayrollID,
			p.TempleID,
			p.EmployeeID,
			p.Month,
			p.Basic,
			p.Allowances,
			p.Deductions,
			p.NetPay,
			string(p.Status),
			p.JournalEntryID,
			p.PaymentJournalEntryID,
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: payroll already exists for month %s", apperrors.ErrDuplicate, entries[0].Month)
			}
			return fmt.Errorf("failed to insert payroll entry: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close payroll batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindPayrollEntryByID retrieves one payroll entry by ID within a temple.
func (r *PgxPayrollRepository) FindPayrollEntryByID(ctx context.Context, templeID, payrollID string) (*domain.PayrollEntry, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_entries WHERE temple_id = $1 AND payroll_id = $2;`

	p, err := scanPayrollEntry(r.Pool.QueryRow(ctx, query, templeID, payrollID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payroll entry by ID %s: %w", payrollID, err)
	}
	return &p, nil
}

// ListPayrollEntries retrieves a month's payroll for a temple.
func (r *PgxPayrollRepository) ListPayrollEntries(ctx context.Context, templeID, month string) ([]domain.PayrollEntry, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_entries WHERE temple_id = $1 AND month = $2 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, templeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries for month %s: %w", month, err)
	}
	defer rows.Close()

	var entries []domain.PayrollEntry
	for rows.Next() {
		p, err := scanPayrollEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry row: %w", err)
		}
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll entry rows: %w", err)
	}
	return entries, nil
}

// UpdatePayrollEntry updates a payroll entry's status and posting references.
func (r *PgxPayrollRepository) UpdatePayrollEntry(ctx context.Context, entry domain.PayrollEntry) error {
	query := `
		UPDATE payroll_entries
		SET status = $1, journal_entry_id = $2, payment_journal_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE temple_id = $6 AND payroll_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(entry.Status),
		entry.JournalEntryID,
		entry.PaymentJournalEntryID,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.TempleID,
		entry.PayrollID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll entry %s: %w", entry.PayrollID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// PayrollExistsForMonth reports whether any payroll entry exists for the month.
func (r *PgxPayrollRepository) PayrollExistsForMonth(ctx context.Context, templeID, month string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payroll_entries WHERE temple_id = $1 AND month = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, templeID, month).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll existence for month %s: %w", month, err)
	}
	return exists, nil
}
