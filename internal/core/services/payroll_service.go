package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/export"
)

const employeeDocKey = "EMP"

type payrollService struct {
	BaseService
	payrollRepo  portsrepo.PayrollRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
	poster       portssvc.PostingSvcFacade
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(
	payrollRepo portsrepo.PayrollRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	poster portssvc.PostingSvcFacade,
) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo:  payrollRepo,
		sequenceRepo: sequenceRepo,
		poster:       poster,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// validMonth checks the YYYY-MM payroll month format.
func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// monthEnd returns the last day of a YYYY-MM month, used as the accrual date.
func monthEnd(month string) time.Time {
	t, _ := time.Parse("2006-01", month)
	return t.AddDate(0, 1, -1)
}

func (s *payrollService) CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !req.BasicSalary.IsPositive() {
		return nil, fmt.Errorf("%w: basic salary must be positive", apperrors.ErrValidation)
	}
	if req.HRA.IsNegative() || req.OtherAllowances.IsNegative() {
		return nil, fmt.Errorf("%w: allowances cannot be negative", apperrors.ErrValidation)
	}

	seq, err := s.sequenceRepo.NextValue(ctx, actor.TempleID, employeeDocKey, req.JoiningDate.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate employee code")
		return nil, err
	}

	now := time.Now().UTC()
	emp := domain.Employee{
		EmployeeID:      uuid.NewString(),
		TempleID:        actor.TempleID,
		EmployeeCode:    fmt.Sprintf("%s/%d/%04d", employeeDocKey, req.JoiningDate.Year(), seq),
		Name:            strings.TrimSpace(req.Name),
		Designation:     req.Designation,
		Department:      req.Department,
		BasicSalary:     req.BasicSalary,
		HRA:             req.HRA,
		OtherAllowances: req.OtherAllowances,
		BankName:        req.BankName,
		BankAccountNo:   req.BankAccountNo,
		IFSC:            strings.ToUpper(req.IFSC),
		JoiningDate:     req.JoiningDate,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.payrollRepo.SaveEmployee(ctx, emp); err != nil {
		s.LogError(ctx, err, "Failed to save employee")
		return nil, err
	}
	s.LogInfo(ctx, "Employee created", "employee_id", emp.EmployeeID, "employee_code", emp.EmployeeCode)
	return &emp, nil
}

func (s *payrollService) UpdateEmployee(ctx context.Context, actor domain.Actor, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	emp, err := s.payrollRepo.FindEmployeeByID(ctx, actor.TempleID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.BasicSalary != nil {
		if !req.BasicSalary.IsPositive() {
			return nil, fmt.Errorf("%w: basic salary must be positive", apperrors.ErrValidation)
		}
		emp.BasicSalary = *req.BasicSalary
	}
	if req.HRA != nil {
		if req.HRA.IsNegative() {
			return nil, fmt.Errorf("%w: allowances cannot be negative", apperrors.ErrValidation)
		}
		emp.HRA = *req.HRA
	}
	if req.OtherAllowances != nil {
		if req.OtherAllowances.IsNegative() {
			return nil, fmt.Errorf("%w: allowances cannot be negative", apperrors.ErrValidation)
		}
		emp.OtherAllowances = *req.OtherAllowances
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.LastUpdatedAt = time.Now().UTC()
	emp.LastUpdatedBy = actor.UserID

	if err := s.payrollRepo.UpdateEmployee(ctx, *emp); err != nil {
		s.LogError(ctx, err, "Failed to update employee", "employee_id", employeeID)
		return nil, err
	}
	return emp, nil
}

func (s *payrollService) ListEmployees(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Employee, error) {
	return s.payrollRepo.ListEmployees(ctx, actor.TempleID, activeOnly)
}

func (s *payrollService) GeneratePayroll(ctx context.Context, actor domain.Actor, month string) ([]domain.PayrollEntry, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !validMonth(month) {
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", apperrors.ErrValidation)
	}

	exists, err := s.payrollRepo.PayrollExistsForMonth(ctx, actor.TempleID, month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: payroll for %s has already been generated", apperrors.ErrValidation, month)
	}

	employees, err := s.payrollRepo.ListEmployees(ctx, actor.TempleID, true)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: no active employees to generate payroll for", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entries := make([]domain.PayrollEntry, 0, len(employees))
	for _, emp := range employees {
		allowances := emp.HRA.Add(emp.OtherAllowances)
		entries = append(entries, domain.PayrollEntry{
			PayrollID:  uuid.NewString(),
			TempleID:   actor.TempleID,
			EmployeeID: emp.EmployeeID,
			Month:      month,
			Basic:      emp.BasicSalary,
			Allowances: allowances,
			Deductions: decimal.Zero,
			NetPay:     emp.BasicSalary.Add(allowances),
			Status:     domain.PayrollPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		})
	}

	if err := s.payrollRepo.SavePayrollEntries(ctx, entries); err != nil {
		s.LogError(ctx, err, "Failed to save payroll entries", "month", month)
		return nil, err
	}
	s.LogInfo(ctx, "Payroll generated", "month", month, "employees", len(entries))
	return entries, nil
}

func (s *payrollService) ProcessPayroll(ctx context.Context, actor domain.Actor, month string) ([]domain.PayrollEntry, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entries, err := s.payrollRepo.ListPayrollEntries(ctx, actor.TempleID, month)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no payroll entries for %s", apperrors.ErrNotFound, month)
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.Status != domain.PayrollPending {
			return nil, fmt.Errorf("%w: payroll for %s is already %s", apperrors.ErrValidation, month, e.Status)
		}
		total = total.Add(e.NetPay)
	}

	entry, err := s.poster.PostPayrollAccrual(ctx, actor, month, total, monthEnd(month))
	if err != nil {
		s.LogError(ctx, err, "Failed to post payroll accrual", "month", month)
		return nil, err
	}

	now := time.Now().UTC()
	for i := range entries {
		entries[i].Status = domain.PayrollProcessed
		entries[i].JournalEntryID = &entry.EntryID
		entries[i].LastUpdatedAt = now
		entries[i].LastUpdatedBy = actor.UserID
		if err := s.payrollRepo.UpdatePayrollEntry(ctx, entries[i]); err != nil {
			s.LogError(ctx, err, "Failed to update payroll entry", "payroll_id", entries[i].PayrollID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Payroll processed", "month", month, "total_net_pay", total.StringFixed(2))
	return entries, nil
}

func (s *payrollService) PayPayroll(ctx context.Context, actor domain.Actor, month string, mode domain.PaymentMode) ([]domain.PayrollEntry, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entries, err := s.payrollRepo.ListPayrollEntries(ctx, actor.TempleID, month)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no payroll entries for %s", apperrors.ErrNotFound, month)
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.Status != domain.PayrollProcessed {
			return nil, fmt.Errorf("%w: payroll for %s is %s, only PROCESSED payroll can be paid", apperrors.ErrValidation, month, e.Status)
		}
		total = total.Add(e.NetPay)
	}

	entry, err := s.poster.PostPayrollPayment(ctx, actor, month, total, mode, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to post payroll payment", "month", month)
		return nil, err
	}

	now := time.Now().UTC()
	for i := range entries {
		entries[i].Status = domain.PayrollPaid
		entries[i].PaymentJournalEntryID = &entry.EntryID
		entries[i].LastUpdatedAt = now
		entries[i].LastUpdatedBy = actor.UserID
		if err := s.payrollRepo.UpdatePayrollEntry(ctx, entries[i]); err != nil {
			s.LogError(ctx, err, "Failed to update payroll entry", "payroll_id", entries[i].PayrollID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Payroll paid", "month", month, "total_net_pay", total.StringFixed(2))
	return entries, nil
}

func (s *payrollService) ListPayroll(ctx context.Context, actor domain.Actor, month string) ([]domain.PayrollEntry, error) {
	return s.payrollRepo.ListPayrollEntries(ctx, actor.TempleID, month)
}

func (s *payrollService) ExportPayrollExcel(ctx context.Context, actor domain.Actor, month string) ([]byte, error) {
	entries, err := s.payrollRepo.ListPayrollEntries(ctx, actor.TempleID, month)
	if err != nil {
		return nil, err
	}

	employees, err := s.payrollRepo.ListEmployees(ctx, actor.TempleID, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.EmployeeID] = emp
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		emp := byID[e.EmployeeID]
		rows = append(rows, []interface{}{
			emp.EmployeeCode,
			emp.Name,
			emp.Designation,
			e.Basic.StringFixed(2),
			e.Allowances.StringFixed(2),
			e.Deductions.StringFixed(2),
			e.NetPay.StringFixed(2),
			string(e.Status),
		})
	}

	headers := []string{"Employee Code", "Name", "Designation", "Basic", "Allowances", "Deductions", "Net Pay", "Status"}
	return export.WriteSheet(fmt.Sprintf("Payroll %s", month), headers, rows)
}
