package services

import (
	"context"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// AssetRegisterSvc defines operations on the fixed asset register
type AssetRegisterSvc interface {
	// RegisterAsset records a purchased asset and posts the acquisition.
	RegisterAsset(ctx context.Context, actor domain.Actor, req dto.RegisterAssetRequest) (*domain.Asset, error)

	// DisposeAsset disposes an ACTIVE asset and posts the proceeds. Admin only.
	DisposeAsset(ctx context.Context, actor domain.Actor, assetID string, req dto.DisposalRequest) (*domain.Asset, error)

	// GetAssetByID retrieves an asset by ID.
	GetAssetByID(ctx context.Context, actor domain.Actor, assetID string) (*domain.Asset, error)

	// ListAssets retrieves the asset register, optionally by status.
	ListAssets(ctx context.Context, actor domain.Actor, status *string) ([]domain.Asset, error)
}

// CWIPSvc defines capital work-in-progress operations
type CWIPSvc interface {
	// CreateProject opens a CWIP project.
	CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateCWIPProjectRequest) (*domain.CWIPProject, error)

	// AddExpenditure books a spend against an IN_PROGRESS project and posts it.
	AddExpenditure(ctx context.Context, actor domain.Actor, projectID string, req dto.AddCWIPExpenditureRequest) (*domain.CWIPExpenditure, error)

	// Capitalize converts a project's accumulated expenditure into a fixed
	// asset. Projects with zero expenditure cannot be capitalized.
	Capitalize(ctx context.Context, actor domain.Actor, projectID string, req dto.CapitalizeCWIPRequest) (*domain.Asset, error)

	// GetProjectByID retrieves a CWIP project by ID.
	GetProjectByID(ctx context.Context, actor domain.Actor, projectID string) (*domain.CWIPProject, error)

	// ListProjects retrieves the CWIP projects of a temple.
	ListProjects(ctx context.Context, actor domain.Actor) ([]domain.CWIPProject, error)
}

// AssetSvcFacade combines the asset register and CWIP interfaces
type AssetSvcFacade interface {
	AssetRegisterSvc
	CWIPSvc
}

// PayrollSvcFacade defines employee and payroll operations.
type PayrollSvcFacade interface {
	// CreateEmployee registers a payroll employee.
	CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error)

	// UpdateEmployee updates an employee's details.
	UpdateEmployee(ctx context.Context, actor domain.Actor, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error)

	// ListEmployees retrieves the employees of a temple.
	ListEmployees(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Employee, error)

	// GeneratePayroll creates PENDING payroll entries for all active employees
	// for the month. A month can only be generated once.
	GeneratePayroll(ctx context.Context, actor domain.Actor, month string) ([]domain.PayrollEntry, error)

	// ProcessPayroll moves a month's entries to PROCESSED and posts the
	// salary accrual. Accountant or above.
	ProcessPayroll(ctx context.Context, actor domain.Actor, month string) ([]domain.PayrollEntry, error)

	// PayPayroll moves a month's PROCESSED entries to PAID and posts the
	// salary payment.
	PayPayroll(ctx context.Context, actor domain.Actor, month string, mode domain.PaymentMode) ([]domain.PayrollEntry, error)

	// ListPayroll retrieves the payroll entries for a month.
	ListPayroll(ctx context.Context, actor domain.Actor, month string) ([]domain.PayrollEntry, error)

	// ExportPayrollExcel renders a month's payroll register as an xlsx workbook.
	ExportPayrollExcel(ctx context.Context, actor domain.Actor, month string) ([]byte, error)
}
