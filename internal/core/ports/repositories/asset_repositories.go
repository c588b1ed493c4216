package repositories

import (
	"context"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// AssetRepositoryFacade defines persistence for fixed assets and CWIP projects.
type AssetRepositoryFacade interface {
	SaveAsset(ctx context.Context, asset domain.Asset) error
	FindAssetByID(ctx context.Context, templeID, assetID string) (*domain.Asset, error)
	ListAssets(ctx context.Context, templeID string, status *domain.AssetStatus, limit int, nextToken *string) ([]domain.Asset, *string, error)
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	SaveCWIPProject(ctx context.Context, project domain.CWIPProject) error
	FindCWIPProjectByID(ctx context.Context, templeID, projectID string) (*domain.CWIPProject, error)
	ListCWIPProjects(ctx context.Context, templeID string) ([]domain.CWIPProject, error)
	UpdateCWIPProject(ctx context.Context, project domain.CWIPProject) error

	SaveCWIPExpenditure(ctx context.Context, exp domain.CWIPExpenditure) error
	ListCWIPExpenditures(ctx context.Context, templeID, projectID string) ([]domain.CWIPExpenditure, error)
	// SetExpenditureJournalEntryID back-links the expenditure to its posted accounting entry.
	SetExpenditureJournalEntryID(ctx context.Context, expenditureID, entryID string) error
}

// PayrollRepositoryFacade defines persistence for employees and payroll entries.
type PayrollRepositoryFacade interface {
	SaveEmployee(ctx context.Context, emp domain.Employee) error
	FindEmployeeByID(ctx context.Context, templeID, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, templeID string, activeOnly bool) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, emp domain.Employee) error

	SavePayrollEntries(ctx context.Context, entries []domain.PayrollEntry) error
	FindPayrollEntryByID(ctx context.Context, templeID, payrollID string) (*domain.PayrollEntry, error)
	ListPayrollEntries(ctx context.Context, templeID, month string) ([]domain.PayrollEntry, error)
	UpdatePayrollEntry(ctx context.Context, entry domain.PayrollEntry) error
	PayrollExistsForMonth(ctx context.Context, templeID, month string) (bool, error)
}

// HundiRepositoryFacade defines persistence for hundi boxes and openings.
type HundiRepositoryFacade interface {
	SaveBox(ctx context.Context, box domain.HundiBox) error
	FindBoxByID(ctx context.Context, templeID, boxID string) (*domain.HundiBox, error)
	ListBoxes(ctx context.Context, templeID string, activeOnly bool) ([]domain.HundiBox, error)
	UpdateBox(ctx context.Context, box domain.HundiBox) error

	SaveOpening(ctx context.Context, opening domain.HundiOpening) error
	// SetOpeningJournalEntryID back-links the opening to its posted accounting entry.
	SetOpeningJournalEntryID(ctx context.Context, openingID, entryID string) error
	FindOpeningByID(ctx context.Context, templeID, openingID string) (*domain.HundiOpening, error)
	ListOpenings(ctx context.Context, templeID string, boxID *string, limit int, nextToken *string) ([]domain.HundiOpening, *string, error)
}
