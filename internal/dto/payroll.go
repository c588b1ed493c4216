package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest registers a payroll employee.
type CreateEmployeeRequest struct {
	Name            string          `json:"name" binding:"required"`
	Designation     string          `json:"designation" binding:"required"`
	Department      string          `json:"department"`
	BasicSalary     decimal.Decimal `json:"basicSalary" binding:"required"`
	HRA             decimal.Decimal `json:"hra"`
	OtherAllowances decimal.Decimal `json:"otherAllowances"`
	BankName        string          `json:"bankName"`
	BankAccountNo   string          `json:"bankAccountNo"`
	IFSC            string          `json:"ifsc"`
	JoiningDate     time.Time       `json:"joiningDate" binding:"required"`
}

// UpdateEmployeeRequest applies partial updates to an employee.
type UpdateEmployeeRequest struct {
	Name            *string          `json:"name,omitempty"`
	Designation     *string          `json:"designation,omitempty"`
	Department      *string          `json:"department,omitempty"`
	BasicSalary     *decimal.Decimal `json:"basicSalary,omitempty"`
	HRA             *decimal.Decimal `json:"hra,omitempty"`
	OtherAllowances *decimal.Decimal `json:"otherAllowances,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

// EmployeeResponse is the public view of an employee.
type EmployeeResponse struct {
	EmployeeID      string          `json:"employeeID"`
	EmployeeCode    string          `json:"employeeCode"`
	Name            string          `json:"name"`
	Designation     string          `json:"designation"`
	Department      string          `json:"department"`
	BasicSalary     decimal.Decimal `json:"basicSalary"`
	HRA             decimal.Decimal `json:"hra"`
	OtherAllowances decimal.Decimal `json:"otherAllowances"`
	JoiningDate     time.Time       `json:"joiningDate"`
	IsActive        bool            `json:"isActive"`
}

// ToEmployeeResponse converts a domain.Employee to its response DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:      e.EmployeeID,
		EmployeeCode:    e.EmployeeCode,
		Name:            e.Name,
		Designation:     e.Designation,
		Department:      e.Department,
		BasicSalary:     e.BasicSalary,
		HRA:             e.HRA,
		OtherAllowances: e.OtherAllowances,
		JoiningDate:     e.JoiningDate,
		IsActive:        e.IsActive,
	}
}

// GeneratePayrollRequest generates pending payroll entries for a month
// from the active employees' salary components.
type GeneratePayrollRequest struct {
	Month string `json:"month" binding:"required,len=7"` // YYYY-MM
}

// PayrollEntryResponse is the public view of a payroll entry.
type PayrollEntryResponse struct {
	PayrollID        string          `json:"payrollID"`
	EmployeeID       string          `json:"employeeID"`
	Month            string          `json:"month"`
	Basic            decimal.Decimal `json:"basic"`
	Allowances       decimal.Decimal `json:"allowances"`
	Deductions       decimal.Decimal `json:"deductions"`
	NetPay           decimal.Decimal `json:"netPay"`
	Status           string          `json:"status"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	AccountingPosted bool            `json:"accountingPosted"`
}

// ToPayrollEntryResponse converts a domain.PayrollEntry to its response DTO.
func ToPayrollEntryResponse(p *domain.PayrollEntry) PayrollEntryResponse {
	return PayrollEntryResponse{
		PayrollID:        p.PayrollID,
		EmployeeID:       p.EmployeeID,
		Month:            p.Month,
		Basic:            p.Basic,
		Allowances:       p.Allowances,
		Deductions:       p.Deductions,
		NetPay:           p.NetPay,
		Status:           string(p.Status),
		JournalEntryID:   p.JournalEntryID,
		AccountingPosted: p.JournalEntryID != nil,
	}
}
