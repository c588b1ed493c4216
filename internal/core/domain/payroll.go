package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is an HR record for a temple staff member on payroll.
type Employee struct {
	EmployeeID      string          `json:"employeeID"`
	TempleID        string          `json:"templeID"`
	EmployeeCode    string          `json:"employeeCode"` // EMP/YYYY/NNNN
	Name            string          `json:"name"`
	Designation     string          `json:"designation"`
	Department      string          `json:"department"`
	BasicSalary     decimal.Decimal `json:"basicSalary"`
	HRA             decimal.Decimal `json:"hra"`
	OtherAllowances decimal.Decimal `json:"otherAllowances"`
	BankName        string          `json:"bankName"`
	BankAccountNo   string          `json:"bankAccountNo"`
	IFSC            string          `json:"ifsc"`
	JoiningDate     time.Time       `json:"joiningDate"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// PayrollStatus is the payroll entry lifecycle.
type PayrollStatus string

const (
	PayrollPending   PayrollStatus = "PENDING"
	PayrollProcessed PayrollStatus = "PROCESSED"
	PayrollPaid      PayrollStatus = "PAID"
)

// PayrollEntry is one employee's salary for one month (YYYY-MM).
type PayrollEntry struct {
	PayrollID  string          `json:"payrollID"`
	TempleID   string          `json:"templeID"`
	EmployeeID string          `json:"employeeID"`
	Month      string          `json:"month"` // YYYY-MM
	Basic      decimal.Decimal `json:"basic"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"netPay"`
	Status     PayrollStatus   `json:"status"`

	JournalEntryID        *string `json:"journalEntryID,omitempty"`        // Accrual entry
	PaymentJournalEntryID *string `json:"paymentJournalEntryID,omitempty"` // Payment entry
	AuditFields
}
