package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams selects the as-of date for a trial balance.
type TrialBalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}

// TrialBalanceResponse is the full trial balance as of a date.
type TrialBalanceResponse struct {
	AsOf         time.Time                `json:"asOf"`
	Rows         []domain.TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal          `json:"totalDebits"`
	TotalCredits decimal.Decimal          `json:"totalCredits"`
	Balanced     bool                     `json:"balanced"`
}

// LedgerParams selects an account and date range for a ledger statement.
type LedgerParams struct {
	AccountID string    `form:"accountID" binding:"required"`
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate    time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
}

// LedgerResponse is an account statement over a period with a running balance.
type LedgerResponse struct {
	AccountID      string              `json:"accountID"`
	AccountCode    string              `json:"accountCode"`
	AccountName    string              `json:"accountName"`
	FromDate       time.Time           `json:"fromDate"`
	ToDate         time.Time           `json:"toDate"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Lines          []domain.LedgerLine `json:"lines"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}

// PeriodParams selects a date range for period reports.
type PeriodParams struct {
	FromDate time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate   time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
}

// ProfitLossResponse is the income and expenditure statement for a period.
type ProfitLossResponse struct {
	FromDate      time.Time        `json:"fromDate"`
	ToDate        time.Time        `json:"toDate"`
	IncomeGroups  []domain.PLGroup `json:"incomeGroups"`
	ExpenseGroups []domain.PLGroup `json:"expenseGroups"`
	TotalIncome   decimal.Decimal  `json:"totalIncome"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetSurplus    decimal.Decimal  `json:"netSurplus"`
}

// BalanceSheetParams selects the as-of date for a balance sheet.
type BalanceSheetParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}

// BalanceSheetSection is one classified section of the balance sheet.
type BalanceSheetSection struct {
	Name     string                 `json:"name"`
	Accounts []domain.AccountAmount `json:"accounts"`
	Total    decimal.Decimal        `json:"total"`
}

// BalanceSheetResponse is the balance sheet as of a date. The period surplus
// is folded into the funds side so both sides agree.
type BalanceSheetResponse struct {
	AsOf               time.Time           `json:"asOf"`
	FixedAssets        BalanceSheetSection `json:"fixedAssets"`
	CurrentAssets      BalanceSheetSection `json:"currentAssets"`
	CorpusFunds        BalanceSheetSection `json:"corpusFunds"`
	DesignatedFunds    BalanceSheetSection `json:"designatedFunds"`
	Liabilities        BalanceSheetSection `json:"liabilities"`
	AccumulatedSurplus decimal.Decimal     `json:"accumulatedSurplus"`
	TotalAssets        decimal.Decimal     `json:"totalAssets"`
	TotalFundsAndLiab  decimal.Decimal     `json:"totalFundsAndLiabilities"`
	Balanced           bool                `json:"balanced"`
}

// BookParams selects a date range (and optional account) for the day, cash
// and bank books.
type BookParams struct {
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate    time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
	AccountID *string   `form:"accountID"`
}

// BookResponse is the day, cash or bank book for a period.
type BookResponse struct {
	FromDate       time.Time         `json:"fromDate"`
	ToDate         time.Time         `json:"toDate"`
	OpeningBalance decimal.Decimal   `json:"openingBalance"`
	Lines          []domain.BookLine `json:"lines"`
	TotalReceipts  decimal.Decimal   `json:"totalReceipts"`
	TotalPayments  decimal.Decimal   `json:"totalPayments"`
	ClosingBalance decimal.Decimal   `json:"closingBalance"`
}
