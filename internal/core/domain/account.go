package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountTypeAsset AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account subtypes used for report classification. SubType is free text on the
// row; these are the values the reports and posting rules understand.
const (
	SubTypeCash             = "CASH"
	SubTypeBank             = "BANK"
	SubTypeFixedAsset       = "FIXED_ASSET"
	SubTypeCurrentAsset     = "CURRENT_ASSET"
	SubTypeCorpusFund       = "CORPUS_FUND"
	SubTypeDesignatedFund   = "DESIGNATED_FUND"
	SubTypeCurrentLiability = "CURRENT_LIABILITY"
)

// Account represents one ledger account in a temple's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary Key (UUID)
	TempleID        string      `json:"templeID"`
	Code            string      `json:"code"` // 4-5 digit numeric code, unique per temple
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	SubType         string      `json:"subType"`
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK, account tree
	OpeningDebit    decimal.Decimal
	OpeningCredit   decimal.Decimal
	IsActive        bool `json:"isActive"`
	AuditFields
}

// NormalSideDebit reports whether the account's balance grows on the debit side.
func (a *Account) NormalSideDebit() bool {
	return a.AccountType == AccountTypeAsset || a.AccountType == Expense
}

// AccountMapping maps a posting purpose key (e.g. "donation.income.CORPUS")
// to an account code, letting each temple override the built-in defaults.
type AccountMapping struct {
	MappingID   string `json:"mappingID"`
	TempleID    string `json:"templeID"`
	Purpose     string `json:"purpose"`
	AccountCode string `json:"accountCode"`
	AuditFields
}
