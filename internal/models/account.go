package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is the accounts table row.
// ParentAccountID is a nullable self-referencing FK.
type Account struct {
	AccountID       string          `db:"account_id"`
	TempleID        string          `db:"temple_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	SubType         string          `db:"sub_type"`
	ParentAccountID sql.NullString  `db:"parent_account_id"`
	OpeningDebit    decimal.Decimal `db:"opening_debit"`
	OpeningCredit   decimal.Decimal `db:"opening_credit"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}

// AccountMapping is the account_mappings table row.
type AccountMapping struct {
	MappingID   string `db:"mapping_id"`
	TempleID    string `db:"temple_id"`
	Purpose     string `db:"purpose"`
	AccountCode string `db:"account_code"`
	AuditFields
}
