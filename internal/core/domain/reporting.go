package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's netted balance in a trial balance.
// Exactly one of DebitBalance/CreditBalance is non-zero.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// AccountActivity is the raw per-account debit/credit aggregate the reporting
// repository returns; the service folds in opening balances and nets sides.
type AccountActivity struct {
	AccountID     string
	Code          string
	Name          string
	AccountType   AccountType
	SubType       string
	OpeningDebit  decimal.Decimal
	OpeningCredit decimal.Decimal
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
}

// NetBalance returns opening + debits - credits. Positive means a debit balance.
func (a AccountActivity) NetBalance() decimal.Decimal {
	return a.OpeningDebit.Sub(a.OpeningCredit).Add(a.TotalDebit).Sub(a.TotalCredit)
}

// LedgerLine is one journal line in an account ledger statement.
type LedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Narration      string          `json:"narration"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// PLGroup is a named account-code range in the profit and loss report.
type PLGroup struct {
	Name     string          `json:"name"`
	CodeFrom string          `json:"codeFrom"`
	CodeTo   string          `json:"codeTo"`
	Amount   decimal.Decimal `json:"amount"`
	Accounts []AccountAmount `json:"accounts"`
}

// AccountAmount is an account with a single report amount.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// BookLine is one row of the day/cash/bank book: a journal line touching a
// cash or bank account, classified as a receipt or a payment.
type BookLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	Narration      string          `json:"narration"`
	Receipt        decimal.Decimal `json:"receipt"` // Debit to cash/bank
	Payment        decimal.Decimal `json:"payment"` // Credit from cash/bank
	RunningBalance decimal.Decimal `json:"runningBalance"`
}
