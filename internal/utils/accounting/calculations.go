package accounting

import (
	"fmt"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance absorbs rounding differences when comparing debit and
// credit totals. Totals within a paisa of each other are considered equal.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SumSides totals the debit and credit sides of a set of journal lines.
func SumSides(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// ValidateEntryBalance checks that a journal entry's lines form a valid
// double-entry transaction: at least two lines, each line on exactly one
// side with a positive amount, and both sides equal within tolerance.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	for i, l := range lines {
		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: amounts must not be negative", i+1)
		}
		if debitSet == creditSet {
			return fmt.Errorf("line %d: exactly one of debit or credit must be set", i+1)
		}
	}

	debits, credits := SumSides(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("Debits (%s) must equal credits (%s)", debits.String(), credits.String())
	}

	return nil
}

// SignedAmount applies the accounting sign convention to a line amount:
// debits grow ASSET/EXPENSE accounts, credits grow the rest.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	amount := line.Amount()
	isDebit := line.IsDebit()

	switch accountType {
	case domain.AccountTypeAsset, domain.Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			amount = amount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account ID %s", accountType, line.AccountID)
	}
	return amount, nil
}
