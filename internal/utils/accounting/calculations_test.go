package accounting

import (
	"testing"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debitLine(amount int64) domain.JournalLine {
	return domain.JournalLine{AccountID: "acc-dr", Debit: decimal.NewFromInt(amount)}
}

func creditLine(amount int64) domain.JournalLine {
	return domain.JournalLine{AccountID: "acc-cr", Credit: decimal.NewFromInt(amount)}
}

func TestValidateEntryBalance_Valid(t *testing.T) {
	err := ValidateEntryBalance([]domain.JournalLine{debitLine(100), creditLine(100)})
	assert.NoError(t, err)

	// Multi-line split across both sides.
	err = ValidateEntryBalance([]domain.JournalLine{
		debitLine(60),
		debitLine(40),
		creditLine(100),
	})
	assert.NoError(t, err)
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	err := ValidateEntryBalance([]domain.JournalLine{debitLine(100), creditLine(90)})
	assert.Error(t, err)
	assert.Equal(t, "Debits (100) must equal credits (90)", err.Error())
}

func TestValidateEntryBalance_WithinTolerance(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromFloat(100.00)},
		{AccountID: "b", Credit: decimal.NewFromFloat(99.995)},
	}
	assert.NoError(t, ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_TooFewLines(t *testing.T) {
	err := ValidateEntryBalance([]domain.JournalLine{debitLine(100)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least two lines")
}

func TestValidateEntryBalance_BothSidesSet(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
		creditLine(100),
	}
	err := ValidateEntryBalance(lines)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of debit or credit")
}

func TestValidateEntryBalance_NeitherSideSet(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a"},
		creditLine(100),
	}
	err := ValidateEntryBalance(lines)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of debit or credit")
}

func TestValidateEntryBalance_NegativeAmount(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(-5)},
		creditLine(100),
	}
	err := ValidateEntryBalance(lines)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestSumSides(t *testing.T) {
	debits, credits := SumSides([]domain.JournalLine{
		debitLine(60),
		debitLine(40),
		creditLine(100),
	})
	assert.True(t, debits.Equal(decimal.NewFromInt(100)), "debits should total 100, got %s", debits)
	assert.True(t, credits.Equal(decimal.NewFromInt(100)), "credits should total 100, got %s", credits)
}

func TestSignedAmount(t *testing.T) {
	amount, err := SignedAmount(debitLine(100), domain.AccountTypeAsset)
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(100)))

	amount, err = SignedAmount(creditLine(100), domain.AccountTypeAsset)
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(-100)))

	amount, err = SignedAmount(creditLine(100), domain.Income)
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(100)))

	amount, err = SignedAmount(debitLine(100), domain.Liability)
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(-100)))

	_, err = SignedAmount(debitLine(100), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}
