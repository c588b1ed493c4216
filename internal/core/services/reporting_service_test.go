package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
	actor             domain.Actor
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)

	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: uuid.NewString(),
		Role:     domain.RoleAccountant,
	}
}

func activity(code, name string, accountType domain.AccountType, subType string, debit, credit int64) domain.AccountActivity {
	return domain.AccountActivity{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        name,
		AccountType: accountType,
		SubType:     subType,
		TotalDebit:  decimal.NewFromInt(debit),
		TotalCredit: decimal.NewFromInt(credit),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	activities := []domain.AccountActivity{
		activity("1101", "Cash in Hand", domain.AccountTypeAsset, domain.SubTypeCash, 500, 0),
		activity("4101", "General Donations", domain.Income, "", 0, 500),
		activity("1301", "Stock in Hand", domain.AccountTypeAsset, "", 0, 0), // dormant, skipped
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.actor.TempleID, asOf).Return(activities, nil).Once()

	resp, err := suite.service.TrialBalance(ctx, suite.actor, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Rows, 2)
	suite.Equal("1101", resp.Rows[0].Code)
	suite.True(resp.Rows[0].DebitBalance.Equal(decimal.NewFromInt(500)))
	suite.Equal("4101", resp.Rows[1].Code)
	suite.True(resp.Rows[1].CreditBalance.Equal(decimal.NewFromInt(500)))
	suite.True(resp.TotalDebits.Equal(resp.TotalCredits))
	suite.True(resp.Balanced)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_Groups() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	activities := []domain.AccountActivity{
		activity("4101", "General Donations", domain.Income, "", 0, 1000),
		activity("4201", "Archana Income", domain.Income, "", 0, 400),
		activity("5101", "Salaries", domain.Expense, "", 600, 0),
		activity("1101", "Cash in Hand", domain.AccountTypeAsset, domain.SubTypeCash, 800, 0),
	}

	suite.mockReportingRepo.On("GetAccountActivityRange", ctx, suite.actor.TempleID, from, to).Return(activities, nil).Once()

	resp, err := suite.service.ProfitAndLoss(ctx, suite.actor, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(resp.IncomeGroups, 2)
	suite.Equal("Donation Income", resp.IncomeGroups[0].Name)
	suite.True(resp.IncomeGroups[0].Amount.Equal(decimal.NewFromInt(1000)))
	suite.Equal("Seva Income", resp.IncomeGroups[1].Name)
	suite.True(resp.IncomeGroups[1].Amount.Equal(decimal.NewFromInt(400)))

	suite.Require().Len(resp.ExpenseGroups, 1)
	suite.Equal("Staff Costs", resp.ExpenseGroups[0].Name)

	suite.True(resp.TotalIncome.Equal(decimal.NewFromInt(1400)))
	suite.True(resp.TotalExpenses.Equal(decimal.NewFromInt(600)))
	suite.True(resp.NetSurplus.Equal(decimal.NewFromInt(800)))
}

func (suite *ReportingServiceTestSuite) TestLedger_RunningBalance() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TempleID:    suite.actor.TempleID,
		Code:        "1101",
		Name:        "Cash in Hand",
		AccountType: domain.AccountTypeAsset,
		SubType:     domain.SubTypeCash,
		IsActive:    true,
	}
	opening := &domain.AccountActivity{
		AccountID:  account.AccountID,
		TotalDebit: decimal.NewFromInt(100),
	}
	lines := []domain.LedgerLine{
		{EntryID: uuid.NewString(), EntryNumber: "JE/2025/0010", Debit: decimal.NewFromInt(50)},
		{EntryID: uuid.NewString(), EntryNumber: "JE/2025/0011", Credit: decimal.NewFromInt(30)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.actor.TempleID, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountOpening", ctx, suite.actor.TempleID, account.AccountID, from).Return(opening, nil).Once()
	suite.mockReportingRepo.On("GetLedgerLines", ctx, suite.actor.TempleID, account.AccountID, from, to).Return(lines, nil).Once()

	resp, err := suite.service.Ledger(ctx, suite.actor, account.AccountID, from, to)

	suite.Require().NoError(err)
	suite.True(resp.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(resp.Lines, 2)
	suite.True(resp.Lines[0].RunningBalance.Equal(decimal.NewFromInt(150)))
	suite.True(resp.Lines[1].RunningBalance.Equal(decimal.NewFromInt(120)))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(120)))
}

func (suite *ReportingServiceTestSuite) TestLedger_CreditNormalAccount() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4101",
		Name:        "General Donations",
		AccountType: domain.Income,
		IsActive:    true,
	}
	opening := &domain.AccountActivity{
		AccountID:   account.AccountID,
		TotalCredit: decimal.NewFromInt(200),
	}
	lines := []domain.LedgerLine{
		{EntryID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.actor.TempleID, account.AccountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountOpening", ctx, suite.actor.TempleID, account.AccountID, from).Return(opening, nil).Once()
	suite.mockReportingRepo.On("GetLedgerLines", ctx, suite.actor.TempleID, account.AccountID, from, to).Return(lines, nil).Once()

	resp, err := suite.service.Ledger(ctx, suite.actor, account.AccountID, from, to)

	suite.Require().NoError(err)
	// Income accounts carry their balance on the credit side.
	suite.True(resp.OpeningBalance.Equal(decimal.NewFromInt(200)))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_FoldsSurplus() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	activities := []domain.AccountActivity{
		activity("1502", "Temple Building", domain.AccountTypeAsset, domain.SubTypeFixedAsset, 5000, 0),
		activity("1101", "Cash in Hand", domain.AccountTypeAsset, domain.SubTypeCash, 1500, 0),
		activity("2201", "Vendor Payable", domain.Liability, domain.SubTypeCurrentLiability, 0, 1000),
		activity("3101", "Corpus Fund", domain.Equity, domain.SubTypeCorpusFund, 0, 5000),
		activity("4101", "General Donations", domain.Income, "", 0, 2000),
		activity("5101", "Salaries", domain.Expense, "", 500, 0),
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.actor.TempleID, asOf).Return(activities, nil).Once()

	resp, err := suite.service.BalanceSheet(ctx, suite.actor, asOf)

	suite.Require().NoError(err)
	suite.True(resp.FixedAssets.Total.Equal(decimal.NewFromInt(5000)))
	suite.True(resp.CurrentAssets.Total.Equal(decimal.NewFromInt(1500)))
	suite.True(resp.Liabilities.Total.Equal(decimal.NewFromInt(1000)))
	suite.True(resp.CorpusFunds.Total.Equal(decimal.NewFromInt(5000)))
	suite.True(resp.AccumulatedSurplus.Equal(decimal.NewFromInt(1500)))
	suite.True(resp.TotalAssets.Equal(decimal.NewFromInt(6500)))
	suite.True(resp.TotalFundsAndLiab.Equal(decimal.NewFromInt(6500)))
	suite.True(resp.Balanced)
}

func (suite *ReportingServiceTestSuite) TestCashBook_RunningBalance() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	openingActivities := []domain.AccountActivity{
		activity("1101", "Cash in Hand", domain.AccountTypeAsset, domain.SubTypeCash, 250, 0),
		activity("1201", "Bank", domain.AccountTypeAsset, domain.SubTypeBank, 9999, 0), // not a cash subtype for this book
	}
	bookLines := []domain.BookLine{
		{EntryID: uuid.NewString(), EntryNumber: "JE/2025/0020", Receipt: decimal.NewFromInt(500)},
		{EntryID: uuid.NewString(), EntryNumber: "JE/2025/0021", Payment: decimal.NewFromInt(150)},
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.actor.TempleID, from.AddDate(0, 0, -1)).Return(openingActivities, nil).Once()
	suite.mockReportingRepo.On("GetBookLines", ctx, suite.actor.TempleID, []string{domain.SubTypeCash}, from, to).Return(bookLines, nil).Once()

	resp, err := suite.service.CashBook(ctx, suite.actor, from, to)

	suite.Require().NoError(err)
	suite.True(resp.OpeningBalance.Equal(decimal.NewFromInt(250)))
	suite.Require().Len(resp.Lines, 2)
	suite.True(resp.Lines[0].RunningBalance.Equal(decimal.NewFromInt(750)))
	suite.True(resp.Lines[1].RunningBalance.Equal(decimal.NewFromInt(600)))
	suite.True(resp.TotalReceipts.Equal(decimal.NewFromInt(500)))
	suite.True(resp.TotalPayments.Equal(decimal.NewFromInt(150)))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(600)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
