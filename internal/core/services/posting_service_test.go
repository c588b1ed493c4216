package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockJournalRepo  *MockJournalRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.PostingSvcFacade
	actor            domain.Actor
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewPostingService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockSequenceRepo)

	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: uuid.NewString(),
		Role:     domain.RoleAccountant,
	}
}

// expectDefaultResolve wires the no-mapping path: FindMapping misses and the
// purpose falls back to its built-in code.
func (suite *PostingServiceTestSuite) expectDefaultResolve(ctx context.Context, purpose, code string, accountType domain.AccountType) *domain.Account {
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TempleID:    suite.actor.TempleID,
		Code:        code,
		Name:        "Account " + code,
		AccountType: accountType,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindMapping", ctx, suite.actor.TempleID, purpose).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.actor.TempleID, code).Return(account, nil).Once()
	return account
}

func (suite *PostingServiceTestSuite) TestPostDonation_CashGeneral() {
	ctx := context.Background()
	cash := suite.expectDefaultResolve(ctx, "cash", "1101", domain.AccountTypeAsset)
	income := suite.expectDefaultResolve(ctx, "donation.income.GENERAL", "4101", domain.Income)

	donation := &domain.Donation{
		DonationID:    uuid.NewString(),
		TempleID:      suite.actor.TempleID,
		ReceiptNumber: "DON/2025/0042",
		DonationDate:  time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		Category:      domain.DonationGeneral,
		PaymentMode:   domain.PaymentCash,
		Amount:        decimal.NewFromInt(500),
	}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.PostDonation(ctx, suite.actor, donation)

	suite.Require().NoError(err)
	suite.Equal("JE/2025/0001", entry.EntryNumber)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.Equal(domain.RefDonation, entry.ReferenceType)
	suite.Equal(donation.DonationID, entry.ReferenceID)
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(500)))

	suite.Require().Len(entry.Lines, 2)
	suite.Equal(cash.AccountID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal(income.AccountID, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(500)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostDonation_BankMode() {
	ctx := context.Background()
	suite.expectDefaultResolve(ctx, "bank", "1201", domain.AccountTypeAsset)
	suite.expectDefaultResolve(ctx, "donation.income.CORPUS", "4104", domain.Income)

	donation := &domain.Donation{
		DonationID:    uuid.NewString(),
		ReceiptNumber: "DON/2025/0043",
		DonationDate:  time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		Category:      domain.DonationCorpus,
		PaymentMode:   domain.PaymentUPI,
		Amount:        decimal.NewFromInt(11000),
	}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(2), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostDonation(ctx, suite.actor, donation)

	suite.Require().NoError(err)
	suite.Equal("JE/2025/0002", entry.EntryNumber)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestResolveAccount_MappingOverride() {
	ctx := context.Background()
	mapping := &domain.AccountMapping{
		MappingID:   uuid.NewString(),
		TempleID:    suite.actor.TempleID,
		Purpose:     "cash",
		AccountCode: "1109",
	}
	override := &domain.Account{
		AccountID:   uuid.NewString(),
		TempleID:    suite.actor.TempleID,
		Code:        "1109",
		Name:        "Counter Cash",
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindMapping", ctx, suite.actor.TempleID, "cash").Return(mapping, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.actor.TempleID, "1109").Return(override, nil).Once()

	account, err := suite.service.ResolveAccount(ctx, suite.actor.TempleID, "cash")

	suite.Require().NoError(err)
	suite.Equal("1109", account.Code)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestResolveAccount_UnknownPurpose() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindMapping", ctx, suite.actor.TempleID, "no.such.purpose").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveAccount(ctx, suite.actor.TempleID, "no.such.purpose")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "no account mapped for purpose")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestResolveAccount_InactiveAccount() {
	ctx := context.Background()
	inactive := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1101",
		AccountType: domain.AccountTypeAsset,
		IsActive:    false,
	}
	suite.mockAccountRepo.On("FindMapping", ctx, suite.actor.TempleID, "cash").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.actor.TempleID, "1101").Return(inactive, nil).Once()

	_, err := suite.service.ResolveAccount(ctx, suite.actor.TempleID, "cash")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
}

func (suite *PostingServiceTestSuite) TestPostGoodsReceipt_OnCredit() {
	ctx := context.Background()
	stock := suite.expectDefaultResolve(ctx, "inventory.stock", "1301", domain.AccountTypeAsset)
	payable := suite.expectDefaultResolve(ctx, "inventory.vendor_payable", "2201", domain.Liability)

	grn := &domain.GoodsReceipt{
		GRNID:       uuid.NewString(),
		GRNNumber:   "GRN/2025/0005",
		ReceiptDate: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		OnCredit:    true,
		TotalAmount: decimal.NewFromInt(7500),
	}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(9), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostGoodsReceipt(ctx, suite.actor, grn)

	suite.Require().NoError(err)
	suite.Equal(domain.RefInventory, entry.ReferenceType)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(stock.AccountID, entry.Lines[0].AccountID)
	suite.Equal(payable.AccountID, entry.Lines[1].AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostGoodsIssue_MultiCategory() {
	ctx := context.Background()
	pooja := suite.expectDefaultResolve(ctx, "inventory.expense.POOJA_MATERIAL", "5201", domain.Expense)
	provisions := suite.expectDefaultResolve(ctx, "inventory.expense.PROVISIONS", "5202", domain.Expense)
	stock := suite.expectDefaultResolve(ctx, "inventory.stock", "1301", domain.AccountTypeAsset)

	issue := &domain.GoodsIssue{
		GINID:     uuid.NewString(),
		GINNumber: "GIN/2025/0011",
		IssueDate: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		Purpose:   "Daily pooja",
	}
	byCategory := map[domain.ItemCategory]decimal.Decimal{
		domain.ItemPoojaMaterial: decimal.NewFromInt(300),
		domain.ItemProvisions:    decimal.NewFromInt(200),
	}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(12), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostGoodsIssue(ctx, suite.actor, issue, byCategory)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 3)
	suite.Equal(pooja.AccountID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(300)))
	suite.Equal(provisions.AccountID, entry.Lines[1].AccountID)
	suite.Equal(stock.AccountID, entry.Lines[2].AccountID)
	suite.True(entry.Lines[2].Credit.Equal(decimal.NewFromInt(500)))
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func (suite *PostingServiceTestSuite) TestPostPayrollAccrual() {
	ctx := context.Background()
	expense := suite.expectDefaultResolve(ctx, "payroll.salary_expense", "5101", domain.Expense)
	payable := suite.expectDefaultResolve(ctx, "payroll.salary_payable", "2101", domain.Liability)

	accrualDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(20), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostPayrollAccrual(ctx, suite.actor, "2025-06", decimal.NewFromInt(45000), accrualDate)

	suite.Require().NoError(err)
	suite.Equal(domain.RefPayroll, entry.ReferenceType)
	suite.Equal("2025-06", entry.ReferenceID)
	suite.Equal(fmt.Sprintf("Salary accrual for %s", "2025-06"), entry.Narration)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(expense.AccountID, entry.Lines[0].AccountID)
	suite.Equal(payable.AccountID, entry.Lines[1].AccountID)
}

// --- Run Test Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
