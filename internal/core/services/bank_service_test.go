package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BankRepository ---
type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) SaveBankAccount(ctx context.Context, acc domain.BankAccount) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockBankRepository) FindBankAccountByID(ctx context.Context, templeID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, templeID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) ListBankAccounts(ctx context.Context, templeID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, templeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) InsertStatementLines(ctx context.Context, lines []domain.BankStatementLine) (int, error) {
	args := m.Called(ctx, lines)
	return args.Int(0), args.Error(1)
}

func (m *MockBankRepository) FindStatementLineByID(ctx context.Context, templeID, statementLineID string) (*domain.BankStatementLine, error) {
	args := m.Called(ctx, templeID, statementLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatementLine), args.Error(1)
}

func (m *MockBankRepository) ListStatementLines(ctx context.Context, templeID, bankAccountID string, status *domain.ReconStatus, from, to *time.Time) ([]domain.BankStatementLine, error) {
	args := m.Called(ctx, templeID, bankAccountID, status, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankStatementLine), args.Error(1)
}

func (m *MockBankRepository) UpdateStatementMatch(ctx context.Context, statementLineID string, matchedLineID *string, status domain.ReconStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, statementLineID, matchedLineID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBankRepository) FindMatchCandidates(ctx context.Context, templeID, accountID string, amount decimal.Decimal, isDebit bool, around time.Time, window time.Duration) ([]portsrepo.MatchCandidate, error) {
	args := m.Called(ctx, templeID, accountID, amount, isDebit, around, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.MatchCandidate), args.Error(1)
}

func (m *MockBankRepository) SaveReconciliationRun(ctx context.Context, run domain.ReconciliationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockBankRepository) ListReconciliationRuns(ctx context.Context, templeID, bankAccountID string) ([]domain.ReconciliationRun, error) {
	args := m.Called(ctx, templeID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationRun), args.Error(1)
}

// --- Test Suite Setup ---
type BankServiceTestSuite struct {
	suite.Suite
	mockBankRepo     *MockBankRepository
	mockAccountRepo  *MockAccountRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.BankSvcFacade
	actor            domain.Actor
	bankAccount      *domain.BankAccount
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewBankService(suite.mockBankRepo, suite.mockAccountRepo, suite.mockSequenceRepo)

	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: uuid.NewString(),
		Role:     domain.RoleAccountant,
	}
	suite.bankAccount = &domain.BankAccount{
		BankAccountID: uuid.NewString(),
		TempleID:      suite.actor.TempleID,
		AccountID:     uuid.NewString(),
		BankName:      "State Bank of India",
		AccountNumber: "1234567890",
		IFSC:          "SBIN0001234",
	}
}

// --- Test Cases ---

func (suite *BankServiceTestSuite) TestCreateBankAccount_NotBankSubType() {
	ctx := context.Background()
	glAccount := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1101",
		Name:        "Cash in Hand",
		AccountType: domain.AccountTypeAsset,
		SubType:     domain.SubTypeCash,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.actor.TempleID, glAccount.AccountID).Return(glAccount, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, suite.actor, dto.CreateBankAccountRequest{
		AccountID:     glAccount.AccountID,
		BankName:      "State Bank of India",
		AccountNumber: "1234567890",
		IFSC:          "SBIN0001234",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "is not a BANK account")
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveBankAccount", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestCreateBankAccount_Success() {
	ctx := context.Background()
	glAccount := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1201",
		Name:        "SBI Current Account",
		AccountType: domain.AccountTypeAsset,
		SubType:     domain.SubTypeBank,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.actor.TempleID, glAccount.AccountID).Return(glAccount, nil).Once()
	suite.mockBankRepo.On("SaveBankAccount", ctx, mock.MatchedBy(func(acc domain.BankAccount) bool {
		return acc.AccountID == glAccount.AccountID && acc.IFSC == "SBIN0001234"
	})).Return(nil).Once()

	acc, err := suite.service.CreateBankAccount(ctx, suite.actor, dto.CreateBankAccountRequest{
		AccountID:     glAccount.AccountID,
		BankName:      "State Bank of India",
		AccountNumber: "1234567890",
		IFSC:          "sbin0001234",
	})

	suite.Require().NoError(err)
	suite.Equal("SBIN0001234", acc.IFSC)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestImportStatementCSV() {
	ctx := context.Background()
	csvBody := strings.Join([]string{
		"Date,Value Date,Description,Debit,Credit,Balance,Reference",
		"2025-07-01,2025-07-01,NEFT FROM DEVOTEE,,5000,105000,UTR123",
		"not-a-date,,BAD ROW,,100,,",
		"2025-07-02,2025-07-02,ZERO AMOUNT ROW,,,105000,",
	}, "\n")

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.actor.TempleID, suite.bankAccount.BankAccountID).Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("InsertStatementLines", ctx, mock.MatchedBy(func(lines []domain.BankStatementLine) bool {
		return len(lines) == 1 &&
			lines[0].Credit.Equal(decimal.NewFromInt(5000)) &&
			lines[0].Reference == "UTR123" &&
			lines[0].Status == domain.ReconUnmatched
	})).Return(1, nil).Once()

	// Auto-match finds exactly one candidate for the imported line.
	unmatched := domain.ReconUnmatched
	imported := domain.BankStatementLine{
		StatementLineID: uuid.NewString(),
		TempleID:        suite.actor.TempleID,
		BankAccountID:   suite.bankAccount.BankAccountID,
		TxnDate:         time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Credit:          decimal.NewFromInt(5000),
		Status:          domain.ReconUnmatched,
	}
	candidate := portsrepo.MatchCandidate{
		LineID:      uuid.NewString(),
		EntryID:     uuid.NewString(),
		EntryNumber: "JE/2025/0031",
		EntryDate:   imported.TxnDate,
		Debit:       decimal.NewFromInt(5000),
	}
	suite.mockBankRepo.On("ListStatementLines", ctx, suite.actor.TempleID, suite.bankAccount.BankAccountID, &unmatched, (*time.Time)(nil), (*time.Time)(nil)).Return([]domain.BankStatementLine{imported}, nil).Once()
	suite.mockBankRepo.On("FindMatchCandidates", ctx, suite.actor.TempleID, suite.bankAccount.AccountID, decimal.NewFromInt(5000), true, imported.TxnDate, 72*time.Hour).Return([]portsrepo.MatchCandidate{candidate}, nil).Once()
	suite.mockBankRepo.On("UpdateStatementMatch", ctx, imported.StatementLineID, &candidate.LineID, domain.ReconMatched, suite.actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.ImportStatementCSV(ctx, suite.actor, suite.bankAccount.BankAccountID, strings.NewReader(csvBody))

	suite.Require().NoError(err)
	suite.Equal(3, result.TotalRows)
	suite.Equal(2, result.SkippedRows)
	suite.Equal(1, result.Imported)
	suite.Equal(0, result.Duplicates)
	suite.Equal(1, result.AutoMatched)
	suite.Equal(0, result.UnmatchedLeft)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestAutoMatch_AmbiguousStaysUnmatched() {
	ctx := context.Background()
	csvBody := strings.Join([]string{
		"Date,Value Date,Description,Debit,Credit,Balance,Reference",
		"2025-07-03,2025-07-03,CASH DEPOSIT,,2000,107000,REF9",
	}, "\n")

	unmatched := domain.ReconUnmatched
	imported := domain.BankStatementLine{
		StatementLineID: uuid.NewString(),
		BankAccountID:   suite.bankAccount.BankAccountID,
		TxnDate:         time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		Credit:          decimal.NewFromInt(2000),
		Status:          domain.ReconUnmatched,
	}
	candidates := []portsrepo.MatchCandidate{
		{LineID: uuid.NewString(), Debit: decimal.NewFromInt(2000)},
		{LineID: uuid.NewString(), Debit: decimal.NewFromInt(2000)},
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.actor.TempleID, suite.bankAccount.BankAccountID).Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("InsertStatementLines", ctx, mock.Anything).Return(1, nil).Once()
	suite.mockBankRepo.On("ListStatementLines", ctx, suite.actor.TempleID, suite.bankAccount.BankAccountID, &unmatched, (*time.Time)(nil), (*time.Time)(nil)).Return([]domain.BankStatementLine{imported}, nil).Once()
	suite.mockBankRepo.On("FindMatchCandidates", ctx, suite.actor.TempleID, suite.bankAccount.AccountID, decimal.NewFromInt(2000), true, imported.TxnDate, 72*time.Hour).Return(candidates, nil).Once()

	result, err := suite.service.ImportStatementCSV(ctx, suite.actor, suite.bankAccount.BankAccountID, strings.NewReader(csvBody))

	suite.Require().NoError(err)
	suite.Equal(0, result.AutoMatched)
	suite.Equal(1, result.UnmatchedLeft)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "UpdateStatementMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestMatchLine_VerifiedRejected() {
	ctx := context.Background()
	lineID := uuid.NewString()
	verified := &domain.BankStatementLine{
		StatementLineID: lineID,
		Status:          domain.ReconVerified,
	}
	suite.mockBankRepo.On("FindStatementLineByID", ctx, suite.actor.TempleID, lineID).Return(verified, nil).Once()

	_, err := suite.service.MatchLine(ctx, suite.actor, lineID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "verified")
	suite.mockBankRepo.AssertNotCalled(suite.T(), "UpdateStatementMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestUnmatchLine_Success() {
	ctx := context.Background()
	lineID := uuid.NewString()
	matchedLineID := uuid.NewString()
	line := &domain.BankStatementLine{
		StatementLineID: lineID,
		MatchedLineID:   &matchedLineID,
		Status:          domain.ReconMatched,
	}
	suite.mockBankRepo.On("FindStatementLineByID", ctx, suite.actor.TempleID, lineID).Return(line, nil).Once()
	suite.mockBankRepo.On("UpdateStatementMatch", ctx, lineID, (*string)(nil), domain.ReconUnmatched, suite.actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.UnmatchLine(ctx, suite.actor, lineID)

	suite.Require().NoError(err)
	suite.Nil(result.MatchedLineID)
	suite.Equal(domain.ReconUnmatched, result.Status)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateReconciliationRun() {
	ctx := context.Background()
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	matchedLineID := uuid.NewString()
	lines := []domain.BankStatementLine{
		{StatementLineID: uuid.NewString(), MatchedLineID: &matchedLineID, Status: domain.ReconMatched},
		{StatementLineID: uuid.NewString(), Status: domain.ReconUnmatched},
		{StatementLineID: uuid.NewString(), Status: domain.ReconVerified},
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.actor.TempleID, suite.bankAccount.BankAccountID).Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("ListStatementLines", ctx, suite.actor.TempleID, suite.bankAccount.BankAccountID, (*domain.ReconStatus)(nil), &from, &to).Return(lines, nil).Once()
	suite.mockBankRepo.On("UpdateStatementMatch", ctx, lines[0].StatementLineID, &matchedLineID, domain.ReconVerified, suite.actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "VER", 2025).Return(int64(2), nil).Once()
	suite.mockBankRepo.On("SaveReconciliationRun", ctx, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		return run.RunNumber == "VER/2025/0002" && run.MatchedCount == 2 && run.UnmatchedCount == 1
	})).Return(nil).Once()

	run, err := suite.service.CreateReconciliationRun(ctx, suite.actor, suite.bankAccount.BankAccountID, from, to)

	suite.Require().NoError(err)
	suite.Equal("VER/2025/0002", run.RunNumber)
	suite.Equal(2, run.MatchedCount)
	suite.Equal(1, run.UnmatchedCount)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateReconciliationRun_PeriodInverted() {
	ctx := context.Background()
	from := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.CreateReconciliationRun(ctx, suite.actor, suite.bankAccount.BankAccountID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "FindBankAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestBankService(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
