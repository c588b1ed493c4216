package services_test

import (
	"context"
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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, templeID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, templeID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, templeID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, templeID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalLine, cancelledBy string, cancelledAt time.Time) error {
	args := m.Called(ctx, originalEntryID, reversal, lines, cancelledBy, cancelledAt)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, templeID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, templeID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, templeID, code string) (*domain.Account, error) {
	args := m.Called(ctx, templeID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, templeID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, templeID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, templeID string, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, templeID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindMapping(ctx context.Context, templeID, purpose string) (*domain.AccountMapping, error) {
	args := m.Called(ctx, templeID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

func (m *MockAccountRepository) UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockAccountRepository) ListMappings(ctx context.Context, templeID string) ([]domain.AccountMapping, error) {
	args := m.Called(ctx, templeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepositoryFacade = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, templeID, docKey string, year int) (int64, error) {
	args := m.Called(ctx, templeID, docKey, year)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, templeID string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, templeID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountActivityRange(ctx context.Context, templeID string, from, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, templeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountOpening(ctx context.Context, templeID, accountID string, before time.Time) (*domain.AccountActivity, error) {
	args := m.Called(ctx, templeID, accountID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerLines(ctx context.Context, templeID, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, templeID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockReportingRepository) GetBookLines(ctx context.Context, templeID string, subTypes []string, from, to time.Time) ([]domain.BookLine, error) {
	args := m.Called(ctx, templeID, subTypes, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookLine), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockAccountRepo   *MockAccountRepository
	mockSequenceRepo  *MockSequenceRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.JournalSvcFacade
	actor             domain.Actor
	cashAccount       domain.Account
	incomeAccount     domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockSequenceRepo, suite.mockReportingRepo)

	templeID := uuid.NewString()
	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: templeID,
		Role:     domain.RoleAccountant,
	}
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TempleID:    templeID,
		Code:        "1101",
		Name:        "Cash in Hand",
		AccountType: domain.AccountTypeAsset,
		SubType:     domain.SubTypeCash,
		IsActive:    true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TempleID:    templeID,
		Code:        "4101",
		Name:        "General Donations",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:   suite.cashAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
}

func (suite *JournalServiceTestSuite) entryRequest(debit, credit int64) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate: time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		Narration: "Counter collection",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(debit)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(credit)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Draft() {
	ctx := context.Background()
	req := suite.entryRequest(100, 100)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.actor.TempleID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE/2025/0007", entry.EntryNumber)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.Equal(domain.RefManual, entry.ReferenceType)
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Nil(entry.PostedBy)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNo)
	suite.Equal(2, entry.Lines[1].LineNo)
	suite.NotEmpty(entry.Lines[0].LineID)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_PostImmediately() {
	ctx := context.Background()
	req := suite.entryRequest(250, 250)
	req.Post = true

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.actor.TempleID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.EntryPosted && e.PostedBy != nil && *e.PostedBy == suite.actor.UserID
	}), mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, entry.Status)
	suite.Require().NotNil(entry.PostedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// A contra entry may debit and credit the same account, for example moving
// cash between denominations. Two balanced lines are enough.
func (suite *JournalServiceTestSuite) TestCreateEntry_SameAccountBothSides() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		Narration: "Cash denomination exchange",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(2000)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(2000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.actor.TempleID, []string{suite.cashAccount.AccountID}).
		Return(map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "JE", 2025).Return(int64(9), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Equal("JE/2025/0009", entry.EntryNumber)
	suite.Require().Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.entryRequest(100, 90)

	_, err := suite.service.CreateEntry(ctx, suite.actor, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Debits (100) must equal credits (90)")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RequiresAccountant() {
	ctx := context.Background()
	staff := suite.actor
	staff.Role = domain.RoleStaff

	_, err := suite.service.CreateEntry(ctx, staff, suite.entryRequest(100, 100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	suite.incomeAccount.IsActive = false

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.actor.TempleID, mock.Anything).Return(suite.accountsMap(), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.actor, suite.entryRequest(100, 100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountNotFound() {
	ctx := context.Background()
	partial := map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.actor.TempleID, mock.Anything).Return(partial, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.actor, suite.entryRequest(100, 100))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		TempleID:    suite.actor.TempleID,
		EntryNumber: "JE/2025/0001",
		Status:      domain.EntryDraft,
	}
	posted := &domain.JournalEntry{
		EntryID:     entryID,
		TempleID:    suite.actor.TempleID,
		EntryNumber: "JE/2025/0001",
		Status:      domain.EntryPosted,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), LineNo: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100), LineNo: 2},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.actor.TempleID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("MarkPosted", ctx, entryID, suite.actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.actor.TempleID, entryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	result, err := suite.service.PostEntry(ctx, suite.actor, entryID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPosted, result.Status)
	suite.Len(result.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_OnlyDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.EntryPosted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.actor.TempleID, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.actor, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "only DRAFT entries can be posted")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCancelEntry_BuildsSwappedReversal() {
	ctx := context.Background()
	admin := suite.actor
	admin.Role = domain.RoleAdmin

	entryID := uuid.NewString()
	postedBy := uuid.NewString()
	postedAt := time.Now().UTC()
	original := &domain.JournalEntry{
		EntryID:       entryID,
		TempleID:      admin.TempleID,
		EntryNumber:   "JE/2025/0003",
		Narration:     "Donation receipt",
		ReferenceType: domain.RefDonation,
		ReferenceID:   uuid.NewString(),
		TotalAmount:   decimal.NewFromInt(500),
		Status:        domain.EntryPosted,
		PostedBy:      &postedBy,
		PostedAt:      &postedAt,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(500), LineNo: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(500), LineNo: 2},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, admin.TempleID, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, admin.TempleID, "JE", mock.AnythingOfType("int")).Return(int64(4), nil).Once()

	suite.mockJournalRepo.On("SaveReversal", ctx, entryID,
		mock.MatchedBy(func(reversal domain.JournalEntry) bool {
			return reversal.Status == domain.EntryPosted &&
				reversal.ReversalOfEntryID != nil && *reversal.ReversalOfEntryID == entryID &&
				reversal.TotalAmount.Equal(original.TotalAmount)
		}),
		mock.MatchedBy(func(reversalLines []domain.JournalLine) bool {
			// Sides must be swapped relative to the original lines.
			return len(reversalLines) == 2 &&
				reversalLines[0].Credit.Equal(decimal.NewFromInt(500)) &&
				reversalLines[1].Debit.Equal(decimal.NewFromInt(500))
		}),
		admin.UserID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	cancelledBy := admin.UserID
	cancelledAt := time.Now().UTC()
	cancelled := &domain.JournalEntry{
		EntryID:     entryID,
		TempleID:    admin.TempleID,
		EntryNumber: "JE/2025/0003",
		Status:      domain.EntryCancelled,
		CancelledBy: &cancelledBy,
		CancelledAt: &cancelledAt,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, admin.TempleID, entryID).Return(cancelled, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	result, err := suite.service.CancelEntry(ctx, admin, entryID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryCancelled, result.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

// Cancelling an entry must leave every touched account with zero net movement
// once the original and its reversal are summed together, since both stay
// visible to the report aggregates.
func (suite *JournalServiceTestSuite) TestCancelEntry_NetsToZero() {
	ctx := context.Background()
	admin := suite.actor
	admin.Role = domain.RoleAdmin

	entryID := uuid.NewString()
	postedBy := uuid.NewString()
	postedAt := time.Now().UTC()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		TempleID:    admin.TempleID,
		EntryNumber: "JE/2025/0005",
		Narration:   "Pooja material purchase",
		TotalAmount: decimal.NewFromInt(1300),
		Status:      domain.EntryPosted,
		PostedBy:    &postedBy,
		PostedAt:    &postedAt,
	}
	expenseAccountID := uuid.NewString()
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.incomeAccount.AccountID, Debit: decimal.NewFromInt(800), LineNo: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: expenseAccountID, Debit: decimal.NewFromInt(500), LineNo: 2},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(1300), LineNo: 3},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, admin.TempleID, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, admin.TempleID, "JE", mock.AnythingOfType("int")).Return(int64(6), nil).Once()

	var captured []domain.JournalLine
	suite.mockJournalRepo.On("SaveReversal", ctx, entryID,
		mock.AnythingOfType("domain.JournalEntry"),
		mock.MatchedBy(func(reversalLines []domain.JournalLine) bool {
			captured = reversalLines
			return true
		}),
		admin.UserID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	cancelledBy := admin.UserID
	cancelledAt := time.Now().UTC()
	cancelled := &domain.JournalEntry{
		EntryID:     entryID,
		TempleID:    admin.TempleID,
		EntryNumber: "JE/2025/0005",
		Status:      domain.EntryCancelled,
		CancelledBy: &cancelledBy,
		CancelledAt: &cancelledAt,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, admin.TempleID, entryID).Return(cancelled, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	_, err := suite.service.CancelEntry(ctx, admin, entryID)

	suite.Require().NoError(err)
	suite.Require().Len(captured, len(lines))

	net := map[string]decimal.Decimal{}
	for _, l := range lines {
		net[l.AccountID] = net[l.AccountID].Add(l.Debit).Sub(l.Credit)
	}
	for _, l := range captured {
		net[l.AccountID] = net[l.AccountID].Add(l.Debit).Sub(l.Credit)
	}
	for accountID, balance := range net {
		suite.True(balance.IsZero(), "account %s nets to %s, want zero", accountID, balance)
	}
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCancelEntry_RequiresAdmin() {
	ctx := context.Background()

	_, err := suite.service.CancelEntry(ctx, suite.actor, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
