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

// --- Mock HundiRepository ---
type MockHundiRepository struct {
	mock.Mock
}

var _ portsrepo.HundiRepositoryFacade = (*MockHundiRepository)(nil)

func (m *MockHundiRepository) SaveBox(ctx context.Context, box domain.HundiBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockHundiRepository) FindBoxByID(ctx context.Context, templeID, boxID string) (*domain.HundiBox, error) {
	args := m.Called(ctx, templeID, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HundiBox), args.Error(1)
}

func (m *MockHundiRepository) ListBoxes(ctx context.Context, templeID string, activeOnly bool) ([]domain.HundiBox, error) {
	args := m.Called(ctx, templeID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HundiBox), args.Error(1)
}

func (m *MockHundiRepository) UpdateBox(ctx context.Context, box domain.HundiBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockHundiRepository) SaveOpening(ctx context.Context, opening domain.HundiOpening) error {
	args := m.Called(ctx, opening)
	return args.Error(0)
}

func (m *MockHundiRepository) SetOpeningJournalEntryID(ctx context.Context, openingID, entryID string) error {
	args := m.Called(ctx, openingID, entryID)
	return args.Error(0)
}

func (m *MockHundiRepository) FindOpeningByID(ctx context.Context, templeID, openingID string) (*domain.HundiOpening, error) {
	args := m.Called(ctx, templeID, openingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HundiOpening), args.Error(1)
}

func (m *MockHundiRepository) ListOpenings(ctx context.Context, templeID string, boxID *string, limit int, nextToken *string) ([]domain.HundiOpening, *string, error) {
	args := m.Called(ctx, templeID, boxID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.HundiOpening), next, args.Error(2)
}

// --- Test Suite Setup ---
type HundiServiceTestSuite struct {
	suite.Suite
	mockHundiRepo    *MockHundiRepository
	mockSequenceRepo *MockSequenceRepository
	mockPoster       *MockPostingService
	service          portssvc.HundiSvcFacade
	actor            domain.Actor
	box              *domain.HundiBox
}

func (suite *HundiServiceTestSuite) SetupTest() {
	suite.mockHundiRepo = new(MockHundiRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockPoster = new(MockPostingService)
	suite.service = services.NewHundiService(suite.mockHundiRepo, suite.mockSequenceRepo, suite.mockPoster)

	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: uuid.NewString(),
		Role:     domain.RoleAccountant,
	}
	suite.box = &domain.HundiBox{
		BoxID:    uuid.NewString(),
		TempleID: suite.actor.TempleID,
		Code:     "MAIN",
		Location: "Sanctum entrance",
		IsActive: true,
	}
}

// --- Test Cases ---

func (suite *HundiServiceTestSuite) TestCreateBox_NormalizesCode() {
	ctx := context.Background()
	suite.mockHundiRepo.On("SaveBox", ctx, mock.MatchedBy(func(box domain.HundiBox) bool {
		return box.Code == "NORTH" && box.IsActive
	})).Return(nil).Once()

	box, err := suite.service.CreateBox(ctx, suite.actor, dto.CreateHundiBoxRequest{
		Code:     " north ",
		Location: "North gate",
	})

	suite.Require().NoError(err)
	suite.Equal("NORTH", box.Code)
	suite.mockHundiRepo.AssertExpectations(suite.T())
}

func (suite *HundiServiceTestSuite) TestRecordOpening_DenominationMismatch() {
	ctx := context.Background()
	req := dto.RecordHundiOpeningRequest{
		BoxID:         suite.box.BoxID,
		OpeningDate:   time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		CountedAmount: decimal.NewFromInt(500),
		Denominations: map[string]int{"100": 4},
		CountedBy:     "Head priest",
	}

	_, err := suite.service.RecordOpening(ctx, suite.actor, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "denomination total 400.00 does not equal counted amount 500.00")
	suite.mockHundiRepo.AssertNotCalled(suite.T(), "SaveOpening", mock.Anything, mock.Anything)
}

func (suite *HundiServiceTestSuite) TestRecordOpening_InvalidDenomination() {
	ctx := context.Background()
	req := dto.RecordHundiOpeningRequest{
		BoxID:         suite.box.BoxID,
		OpeningDate:   time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		CountedAmount: decimal.NewFromInt(100),
		Denominations: map[string]int{"hundred": 1},
	}

	_, err := suite.service.RecordOpening(ctx, suite.actor, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "invalid denomination")
}

func (suite *HundiServiceTestSuite) TestRecordOpening_InactiveBox() {
	ctx := context.Background()
	inactive := &domain.HundiBox{
		BoxID:    suite.box.BoxID,
		TempleID: suite.actor.TempleID,
		Code:     "OLD",
		IsActive: false,
	}
	suite.mockHundiRepo.On("FindBoxByID", ctx, suite.actor.TempleID, suite.box.BoxID).Return(inactive, nil).Once()

	req := dto.RecordHundiOpeningRequest{
		BoxID:         suite.box.BoxID,
		OpeningDate:   time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		CountedAmount: decimal.NewFromInt(500),
		Denominations: map[string]int{"100": 5},
	}

	_, err := suite.service.RecordOpening(ctx, suite.actor, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "not active")
	suite.mockSequenceRepo.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HundiServiceTestSuite) TestRecordOpening_Success() {
	ctx := context.Background()
	req := dto.RecordHundiOpeningRequest{
		BoxID:         suite.box.BoxID,
		OpeningDate:   time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		CountedAmount: decimal.NewFromInt(500),
		Denominations: map[string]int{"100": 3, "50": 4},
		Witnesses:     "Trustee A, Trustee B",
		CountedBy:     "Head priest",
	}
	entry := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.mockHundiRepo.On("FindBoxByID", ctx, suite.actor.TempleID, suite.box.BoxID).Return(suite.box, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "HUNDI/MAIN", 2025).Return(int64(5), nil).Once()
	suite.mockHundiRepo.On("SaveOpening", ctx, mock.MatchedBy(func(o domain.HundiOpening) bool {
		return o.OpeningNumber == "HUNDI/MAIN/2025/0005" && o.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostHundiOpening", ctx, suite.actor, mock.MatchedBy(func(o *domain.HundiOpening) bool {
		return o.OpeningNumber == "HUNDI/MAIN/2025/0005" && o.CountedAmount.Equal(decimal.NewFromInt(500))
	})).Return(entry, nil).Once()
	suite.mockHundiRepo.On("SetOpeningJournalEntryID", ctx, mock.AnythingOfType("string"), entry.EntryID).Return(nil).Once()

	opening, err := suite.service.RecordOpening(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Equal("HUNDI/MAIN/2025/0005", opening.OpeningNumber)
	suite.Require().NotNil(opening.JournalEntryID)
	suite.Equal(entry.EntryID, *opening.JournalEntryID)
	suite.mockHundiRepo.AssertExpectations(suite.T())
	suite.mockPoster.AssertExpectations(suite.T())
}

func (suite *HundiServiceTestSuite) TestRecordOpening_PostingFailureStillSaves() {
	ctx := context.Background()
	req := dto.RecordHundiOpeningRequest{
		BoxID:         suite.box.BoxID,
		OpeningDate:   time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		CountedAmount: decimal.NewFromInt(200),
		Denominations: map[string]int{"200": 1},
	}

	suite.mockHundiRepo.On("FindBoxByID", ctx, suite.actor.TempleID, suite.box.BoxID).Return(suite.box, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "HUNDI/MAIN", 2025).Return(int64(6), nil).Once()
	suite.mockHundiRepo.On("SaveOpening", ctx, mock.MatchedBy(func(o domain.HundiOpening) bool {
		return o.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostHundiOpening", ctx, suite.actor, mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	opening, err := suite.service.RecordOpening(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Nil(opening.JournalEntryID)
	suite.mockHundiRepo.AssertNotCalled(suite.T(), "SetOpeningJournalEntryID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockHundiRepo.AssertExpectations(suite.T())
}

func (suite *HundiServiceTestSuite) TestRecordOpening_RequiresAccountant() {
	ctx := context.Background()
	staff := suite.actor
	staff.Role = domain.RoleStaff

	_, err := suite.service.RecordOpening(ctx, staff, dto.RecordHundiOpeningRequest{
		BoxID:         suite.box.BoxID,
		OpeningDate:   time.Now().UTC(),
		CountedAmount: decimal.NewFromInt(100),
		Denominations: map[string]int{"100": 1},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockHundiRepo.AssertNotCalled(suite.T(), "FindBoxByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestHundiService(t *testing.T) {
	suite.Run(t, new(HundiServiceTestSuite))
}
