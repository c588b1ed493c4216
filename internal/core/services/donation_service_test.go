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

// --- Mock DonationRepository ---
type MockDonationRepository struct {
	mock.Mock
}

var _ portsrepo.DonationRepositoryFacade = (*MockDonationRepository)(nil)

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, templeID, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, templeID, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonations(ctx context.Context, templeID string, filter portsrepo.ListDonationsFilter, limit int, nextToken *string) ([]domain.Donation, *string, error) {
	args := m.Called(ctx, templeID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.Donation), next, args.Error(2)
}

func (m *MockDonationRepository) SetJournalEntryID(ctx context.Context, donationID, entryID string) error {
	args := m.Called(ctx, donationID, entryID)
	return args.Error(0)
}

// --- Mock DevoteeRepository ---
type MockDevoteeRepository struct {
	mock.Mock
}

var _ portsrepo.DevoteeRepositoryFacade = (*MockDevoteeRepository)(nil)

func (m *MockDevoteeRepository) SaveDevotee(ctx context.Context, devotee domain.Devotee) error {
	args := m.Called(ctx, devotee)
	return args.Error(0)
}

func (m *MockDevoteeRepository) FindDevoteeByID(ctx context.Context, templeID, devoteeID string) (*domain.Devotee, error) {
	args := m.Called(ctx, templeID, devoteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Devotee), args.Error(1)
}

func (m *MockDevoteeRepository) FindDevoteeByPhone(ctx context.Context, templeID, phone string) (*domain.Devotee, error) {
	args := m.Called(ctx, templeID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Devotee), args.Error(1)
}

func (m *MockDevoteeRepository) ListDevotees(ctx context.Context, templeID string, search string, limit int, nextToken *string) ([]domain.Devotee, *string, error) {
	args := m.Called(ctx, templeID, search, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.Devotee), next, args.Error(2)
}

func (m *MockDevoteeRepository) UpdateDevotee(ctx context.Context, devotee domain.Devotee) error {
	args := m.Called(ctx, devotee)
	return args.Error(0)
}

// --- Mock TempleRepository ---
type MockTempleRepository struct {
	mock.Mock
}

var _ portsrepo.TempleRepositoryFacade = (*MockTempleRepository)(nil)

func (m *MockTempleRepository) SaveTemple(ctx context.Context, temple domain.Temple) error {
	args := m.Called(ctx, temple)
	return args.Error(0)
}

func (m *MockTempleRepository) FindTempleByID(ctx context.Context, templeID string) (*domain.Temple, error) {
	args := m.Called(ctx, templeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Temple), args.Error(1)
}

func (m *MockTempleRepository) UpdateTemple(ctx context.Context, temple domain.Temple) error {
	args := m.Called(ctx, temple)
	return args.Error(0)
}

// --- Test Suite Setup ---
type DonationServiceTestSuite struct {
	suite.Suite
	mockDonationRepo *MockDonationRepository
	mockDevoteeRepo  *MockDevoteeRepository
	mockTempleRepo   *MockTempleRepository
	mockSequenceRepo *MockSequenceRepository
	mockPoster       *MockPostingService
	service          portssvc.DonationSvcFacade
	actor            domain.Actor
}

func (suite *DonationServiceTestSuite) SetupTest() {
	suite.mockDonationRepo = new(MockDonationRepository)
	suite.mockDevoteeRepo = new(MockDevoteeRepository)
	suite.mockTempleRepo = new(MockTempleRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockPoster = new(MockPostingService)
	suite.service = services.NewDonationService(
		suite.mockDonationRepo,
		suite.mockDevoteeRepo,
		suite.mockTempleRepo,
		suite.mockSequenceRepo,
		suite.mockPoster,
	)

	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: uuid.NewString(),
		Role:     domain.RoleStaff,
	}
}

func (suite *DonationServiceTestSuite) donationRequest() dto.CreateDonationRequest {
	return dto.CreateDonationRequest{
		DonationDate: time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
		Category:     "GENERAL",
		PaymentMode:  "CASH",
		Amount:       decimal.NewFromInt(1000),
		Purpose:      "Annadanam",
	}
}

// --- Test Cases ---

func (suite *DonationServiceTestSuite) TestCreateDonation_SavedBeforePosting() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "RCT", 2025).Return(int64(12), nil).Once()
	suite.mockDonationRepo.On("SaveDonation", ctx, mock.MatchedBy(func(d domain.Donation) bool {
		return d.ReceiptNumber == "RCT/2025/0012" && d.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostDonation", ctx, suite.actor, mock.AnythingOfType("*domain.Donation")).Return(entry, nil).Once()
	suite.mockDonationRepo.On("SetJournalEntryID", ctx, mock.AnythingOfType("string"), entry.EntryID).Return(nil).Once()

	donation, err := suite.service.CreateDonation(ctx, suite.actor, suite.donationRequest())

	suite.Require().NoError(err)
	suite.Equal("RCT/2025/0012", donation.ReceiptNumber)
	suite.Require().NotNil(donation.JournalEntryID)
	suite.Equal(entry.EntryID, *donation.JournalEntryID)
	suite.mockDonationRepo.AssertExpectations(suite.T())
	suite.mockPoster.AssertExpectations(suite.T())
}

func (suite *DonationServiceTestSuite) TestCreateDonation_PostingFailureKeepsReceipt() {
	ctx := context.Background()

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "RCT", 2025).Return(int64(13), nil).Once()
	suite.mockDonationRepo.On("SaveDonation", ctx, mock.MatchedBy(func(d domain.Donation) bool {
		return d.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostDonation", ctx, suite.actor, mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	donation, err := suite.service.CreateDonation(ctx, suite.actor, suite.donationRequest())

	suite.Require().NoError(err)
	suite.Nil(donation.JournalEntryID)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "SetJournalEntryID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDonationRepo.AssertExpectations(suite.T())
}

func (suite *DonationServiceTestSuite) TestCreateDonation_SaveFailureDoesNotPost() {
	ctx := context.Background()

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "RCT", 2025).Return(int64(14), nil).Once()
	suite.mockDonationRepo.On("SaveDonation", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateDonation(ctx, suite.actor, suite.donationRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPoster.AssertNotCalled(suite.T(), "PostDonation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_EightyGNeedsDevotee() {
	ctx := context.Background()
	req := suite.donationRequest()
	req.EightyG = true

	_, err := suite.service.CreateDonation(ctx, suite.actor, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "80G donations require an identified devotee")
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "SaveDonation", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestDonationService(t *testing.T) {
	suite.Run(t, new(DonationServiceTestSuite))
}
