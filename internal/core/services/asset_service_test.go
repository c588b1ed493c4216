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

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepositoryFacade = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, templeID, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, templeID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, templeID string, status *domain.AssetStatus, limit int, nextToken *string) ([]domain.Asset, *string, error) {
	args := m.Called(ctx, templeID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.Asset), next, args.Error(2)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) SaveCWIPProject(ctx context.Context, project domain.CWIPProject) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockAssetRepository) FindCWIPProjectByID(ctx context.Context, templeID, projectID string) (*domain.CWIPProject, error) {
	args := m.Called(ctx, templeID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CWIPProject), args.Error(1)
}

func (m *MockAssetRepository) ListCWIPProjects(ctx context.Context, templeID string) ([]domain.CWIPProject, error) {
	args := m.Called(ctx, templeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CWIPProject), args.Error(1)
}

func (m *MockAssetRepository) UpdateCWIPProject(ctx context.Context, project domain.CWIPProject) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockAssetRepository) SaveCWIPExpenditure(ctx context.Context, exp domain.CWIPExpenditure) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

func (m *MockAssetRepository) SetExpenditureJournalEntryID(ctx context.Context, expenditureID, entryID string) error {
	args := m.Called(ctx, expenditureID, entryID)
	return args.Error(0)
}

func (m *MockAssetRepository) ListCWIPExpenditures(ctx context.Context, templeID, projectID string) ([]domain.CWIPExpenditure, error) {
	args := m.Called(ctx, templeID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CWIPExpenditure), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) entryOrNil(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) ResolveAccount(ctx context.Context, templeID string, purpose string) (*domain.Account, error) {
	args := m.Called(ctx, templeID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockPostingService) PostDonation(ctx context.Context, actor domain.Actor, d *domain.Donation) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, d))
}

func (m *MockPostingService) PostSevaBooking(ctx context.Context, actor domain.Actor, b *domain.SevaBooking, seva *domain.Seva) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, b, seva))
}

func (m *MockPostingService) PostSponsorshipCommitment(ctx context.Context, actor domain.Actor, sp *domain.Sponsorship) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, sp))
}

func (m *MockPostingService) PostSponsorshipPayment(ctx context.Context, actor domain.Actor, sp *domain.Sponsorship, amount decimal.Decimal, mode domain.PaymentMode, paymentDate time.Time) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, sp, amount, mode, paymentDate))
}

func (m *MockPostingService) PostGoodsReceipt(ctx context.Context, actor domain.Actor, grn *domain.GoodsReceipt) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, grn))
}

func (m *MockPostingService) PostGoodsIssue(ctx context.Context, actor domain.Actor, issue *domain.GoodsIssue, byCategory map[domain.ItemCategory]decimal.Decimal) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, issue, byCategory))
}

func (m *MockPostingService) PostDirectPurchase(ctx context.Context, actor domain.Actor, mv *domain.StockMovement, item *domain.Item, mode domain.PaymentMode) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, mv, item, mode))
}

func (m *MockPostingService) PostDirectIssue(ctx context.Context, actor domain.Actor, mv *domain.StockMovement, item *domain.Item) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, mv, item))
}

func (m *MockPostingService) PostPayrollAccrual(ctx context.Context, actor domain.Actor, month string, totalNetPay decimal.Decimal, accrualDate time.Time) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, month, totalNetPay, accrualDate))
}

func (m *MockPostingService) PostPayrollPayment(ctx context.Context, actor domain.Actor, month string, totalNetPay decimal.Decimal, mode domain.PaymentMode, paymentDate time.Time) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, month, totalNetPay, mode, paymentDate))
}

func (m *MockPostingService) PostAssetPurchase(ctx context.Context, actor domain.Actor, a *domain.Asset) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, a))
}

func (m *MockPostingService) PostAssetDisposal(ctx context.Context, actor domain.Actor, a *domain.Asset) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, a))
}

func (m *MockPostingService) PostCWIPExpenditure(ctx context.Context, actor domain.Actor, e *domain.CWIPExpenditure) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, e))
}

func (m *MockPostingService) PostCWIPCapitalization(ctx context.Context, actor domain.Actor, p *domain.CWIPProject, category domain.AssetCategory, capitalizedDate time.Time) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, p, category, capitalizedDate))
}

func (m *MockPostingService) PostHundiOpening(ctx context.Context, actor domain.Actor, o *domain.HundiOpening) (*domain.JournalEntry, error) {
	return m.entryOrNil(m.Called(ctx, actor, o))
}

// --- Test Suite Setup ---
type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo    *MockAssetRepository
	mockSequenceRepo *MockSequenceRepository
	mockPoster       *MockPostingService
	service          portssvc.AssetSvcFacade
	actor            domain.Actor
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockPoster = new(MockPostingService)
	suite.service = services.NewAssetService(suite.mockAssetRepo, suite.mockSequenceRepo, suite.mockPoster)

	suite.actor = domain.Actor{
		UserID:   uuid.NewString(),
		TempleID: uuid.NewString(),
		Role:     domain.RoleAccountant,
	}
}

// --- Test Cases ---

func (suite *AssetServiceTestSuite) TestRegisterAsset_Success() {
	ctx := context.Background()
	req := dto.RegisterAssetRequest{
		Name:         "Temple Van",
		Category:     "VEHICLE",
		PurchaseDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		PurchaseCost: decimal.NewFromInt(450000),
		PaymentMode:  "BANK_TRANSFER",
		Location:     "Main premises",
	}
	entry := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "AST", 2025).Return(int64(3), nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.AssetNumber == "AST/2025/0003" && a.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostAssetPurchase", ctx, suite.actor, mock.AnythingOfType("*domain.Asset")).Return(entry, nil).Once()
	suite.mockAssetRepo.On("UpdateAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.JournalEntryID != nil && *a.JournalEntryID == entry.EntryID
	})).Return(nil).Once()

	asset, err := suite.service.RegisterAsset(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Equal("AST/2025/0003", asset.AssetNumber)
	suite.Equal(domain.AssetActive, asset.Status)
	suite.Require().NotNil(asset.JournalEntryID)
	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockPoster.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestRegisterAsset_PostingFailureStillSaves() {
	ctx := context.Background()
	req := dto.RegisterAssetRequest{
		Name:         "Brass Lamp",
		Category:     "EQUIPMENT",
		PurchaseDate: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		PurchaseCost: decimal.NewFromInt(12000),
		PaymentMode:  "CASH",
	}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "AST", 2025).Return(int64(4), nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostAssetPurchase", ctx, suite.actor, mock.Anything).Return(nil, apperrors.ErrValidation).Once()

	asset, err := suite.service.RegisterAsset(ctx, suite.actor, req)

	suite.Require().NoError(err)
	suite.Nil(asset.JournalEntryID)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "UpdateAsset", mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestRegisterAsset_SaveFailureDoesNotPost() {
	ctx := context.Background()
	req := dto.RegisterAssetRequest{
		Name:         "Generator",
		Category:     "EQUIPMENT",
		PurchaseDate: time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		PurchaseCost: decimal.NewFromInt(85000),
		PaymentMode:  "BANK_TRANSFER",
	}

	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "AST", 2025).Return(int64(5), nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.RegisterAsset(ctx, suite.actor, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPoster.AssertNotCalled(suite.T(), "PostAssetPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_AlreadyDisposed() {
	ctx := context.Background()
	admin := suite.actor
	admin.Role = domain.RoleAdmin

	assetID := uuid.NewString()
	disposed := &domain.Asset{
		AssetID:     assetID,
		AssetNumber: "AST/2024/0001",
		Status:      domain.AssetDisposed,
	}
	suite.mockAssetRepo.On("FindAssetByID", ctx, admin.TempleID, assetID).Return(disposed, nil).Once()

	_, err := suite.service.DisposeAsset(ctx, admin, assetID, dto.DisposalRequest{
		DisposalDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Reason:       "Scrapped",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "already disposed")
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "UpdateAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_RequiresAdmin() {
	ctx := context.Background()

	_, err := suite.service.DisposeAsset(ctx, suite.actor, uuid.NewString(), dto.DisposalRequest{
		DisposalDate: time.Now().UTC(),
		Reason:       "Scrapped",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_ZeroProceedsSkipsPosting() {
	ctx := context.Background()
	admin := suite.actor
	admin.Role = domain.RoleAdmin

	assetID := uuid.NewString()
	active := &domain.Asset{
		AssetID:     assetID,
		TempleID:    admin.TempleID,
		AssetNumber: "AST/2024/0002",
		Status:      domain.AssetActive,
	}
	suite.mockAssetRepo.On("FindAssetByID", ctx, admin.TempleID, assetID).Return(active, nil).Once()
	suite.mockAssetRepo.On("UpdateAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.Status == domain.AssetDisposed && a.DisposalApprover != nil && *a.DisposalApprover == admin.UserID
	})).Return(nil).Once()

	asset, err := suite.service.DisposeAsset(ctx, admin, assetID, dto.DisposalRequest{
		DisposalDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Proceeds:     decimal.Zero,
		Reason:       "Beyond repair",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.AssetDisposed, asset.Status)
	suite.mockPoster.AssertNotCalled(suite.T(), "PostAssetDisposal", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_WithProceedsPosts() {
	ctx := context.Background()
	admin := suite.actor
	admin.Role = domain.RoleAdmin

	assetID := uuid.NewString()
	active := &domain.Asset{
		AssetID:     assetID,
		TempleID:    admin.TempleID,
		AssetNumber: "AST/2024/0003",
		Status:      domain.AssetActive,
	}
	entry := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.mockAssetRepo.On("FindAssetByID", ctx, admin.TempleID, assetID).Return(active, nil).Once()
	suite.mockPoster.On("PostAssetDisposal", ctx, admin, mock.MatchedBy(func(a *domain.Asset) bool {
		return a.DisposalProceeds.Equal(decimal.NewFromInt(5000))
	})).Return(entry, nil).Once()
	suite.mockAssetRepo.On("UpdateAsset", ctx, mock.Anything).Return(nil).Once()

	asset, err := suite.service.DisposeAsset(ctx, admin, assetID, dto.DisposalRequest{
		DisposalDate: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
		Proceeds:     decimal.NewFromInt(5000),
		Reason:       "Sold at auction",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.AssetDisposed, asset.Status)
	suite.mockPoster.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCapitalize_ZeroExpenditure() {
	ctx := context.Background()
	projectID := uuid.NewString()
	project := &domain.CWIPProject{
		ProjectID:        projectID,
		TempleID:         suite.actor.TempleID,
		Name:             "Gopuram renovation",
		Budget:           decimal.NewFromInt(100000),
		TotalExpenditure: decimal.Zero,
		Status:           domain.CWIPInProgress,
	}
	suite.mockAssetRepo.On("FindCWIPProjectByID", ctx, suite.actor.TempleID, projectID).Return(project, nil).Once()

	_, err := suite.service.Capitalize(ctx, suite.actor, projectID, dto.CapitalizeCWIPRequest{
		AssetName:       "Gopuram",
		Category:        "BUILDING",
		CapitalizedDate: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Cannot capitalize CWIP with zero expenditure")
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestCapitalize_Success() {
	ctx := context.Background()
	projectID := uuid.NewString()
	project := &domain.CWIPProject{
		ProjectID:        projectID,
		TempleID:         suite.actor.TempleID,
		Name:             "Kalyana mandapam",
		Budget:           decimal.NewFromInt(2000000),
		TotalExpenditure: decimal.NewFromInt(1850000),
		Status:           domain.CWIPInProgress,
	}
	entry := &domain.JournalEntry{EntryID: uuid.NewString()}
	capitalizedDate := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	suite.mockAssetRepo.On("FindCWIPProjectByID", ctx, suite.actor.TempleID, projectID).Return(project, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, suite.actor.TempleID, "AST", 2025).Return(int64(8), nil).Once()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.PurchaseCost.Equal(project.TotalExpenditure) && a.AssetNumber == "AST/2025/0008" && a.JournalEntryID == nil
	})).Return(nil).Once()
	suite.mockPoster.On("PostCWIPCapitalization", ctx, suite.actor, project, domain.AssetBuilding, capitalizedDate).Return(entry, nil).Once()
	suite.mockAssetRepo.On("UpdateAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.JournalEntryID != nil && *a.JournalEntryID == entry.EntryID
	})).Return(nil).Once()
	suite.mockAssetRepo.On("UpdateCWIPProject", ctx, mock.MatchedBy(func(p domain.CWIPProject) bool {
		return p.Status == domain.CWIPCapitalized && p.CapitalizedAsset != nil
	})).Return(nil).Once()

	asset, err := suite.service.Capitalize(ctx, suite.actor, projectID, dto.CapitalizeCWIPRequest{
		AssetName:       "Kalyana Mandapam",
		Category:        "BUILDING",
		CapitalizedDate: capitalizedDate,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.AssetActive, asset.Status)
	suite.Require().NotNil(asset.JournalEntryID)
	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockPoster.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestAddExpenditure_CapitalizedProject() {
	ctx := context.Background()
	projectID := uuid.NewString()
	project := &domain.CWIPProject{
		ProjectID: projectID,
		TempleID:  suite.actor.TempleID,
		Name:      "Compound wall",
		Status:    domain.CWIPCapitalized,
	}
	suite.mockAssetRepo.On("FindCWIPProjectByID", ctx, suite.actor.TempleID, projectID).Return(project, nil).Once()

	_, err := suite.service.AddExpenditure(ctx, suite.actor, projectID, dto.AddCWIPExpenditureRequest{
		SpendDate:   time.Now().UTC(),
		Amount:      decimal.NewFromInt(10000),
		PaymentMode: "CASH",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveCWIPExpenditure", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
