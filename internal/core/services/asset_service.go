package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

const assetDocKey = "AST"

type assetService struct {
	BaseService
	assetRepo    portsrepo.AssetRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
	poster       portssvc.PostingSvcFacade
}

// NewAssetService creates a new asset service.
func NewAssetService(
	assetRepo portsrepo.AssetRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	poster portssvc.PostingSvcFacade,
) portssvc.AssetSvcFacade {
	return &assetService{
		assetRepo:    assetRepo,
		sequenceRepo: sequenceRepo,
		poster:       poster,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) nextAssetNumber(ctx context.Context, templeID string, date time.Time) (string, error) {
	seq, err := s.sequenceRepo.NextValue(ctx, templeID, assetDocKey, date.Year())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d/%04d", assetDocKey, date.Year(), seq), nil
}

func (s *assetService) RegisterAsset(ctx context.Context, actor domain.Actor, req dto.RegisterAssetRequest) (*domain.Asset, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !req.PurchaseCost.IsPositive() {
		return nil, fmt.Errorf("%w: purchase cost must be positive", apperrors.ErrValidation)
	}

	assetNumber, err := s.nextAssetNumber(ctx, actor.TempleID, req.PurchaseDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate asset number")
		return nil, err
	}

	now := time.Now().UTC()
	asset := domain.Asset{
		AssetID:      uuid.NewString(),
		TempleID:     actor.TempleID,
		AssetNumber:  assetNumber,
		Name:         strings.TrimSpace(req.Name),
		Category:     domain.AssetCategory(req.Category),
		PurchaseDate: req.PurchaseDate,
		PurchaseCost: req.PurchaseCost,
		PaymentMode:  domain.PaymentMode(req.PaymentMode),
		Location:     req.Location,
		Status:       domain.AssetActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save asset")
		return nil, err
	}

	if entry, postErr := s.poster.PostAssetPurchase(ctx, actor, &asset); postErr != nil {
		s.LogWarn(ctx, "Asset saved without accounting entry", "asset_id", asset.AssetID, "error", postErr.Error())
	} else {
		asset.JournalEntryID = &entry.EntryID
		if err := s.assetRepo.UpdateAsset(ctx, asset); err != nil {
			s.LogError(ctx, err, "Failed to link asset to accounting entry", "asset_id", asset.AssetID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Asset registered", "asset_id", asset.AssetID, "asset_number", asset.AssetNumber)
	return &asset, nil
}

func (s *assetService) DisposeAsset(ctx context.Context, actor domain.Actor, assetID string, req dto.DisposalRequest) (*domain.Asset, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if req.Proceeds.IsNegative() {
		return nil, fmt.Errorf("%w: disposal proceeds cannot be negative", apperrors.ErrValidation)
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, actor.TempleID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetActive {
		return nil, fmt.Errorf("%w: asset %s is already disposed", apperrors.ErrValidation, asset.AssetNumber)
	}

	asset.Status = domain.AssetDisposed
	asset.DisposalDate = &req.DisposalDate
	asset.DisposalProceeds = req.Proceeds
	asset.DisposalReason = req.Reason
	asset.DisposalApprover = &actor.UserID
	asset.LastUpdatedAt = time.Now().UTC()
	asset.LastUpdatedBy = actor.UserID

	if req.Proceeds.IsPositive() {
		if _, err := s.poster.PostAssetDisposal(ctx, actor, asset); err != nil {
			s.LogError(ctx, err, "Failed to post asset disposal", "asset_id", assetID)
			return nil, err
		}
	}

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to dispose asset", "asset_id", assetID)
		return nil, err
	}
	s.LogInfo(ctx, "Asset disposed", "asset_id", assetID, "proceeds", req.Proceeds.StringFixed(2))
	return asset, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, actor domain.Actor, assetID string) (*domain.Asset, error) {
	return s.assetRepo.FindAssetByID(ctx, actor.TempleID, assetID)
}

func (s *assetService) ListAssets(ctx context.Context, actor domain.Actor, status *string) ([]domain.Asset, error) {
	var statusFilter *domain.AssetStatus
	if status != nil && *status != "" {
		st := domain.AssetStatus(strings.ToUpper(*status))
		statusFilter = &st
	}
	assets, _, err := s.assetRepo.ListAssets(ctx, actor.TempleID, statusFilter, 500, nil)
	return assets, err
}

func (s *assetService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateCWIPProjectRequest) (*domain.CWIPProject, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if req.Budget.IsNegative() {
		return nil, fmt.Errorf("%w: budget cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	project := domain.CWIPProject{
		ProjectID:        uuid.NewString(),
		TempleID:         actor.TempleID,
		Name:             strings.TrimSpace(req.Name),
		Budget:           req.Budget,
		TotalExpenditure: decimal.Zero,
		Status:           domain.CWIPInProgress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.assetRepo.SaveCWIPProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save CWIP project")
		return nil, err
	}
	return &project, nil
}

func (s *assetService) AddExpenditure(ctx context.Context, actor domain.Actor, projectID string, req dto.AddCWIPExpenditureRequest) (*domain.CWIPExpenditure, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expenditure amount must be positive", apperrors.ErrValidation)
	}

	project, err := s.assetRepo.FindCWIPProjectByID(ctx, actor.TempleID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.CWIPInProgress {
		return nil, fmt.Errorf("%w: project %s is capitalized, no further expenditure can be booked", apperrors.ErrValidation, project.Name)
	}

	now := time.Now().UTC()
	exp := domain.CWIPExpenditure{
		ExpenditureID: uuid.NewString(),
		ProjectID:     project.ProjectID,
		TempleID:      actor.TempleID,
		SpendDate:     req.SpendDate,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMode:   domain.PaymentMode(req.PaymentMode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.assetRepo.SaveCWIPExpenditure(ctx, exp); err != nil {
		s.LogError(ctx, err, "Failed to save CWIP expenditure", "project_id", projectID)
		return nil, err
	}

	if entry, postErr := s.poster.PostCWIPExpenditure(ctx, actor, &exp); postErr != nil {
		s.LogWarn(ctx, "CWIP expenditure saved without accounting entry", "project_id", projectID, "error", postErr.Error())
	} else {
		exp.JournalEntryID = &entry.EntryID
		if err := s.assetRepo.SetExpenditureJournalEntryID(ctx, exp.ExpenditureID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link expenditure to accounting entry", "project_id", projectID)
			return nil, err
		}
	}

	project.TotalExpenditure = project.TotalExpenditure.Add(req.Amount)
	project.LastUpdatedAt = now
	project.LastUpdatedBy = actor.UserID
	if err := s.assetRepo.UpdateCWIPProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update CWIP project total", "project_id", projectID)
		return nil, err
	}
	return &exp, nil
}

func (s *assetService) Capitalize(ctx context.Context, actor domain.Actor, projectID string, req dto.CapitalizeCWIPRequest) (*domain.Asset, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	project, err := s.assetRepo.FindCWIPProjectByID(ctx, actor.TempleID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.CWIPInProgress {
		return nil, fmt.Errorf("%w: project %s is already capitalized", apperrors.ErrValidation, project.Name)
	}
	if !project.TotalExpenditure.IsPositive() {
		return nil, fmt.Errorf("%w: Cannot capitalize CWIP with zero expenditure", apperrors.ErrValidation)
	}

	assetNumber, err := s.nextAssetNumber(ctx, actor.TempleID, req.CapitalizedDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate asset number")
		return nil, err
	}

	now := time.Now().UTC()
	asset := domain.Asset{
		AssetID:      uuid.NewString(),
		TempleID:     actor.TempleID,
		AssetNumber:  assetNumber,
		Name:         strings.TrimSpace(req.AssetName),
		Category:     domain.AssetCategory(req.Category),
		PurchaseDate: req.CapitalizedDate,
		PurchaseCost: project.TotalExpenditure,
		PaymentMode:  domain.PaymentBankTransfer,
		Location:     req.Location,
		Status:       domain.AssetActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save capitalized asset", "project_id", projectID)
		return nil, err
	}

	if entry, postErr := s.poster.PostCWIPCapitalization(ctx, actor, project, asset.Category, req.CapitalizedDate); postErr != nil {
		s.LogWarn(ctx, "Capitalization saved without accounting entry", "project_id", projectID, "error", postErr.Error())
	} else {
		asset.JournalEntryID = &entry.EntryID
		if err := s.assetRepo.UpdateAsset(ctx, asset); err != nil {
			s.LogError(ctx, err, "Failed to link capitalized asset to accounting entry", "project_id", projectID)
			return nil, err
		}
	}

	project.Status = domain.CWIPCapitalized
	project.CapitalizedAsset = &asset.AssetID
	project.LastUpdatedAt = now
	project.LastUpdatedBy = actor.UserID
	if err := s.assetRepo.UpdateCWIPProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to close CWIP project", "project_id", projectID)
		return nil, err
	}
	s.LogInfo(ctx, "CWIP project capitalized", "project_id", projectID, "asset_id", asset.AssetID)
	return &asset, nil
}

func (s *assetService) GetProjectByID(ctx context.Context, actor domain.Actor, projectID string) (*domain.CWIPProject, error) {
	return s.assetRepo.FindCWIPProjectByID(ctx, actor.TempleID, projectID)
}

func (s *assetService) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.CWIPProject, error) {
	return s.assetRepo.ListCWIPProjects(ctx, actor.TempleID)
}
