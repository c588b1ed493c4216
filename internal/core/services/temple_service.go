package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// templeService manages temple (tenant) records.
type templeService struct {
	BaseService
	templeRepo portsrepo.TempleRepositoryFacade
}

// NewTempleService creates a new TempleService.
func NewTempleService(templeRepo portsrepo.TempleRepositoryFacade) portssvc.TempleSvcFacade {
	return &templeService{templeRepo: templeRepo}
}

var _ portssvc.TempleSvcFacade = (*templeService)(nil)

// CreateTemple registers a new temple tenant.
func (s *templeService) CreateTemple(ctx context.Context, req dto.CreateTempleRequest, creatorUserID string) (*domain.Temple, error) {
	now := time.Now().UTC()
	temple := domain.Temple{
		TempleID:           uuid.NewString(),
		Name:               req.Name,
		Address:            req.Address,
		RegistrationNumber: req.RegistrationNumber,
		EightyGNumber:      req.EightyGNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.templeRepo.SaveTemple(ctx, temple); err != nil {
		s.LogError(ctx, err, "Failed to create temple", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Temple created", slog.String("temple_id", temple.TempleID))
	return &temple, nil
}

// GetTempleByID retrieves a temple by ID.
func (s *templeService) GetTempleByID(ctx context.Context, templeID string) (*domain.Temple, error) {
	return s.templeRepo.FindTempleByID(ctx, templeID)
}

// UpdateTemple updates temple details.
func (s *templeService) UpdateTemple(ctx context.Context, actor domain.Actor, req dto.UpdateTempleRequest) (*domain.Temple, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	temple, err := s.templeRepo.FindTempleByID(ctx, actor.TempleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		temple.Name = *req.Name
	}
	if req.Address != nil {
		temple.Address = *req.Address
	}
	if req.RegistrationNumber != nil {
		temple.RegistrationNumber = *req.RegistrationNumber
	}
	if req.EightyGNumber != nil {
		temple.EightyGNumber = *req.EightyGNumber
	}
	temple.LastUpdatedAt = time.Now().UTC()
	temple.LastUpdatedBy = actor.UserID

	if err := s.templeRepo.UpdateTemple(ctx, *temple); err != nil {
		s.LogError(ctx, err, "Failed to update temple", slog.String("temple_id", actor.TempleID))
		return nil, err
	}
	return temple, nil
}
