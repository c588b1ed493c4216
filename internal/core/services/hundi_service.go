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

type hundiService struct {
	BaseService
	hundiRepo    portsrepo.HundiRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
	poster       portssvc.PostingSvcFacade
}

// NewHundiService creates a new hundi service.
func NewHundiService(
	hundiRepo portsrepo.HundiRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	poster portssvc.PostingSvcFacade,
) portssvc.HundiSvcFacade {
	return &hundiService{
		hundiRepo:    hundiRepo,
		sequenceRepo: sequenceRepo,
		poster:       poster,
	}
}

var _ portssvc.HundiSvcFacade = (*hundiService)(nil)

func (s *hundiService) CreateBox(ctx context.Context, actor domain.Actor, req dto.CreateHundiBoxRequest) (*domain.HundiBox, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	box := domain.HundiBox{
		BoxID:    uuid.NewString(),
		TempleID: actor.TempleID,
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Location: strings.TrimSpace(req.Location),
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.hundiRepo.SaveBox(ctx, box); err != nil {
		s.LogError(ctx, err, "Failed to save hundi box")
		return nil, err
	}
	return &box, nil
}

func (s *hundiService) ListBoxes(ctx context.Context, actor domain.Actor) ([]domain.HundiBox, error) {
	return s.hundiRepo.ListBoxes(ctx, actor.TempleID, false)
}

// denominationTotal sums face value times count over the breakdown. Keys that
// are not positive integers make the breakdown invalid.
func denominationTotal(denominations map[string]int) (decimal.Decimal, error) {
	total := decimal.Zero
	for face, count := range denominations {
		value, err := decimal.NewFromString(face)
		if err != nil || !value.IsPositive() {
			return decimal.Zero, fmt.Errorf("invalid denomination %q", face)
		}
		if count < 0 {
			return decimal.Zero, fmt.Errorf("negative count for denomination %q", face)
		}
		total = total.Add(value.Mul(decimal.NewFromInt(int64(count))))
	}
	return total, nil
}

func (s *hundiService) RecordOpening(ctx context.Context, actor domain.Actor, req dto.RecordHundiOpeningRequest) (*domain.HundiOpening, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !req.CountedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: counted amount must be positive", apperrors.ErrValidation)
	}

	total, err := denominationTotal(req.Denominations)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !total.Equal(req.CountedAmount) {
		return nil, fmt.Errorf("%w: denomination total %s does not equal counted amount %s",
			apperrors.ErrValidation, total.StringFixed(2), req.CountedAmount.StringFixed(2))
	}

	box, err := s.hundiRepo.FindBoxByID(ctx, actor.TempleID, req.BoxID)
	if err != nil {
		return nil, err
	}
	if !box.IsActive {
		return nil, fmt.Errorf("%w: hundi box %s is not active", apperrors.ErrValidation, box.Code)
	}

	year := req.OpeningDate.Year()
	docKey := fmt.Sprintf("HUNDI/%s", box.Code)
	seq, err := s.sequenceRepo.NextValue(ctx, actor.TempleID, docKey, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate opening number")
		return nil, err
	}

	now := time.Now().UTC()
	opening := domain.HundiOpening{
		OpeningID:     uuid.NewString(),
		TempleID:      actor.TempleID,
		BoxID:         box.BoxID,
		OpeningNumber: fmt.Sprintf("%s/%d/%04d", docKey, year, seq),
		OpeningDate:   req.OpeningDate,
		CountedAmount: req.CountedAmount,
		Denominations: req.Denominations,
		Witnesses:     req.Witnesses,
		CountedBy:     req.CountedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.hundiRepo.SaveOpening(ctx, opening); err != nil {
		s.LogError(ctx, err, "Failed to save hundi opening")
		return nil, err
	}

	if entry, postErr := s.poster.PostHundiOpening(ctx, actor, &opening); postErr != nil {
		s.LogWarn(ctx, "Hundi opening saved without accounting entry", "opening_id", opening.OpeningID, "error", postErr.Error())
	} else {
		opening.JournalEntryID = &entry.EntryID
		if err := s.hundiRepo.SetOpeningJournalEntryID(ctx, opening.OpeningID, entry.EntryID); err != nil {
			s.LogError(ctx, err, "Failed to link hundi opening to accounting entry", "opening_id", opening.OpeningID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Hundi opening recorded", "opening_id", opening.OpeningID, "opening_number", opening.OpeningNumber)
	return &opening, nil
}

func (s *hundiService) GetOpeningByID(ctx context.Context, actor domain.Actor, openingID string) (*domain.HundiOpening, error) {
	return s.hundiRepo.FindOpeningByID(ctx, actor.TempleID, openingID)
}

func (s *hundiService) ListOpenings(ctx context.Context, actor domain.Actor, boxID string, limit int, nextToken *string) (*dto.ListHundiOpeningsResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	var boxFilter *string
	if boxID != "" {
		boxFilter = &boxID
	}
	openings, next, err := s.hundiRepo.ListOpenings(ctx, actor.TempleID, boxFilter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list hundi openings")
		return nil, err
	}

	resp := &dto.ListHundiOpeningsResponse{
		Openings:  make([]dto.HundiOpeningResponse, 0, len(openings)),
		NextToken: next,
	}
	for i := range openings {
		resp.Openings = append(resp.Openings, dto.ToHundiOpeningResponse(&openings[i]))
	}
	return resp, nil
}
