package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

const sponsorshipDocKey = "SP"

type sponsorshipService struct {
	BaseService
	sponsorshipRepo portsrepo.SponsorshipRepositoryFacade
	devoteeRepo     portsrepo.DevoteeRepositoryFacade
	sequenceRepo    portsrepo.SequenceRepositoryFacade
	poster          portssvc.PostingSvcFacade
	journalSvc      portssvc.JournalSvcFacade
}

// NewSponsorshipService creates a new sponsorship service.
func NewSponsorshipService(
	sponsorshipRepo portsrepo.SponsorshipRepositoryFacade,
	devoteeRepo portsrepo.DevoteeRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	poster portssvc.PostingSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
) portssvc.SponsorshipSvcFacade {
	return &sponsorshipService{
		sponsorshipRepo: sponsorshipRepo,
		devoteeRepo:     devoteeRepo,
		sequenceRepo:    sequenceRepo,
		poster:          poster,
		journalSvc:      journalSvc,
	}
}

var _ portssvc.SponsorshipSvcFacade = (*sponsorshipService)(nil)

func (s *sponsorshipService) CreateSponsorship(ctx context.Context, actor domain.Actor, req dto.CreateSponsorshipRequest) (*domain.Sponsorship, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.CommittedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: committed amount must be positive", apperrors.ErrValidation)
	}

	devotee, err := s.devoteeRepo.FindDevoteeByID(ctx, actor.TempleID, req.DevoteeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: devotee %s not found", apperrors.ErrValidation, req.DevoteeID)
		}
		return nil, err
	}

	year := req.EventDate.Year()
	seq, err := s.sequenceRepo.NextValue(ctx, actor.TempleID, sponsorshipDocKey, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate sponsorship number")
		return nil, err
	}

	now := time.Now().UTC()
	sp := domain.Sponsorship{
		SponsorshipID:     uuid.NewString(),
		TempleID:          actor.TempleID,
		SponsorshipNumber: fmt.Sprintf("%s/%d/%04d", sponsorshipDocKey, year, seq),
		DevoteeID:         devotee.DevoteeID,
		ProgramName:       strings.TrimSpace(req.ProgramName),
		EventDate:         req.EventDate,
		CommittedAmount:   req.CommittedAmount,
		Status:            domain.SponsorshipCommitted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.sponsorshipRepo.SaveSponsorship(ctx, sp); err != nil {
		s.LogError(ctx, err, "Failed to save sponsorship")
		return nil, err
	}

	if entry, postErr := s.poster.PostSponsorshipCommitment(ctx, actor, &sp); postErr != nil {
		s.LogWarn(ctx, "Sponsorship saved without accounting entry", "sponsorship_id", sp.SponsorshipID, "error", postErr.Error())
	} else {
		sp.JournalEntryID = &entry.EntryID
		if err := s.sponsorshipRepo.UpdateSponsorship(ctx, sp); err != nil {
			s.LogError(ctx, err, "Failed to link sponsorship to accounting entry", "sponsorship_id", sp.SponsorshipID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Sponsorship committed", "sponsorship_id", sp.SponsorshipID, "sponsorship_number", sp.SponsorshipNumber)
	return &sp, nil
}

func (s *sponsorshipService) RecordPayment(ctx context.Context, actor domain.Actor, sponsorshipID string, req dto.SponsorshipPaymentRequest) (*domain.Sponsorship, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	sp, err := s.sponsorshipRepo.FindSponsorshipByID(ctx, actor.TempleID, sponsorshipID)
	if err != nil {
		return nil, err
	}
	switch sp.Status {
	case domain.SponsorshipCancelled:
		return nil, fmt.Errorf("%w: sponsorship %s is cancelled", apperrors.ErrValidation, sp.SponsorshipNumber)
	case domain.SponsorshipPaid:
		return nil, fmt.Errorf("%w: sponsorship %s is fully paid", apperrors.ErrValidation, sp.SponsorshipNumber)
	}

	outstanding := sp.CommittedAmount.Sub(sp.ReceivedAmount)
	if req.Amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding amount %s", apperrors.ErrValidation, req.Amount.StringFixed(2), outstanding.StringFixed(2))
	}

	mode := domain.PaymentMode(req.PaymentMode)
	if _, err := s.poster.PostSponsorshipPayment(ctx, actor, sp, req.Amount, mode, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to post sponsorship payment", "sponsorship_id", sponsorshipID)
		return nil, err
	}

	sp.ReceivedAmount = sp.ReceivedAmount.Add(req.Amount)
	if sp.ReceivedAmount.GreaterThanOrEqual(sp.CommittedAmount) {
		sp.Status = domain.SponsorshipPaid
	} else {
		sp.Status = domain.SponsorshipPartiallyPaid
	}
	sp.LastUpdatedAt = time.Now().UTC()
	sp.LastUpdatedBy = actor.UserID

	if err := s.sponsorshipRepo.UpdateSponsorship(ctx, *sp); err != nil {
		s.LogError(ctx, err, "Failed to update sponsorship", "sponsorship_id", sponsorshipID)
		return nil, err
	}
	s.LogInfo(ctx, "Sponsorship payment recorded", "sponsorship_id", sponsorshipID, "status", string(sp.Status))
	return sp, nil
}

func (s *sponsorshipService) CancelSponsorship(ctx context.Context, actor domain.Actor, sponsorshipID string) (*domain.Sponsorship, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	sp, err := s.sponsorshipRepo.FindSponsorshipByID(ctx, actor.TempleID, sponsorshipID)
	if err != nil {
		return nil, err
	}
	if sp.Status == domain.SponsorshipCancelled {
		return nil, fmt.Errorf("%w: sponsorship %s is already cancelled", apperrors.ErrValidation, sp.SponsorshipNumber)
	}
	if sp.ReceivedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: sponsorship %s has received payments and cannot be cancelled", apperrors.ErrValidation, sp.SponsorshipNumber)
	}

	if sp.JournalEntryID != nil {
		if _, err := s.journalSvc.CancelEntry(ctx, actor, *sp.JournalEntryID); err != nil {
			s.LogError(ctx, err, "Failed to reverse sponsorship entry", "sponsorship_id", sponsorshipID)
			return nil, err
		}
	}

	sp.Status = domain.SponsorshipCancelled
	sp.LastUpdatedAt = time.Now().UTC()
	sp.LastUpdatedBy = actor.UserID

	if err := s.sponsorshipRepo.UpdateSponsorship(ctx, *sp); err != nil {
		s.LogError(ctx, err, "Failed to cancel sponsorship", "sponsorship_id", sponsorshipID)
		return nil, err
	}
	s.LogInfo(ctx, "Sponsorship cancelled", "sponsorship_id", sponsorshipID)
	return sp, nil
}

func (s *sponsorshipService) GetSponsorshipByID(ctx context.Context, actor domain.Actor, sponsorshipID string) (*domain.Sponsorship, error) {
	return s.sponsorshipRepo.FindSponsorshipByID(ctx, actor.TempleID, sponsorshipID)
}

func (s *sponsorshipService) ListSponsorships(ctx context.Context, actor domain.Actor, status *string, limit int, nextToken *string) ([]domain.Sponsorship, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var statusFilter *domain.SponsorshipStatus
	if status != nil && *status != "" {
		st := domain.SponsorshipStatus(strings.ToUpper(*status))
		statusFilter = &st
	}
	return s.sponsorshipRepo.ListSponsorships(ctx, actor.TempleID, statusFilter, limit, nextToken)
}
