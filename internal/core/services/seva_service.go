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

type sevaService struct {
	BaseService
	sevaRepo    portsrepo.SevaRepositoryFacade
	devoteeRepo portsrepo.DevoteeRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	poster      portssvc.PostingSvcFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewSevaService creates a new seva service.
func NewSevaService(
	sevaRepo portsrepo.SevaRepositoryFacade,
	devoteeRepo portsrepo.DevoteeRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	poster portssvc.PostingSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
) portssvc.SevaSvcFacade {
	return &sevaService{
		sevaRepo:    sevaRepo,
		devoteeRepo: devoteeRepo,
		accountRepo: accountRepo,
		poster:      poster,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.SevaSvcFacade = (*sevaService)(nil)

func (s *sevaService) CreateSeva(ctx context.Context, actor domain.Actor, req dto.CreateSevaRequest) (*domain.Seva, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: seva amount must be positive", apperrors.ErrValidation)
	}
	if req.IncomeAccountCode != "" {
		if err := s.validateIncomeAccount(ctx, actor.TempleID, req.IncomeAccountCode); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	seva := domain.Seva{
		SevaID:            uuid.NewString(),
		TempleID:          actor.TempleID,
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:              strings.TrimSpace(req.Name),
		Amount:            req.Amount,
		IncomeAccountCode: req.IncomeAccountCode,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.sevaRepo.SaveSeva(ctx, seva); err != nil {
		s.LogError(ctx, err, "Failed to save seva")
		return nil, err
	}
	return &seva, nil
}

func (s *sevaService) validateIncomeAccount(ctx context.Context, templeID, code string) error {
	account, err := s.accountRepo.FindAccountByCode(ctx, templeID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: income account %s does not exist", apperrors.ErrValidation, code)
		}
		return err
	}
	if account.AccountType != domain.Income {
		return fmt.Errorf("%w: account %s is not an income account", apperrors.ErrValidation, code)
	}
	return nil
}

func (s *sevaService) UpdateSeva(ctx context.Context, actor domain.Actor, sevaID string, req dto.UpdateSevaRequest) (*domain.Seva, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	seva, err := s.sevaRepo.FindSevaByID(ctx, actor.TempleID, sevaID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		seva.Name = strings.TrimSpace(*req.Name)
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: seva amount must be positive", apperrors.ErrValidation)
		}
		seva.Amount = *req.Amount
	}
	if req.IncomeAccountCode != nil {
		if *req.IncomeAccountCode != "" {
			if err := s.validateIncomeAccount(ctx, actor.TempleID, *req.IncomeAccountCode); err != nil {
				return nil, err
			}
		}
		seva.IncomeAccountCode = *req.IncomeAccountCode
	}
	if req.IsActive != nil {
		seva.IsActive = *req.IsActive
	}
	seva.LastUpdatedAt = time.Now().UTC()
	seva.LastUpdatedBy = actor.UserID

	if err := s.sevaRepo.UpdateSeva(ctx, *seva); err != nil {
		s.LogError(ctx, err, "Failed to update seva", "seva_id", sevaID)
		return nil, err
	}
	return seva, nil
}

func (s *sevaService) GetSevaByID(ctx context.Context, actor domain.Actor, sevaID string) (*domain.Seva, error) {
	return s.sevaRepo.FindSevaByID(ctx, actor.TempleID, sevaID)
}

func (s *sevaService) ListSevas(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Seva, error) {
	return s.sevaRepo.ListSevas(ctx, actor.TempleID, activeOnly)
}

func (s *sevaService) CreateBooking(ctx context.Context, actor domain.Actor, req dto.CreateBookingRequest) (*domain.SevaBooking, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	seva, err := s.sevaRepo.FindSevaByID(ctx, actor.TempleID, req.SevaID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: seva %s not found", apperrors.ErrValidation, req.SevaID)
		}
		return nil, err
	}
	if !seva.IsActive {
		return nil, fmt.Errorf("%w: seva %s is not active", apperrors.ErrValidation, seva.Code)
	}

	var devoteeID *string
	if req.DevoteeID != "" {
		devotee, err := s.devoteeRepo.FindDevoteeByID(ctx, actor.TempleID, req.DevoteeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: devotee %s not found", apperrors.ErrValidation, req.DevoteeID)
			}
			return nil, err
		}
		devoteeID = &devotee.DevoteeID
	}

	now := time.Now().UTC()
	booking := domain.SevaBooking{
		BookingID:   uuid.NewString(),
		TempleID:    actor.TempleID,
		SevaID:      seva.SevaID,
		DevoteeID:   devoteeID,
		BookingDate: req.BookingDate,
		Amount:      seva.Amount,
		PaymentMode: domain.PaymentMode(req.PaymentMode),
		Status:      domain.BookingBooked,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.sevaRepo.SaveBooking(ctx, booking); err != nil {
		s.LogError(ctx, err, "Failed to save booking")
		return nil, err
	}

	if entry, postErr := s.poster.PostSevaBooking(ctx, actor, &booking, seva); postErr != nil {
		s.LogWarn(ctx, "Booking saved without accounting entry", "booking_id", booking.BookingID, "error", postErr.Error())
	} else {
		booking.JournalEntryID = &entry.EntryID
		if err := s.sevaRepo.UpdateBooking(ctx, booking); err != nil {
			s.LogError(ctx, err, "Failed to link booking to accounting entry", "booking_id", booking.BookingID)
			return nil, err
		}
	}
	s.LogInfo(ctx, "Seva booked", "booking_id", booking.BookingID, "seva_code", seva.Code)
	return &booking, nil
}

func (s *sevaService) MarkPerformed(ctx context.Context, actor domain.Actor, bookingID string, performedDate time.Time) (*domain.SevaBooking, error) {
	if err := s.RequireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}

	booking, err := s.sevaRepo.FindBookingByID(ctx, actor.TempleID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingBooked {
		return nil, fmt.Errorf("%w: booking %s is %s, only BOOKED bookings can be performed", apperrors.ErrValidation, bookingID, booking.Status)
	}

	booking.Status = domain.BookingPerformed
	booking.PerformedDate = &performedDate
	booking.LastUpdatedAt = time.Now().UTC()
	booking.LastUpdatedBy = actor.UserID

	if err := s.sevaRepo.UpdateBooking(ctx, *booking); err != nil {
		s.LogError(ctx, err, "Failed to mark booking performed", "booking_id", bookingID)
		return nil, err
	}
	return booking, nil
}

func (s *sevaService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.SevaBooking, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	booking, err := s.sevaRepo.FindBookingByID(ctx, actor.TempleID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking %s is already cancelled", apperrors.ErrValidation, bookingID)
	}

	if booking.JournalEntryID != nil {
		if _, err := s.journalSvc.CancelEntry(ctx, actor, *booking.JournalEntryID); err != nil {
			s.LogError(ctx, err, "Failed to reverse booking entry", "booking_id", bookingID)
			return nil, err
		}
	}

	booking.Status = domain.BookingCancelled
	booking.LastUpdatedAt = time.Now().UTC()
	booking.LastUpdatedBy = actor.UserID

	if err := s.sevaRepo.UpdateBooking(ctx, *booking); err != nil {
		s.LogError(ctx, err, "Failed to cancel booking", "booking_id", bookingID)
		return nil, err
	}
	s.LogInfo(ctx, "Booking cancelled", "booking_id", bookingID)
	return booking, nil
}

func (s *sevaService) GetBookingByID(ctx context.Context, actor domain.Actor, bookingID string) (*domain.SevaBooking, error) {
	return s.sevaRepo.FindBookingByID(ctx, actor.TempleID, bookingID)
}

func (s *sevaService) ListBookings(ctx context.Context, actor domain.Actor, from, to *time.Time, limit int, nextToken *string) (*dto.ListBookingsResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	bookings, next, err := s.sevaRepo.ListBookings(ctx, actor.TempleID, nil, from, to, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings")
		return nil, err
	}

	resp := &dto.ListBookingsResponse{
		Bookings:  make([]dto.BookingResponse, 0, len(bookings)),
		NextToken: next,
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, dto.ToBookingResponse(&bookings[i]))
	}
	return resp, nil
}
