package services

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// SevaCatalogSvc defines operations on the seva catalog
type SevaCatalogSvc interface {
	// CreateSeva adds a seva to the catalog. Accountant or above.
	CreateSeva(ctx context.Context, actor domain.Actor, req dto.CreateSevaRequest) (*domain.Seva, error)

	// UpdateSeva updates a catalog entry.
	UpdateSeva(ctx context.Context, actor domain.Actor, sevaID string, req dto.UpdateSevaRequest) (*domain.Seva, error)

	// GetSevaByID retrieves a seva by ID.
	GetSevaByID(ctx context.Context, actor domain.Actor, sevaID string) (*domain.Seva, error)

	// ListSevas retrieves the catalog, optionally only active sevas.
	ListSevas(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Seva, error)
}

// SevaBookingSvc defines operations on seva bookings
type SevaBookingSvc interface {
	// CreateBooking books a seva for a date, collects payment and posts the income.
	CreateBooking(ctx context.Context, actor domain.Actor, req dto.CreateBookingRequest) (*domain.SevaBooking, error)

	// MarkPerformed records that a booked seva was performed.
	MarkPerformed(ctx context.Context, actor domain.Actor, bookingID string, performedDate time.Time) (*domain.SevaBooking, error)

	// CancelBooking cancels a booking and reverses its income posting.
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.SevaBooking, error)

	// GetBookingByID retrieves a booking by ID.
	GetBookingByID(ctx context.Context, actor domain.Actor, bookingID string) (*domain.SevaBooking, error)

	// ListBookings retrieves a paginated list of bookings for a date range.
	ListBookings(ctx context.Context, actor domain.Actor, from, to *time.Time, limit int, nextToken *string) (*dto.ListBookingsResponse, error)
}

// SevaSvcFacade combines the seva catalog and booking interfaces
type SevaSvcFacade interface {
	SevaCatalogSvc
	SevaBookingSvc
}

// SponsorshipSvcFacade defines operations on sponsorship pledges.
type SponsorshipSvcFacade interface {
	// CreateSponsorship records a commitment and posts the receivable.
	CreateSponsorship(ctx context.Context, actor domain.Actor, req dto.CreateSponsorshipRequest) (*domain.Sponsorship, error)

	// RecordPayment applies a payment against the receivable and moves the
	// status to PARTIALLY_PAID or PAID.
	RecordPayment(ctx context.Context, actor domain.Actor, sponsorshipID string, req dto.SponsorshipPaymentRequest) (*domain.Sponsorship, error)

	// CancelSponsorship cancels an unpaid commitment and reverses its posting.
	CancelSponsorship(ctx context.Context, actor domain.Actor, sponsorshipID string) (*domain.Sponsorship, error)

	// GetSponsorshipByID retrieves a sponsorship by ID.
	GetSponsorshipByID(ctx context.Context, actor domain.Actor, sponsorshipID string) (*domain.Sponsorship, error)

	// ListSponsorships retrieves the sponsorships of a temple.
	ListSponsorships(ctx context.Context, actor domain.Actor, status *string, limit int, nextToken *string) ([]domain.Sponsorship, *string, error)
}
