package repositories

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// SevaRepositoryFacade defines persistence for the seva catalog and bookings.
type SevaRepositoryFacade interface {
	SaveSeva(ctx context.Context, seva domain.Seva) error
	FindSevaByID(ctx context.Context, templeID, sevaID string) (*domain.Seva, error)
	ListSevas(ctx context.Context, templeID string, activeOnly bool) ([]domain.Seva, error)
	UpdateSeva(ctx context.Context, seva domain.Seva) error

	SaveBooking(ctx context.Context, booking domain.SevaBooking) error
	FindBookingByID(ctx context.Context, templeID, bookingID string) (*domain.SevaBooking, error)
	ListBookings(ctx context.Context, templeID string, status *domain.BookingStatus, from, to *time.Time, limit int, nextToken *string) ([]domain.SevaBooking, *string, error)
	UpdateBooking(ctx context.Context, booking domain.SevaBooking) error
}

// SponsorshipRepositoryFacade defines persistence for sponsorships.
type SponsorshipRepositoryFacade interface {
	SaveSponsorship(ctx context.Context, sp domain.Sponsorship) error
	FindSponsorshipByID(ctx context.Context, templeID, sponsorshipID string) (*domain.Sponsorship, error)
	ListSponsorships(ctx context.Context, templeID string, status *domain.SponsorshipStatus, limit int, nextToken *string) ([]domain.Sponsorship, *string, error)
	UpdateSponsorship(ctx context.Context, sp domain.Sponsorship) error
}
