package repositories

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// DevoteeRepositoryFacade defines persistence operations for devotees.
type DevoteeRepositoryFacade interface {
	SaveDevotee(ctx context.Context, devotee domain.Devotee) error
	FindDevoteeByID(ctx context.Context, templeID, devoteeID string) (*domain.Devotee, error)
	FindDevoteeByPhone(ctx context.Context, templeID, phone string) (*domain.Devotee, error)
	// ListDevotees filters by a free-text search over name/phone when search is non-empty.
	ListDevotees(ctx context.Context, templeID string, search string, limit int, nextToken *string) ([]domain.Devotee, *string, error)
	UpdateDevotee(ctx context.Context, devotee domain.Devotee) error
}

// ListDonationsFilter narrows a donation listing.
type ListDonationsFilter struct {
	FromDate    *time.Time
	ToDate      *time.Time
	Category    *domain.DonationCategory
	PaymentMode *domain.PaymentMode
	DevoteeID   *string
}

// DonationRepositoryFacade defines persistence operations for donations.
type DonationRepositoryFacade interface {
	SaveDonation(ctx context.Context, donation domain.Donation) error
	FindDonationByID(ctx context.Context, templeID, donationID string) (*domain.Donation, error)
	ListDonations(ctx context.Context, templeID string, filter ListDonationsFilter, limit int, nextToken *string) ([]domain.Donation, *string, error)
	// SetJournalEntryID back-links the donation to its posted accounting entry.
	SetJournalEntryID(ctx context.Context, donationID, entryID string) error
}
