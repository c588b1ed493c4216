package services

import (
	"context"
	"io"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// DevoteeReaderSvc defines read operations for devotee data
type DevoteeReaderSvc interface {
	// GetDevoteeByID retrieves a devotee by ID.
	GetDevoteeByID(ctx context.Context, actor domain.Actor, devoteeID string) (*domain.Devotee, error)

	// ListDevotees retrieves a paginated list of devotees, optionally filtered
	// by a name/phone search term.
	ListDevotees(ctx context.Context, actor domain.Actor, search string, limit int, nextToken *string) (*dto.ListDevoteesResponse, error)
}

// DevoteeWriterSvc defines write operations for devotee data
type DevoteeWriterSvc interface {
	// CreateDevotee registers a new devotee. Phone must be unique per temple.
	CreateDevotee(ctx context.Context, actor domain.Actor, req dto.CreateDevoteeRequest) (*domain.Devotee, error)

	// UpdateDevotee updates an existing devotee.
	UpdateDevotee(ctx context.Context, actor domain.Actor, devoteeID string, req dto.UpdateDevoteeRequest) (*domain.Devotee, error)

	// DeactivateDevotee marks a devotee as inactive.
	DeactivateDevotee(ctx context.Context, actor domain.Actor, devoteeID string) error
}

// DevoteeBulkSvc defines bulk import/export operations for devotee data
type DevoteeBulkSvc interface {
	// ImportDevoteesCSV bulk-creates devotees from a CSV stream. Invalid rows
	// are reported per row and do not abort the import.
	ImportDevoteesCSV(ctx context.Context, actor domain.Actor, r io.Reader) (*dto.ImportResult, error)

	// ExportDevoteesExcel renders the devotee register as an xlsx workbook.
	ExportDevoteesExcel(ctx context.Context, actor domain.Actor) ([]byte, error)
}

// DevoteeSvcFacade combines all devotee-related service interfaces
type DevoteeSvcFacade interface {
	DevoteeReaderSvc
	DevoteeWriterSvc
	DevoteeBulkSvc
}

// DonationReaderSvc defines read operations for donation data
type DonationReaderSvc interface {
	// GetDonationByID retrieves a donation by ID.
	GetDonationByID(ctx context.Context, actor domain.Actor, donationID string) (*domain.Donation, error)

	// ListDonations retrieves a paginated, filtered list of donations.
	ListDonations(ctx context.Context, actor domain.Actor, params dto.ListDonationsParams) (*dto.ListDonationsResponse, error)
}

// DonationWriterSvc defines write operations for donation data
type DonationWriterSvc interface {
	// CreateDonation receipts a donation and posts it to the ledger. The
	// donation is saved even when the accounting posting fails.
	CreateDonation(ctx context.Context, actor domain.Actor, req dto.CreateDonationRequest) (*domain.Donation, error)
}

// DonationBulkSvc defines bulk and document operations for donation data
type DonationBulkSvc interface {
	// ImportDonationsCSV bulk-creates donations from a CSV stream with
	// per-row error reporting.
	ImportDonationsCSV(ctx context.Context, actor domain.Actor, r io.Reader) (*dto.ImportResult, error)

	// ExportDonationsExcel renders a donation register as an xlsx workbook.
	ExportDonationsExcel(ctx context.Context, actor domain.Actor, params dto.ListDonationsParams) ([]byte, error)

	// GenerateReceiptPDF renders the printable 80G receipt for a donation.
	GenerateReceiptPDF(ctx context.Context, actor domain.Actor, donationID string) ([]byte, error)
}

// DonationSvcFacade combines all donation-related service interfaces
type DonationSvcFacade interface {
	DonationReaderSvc
	DonationWriterSvc
	DonationBulkSvc
}
