package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest records a donation. DevoteeID may be empty for
// anonymous donations.
type CreateDonationRequest struct {
	DevoteeID    string          `json:"devoteeID"`
	DonationDate time.Time       `json:"donationDate" binding:"required"`
	Category     string          `json:"category" binding:"required,oneof=GENERAL ANNADANAM CONSTRUCTION CORPUS SPECIAL_POOJA"`
	PaymentMode  string          `json:"paymentMode" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Purpose      string          `json:"purpose"`
	EightyG      bool            `json:"eightyG"`
}

// DonationResponse is the public view of a donation. AccountingPosted reports
// whether the ledger entry was created; the donation stands either way.
type DonationResponse struct {
	DonationID       string          `json:"donationID"`
	DevoteeID        *string         `json:"devoteeID,omitempty"`
	ReceiptNumber    string          `json:"receiptNumber"`
	DonationDate     time.Time       `json:"donationDate"`
	Category         string          `json:"category"`
	PaymentMode      string          `json:"paymentMode"`
	Amount           decimal.Decimal `json:"amount"`
	Purpose          string          `json:"purpose"`
	EightyG          bool            `json:"eightyG"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	AccountingPosted bool            `json:"accountingPosted"`
}

// ToDonationResponse converts a domain.Donation to its response DTO.
func ToDonationResponse(d *domain.Donation) DonationResponse {
	return DonationResponse{
		DonationID:       d.DonationID,
		DevoteeID:        d.DevoteeID,
		ReceiptNumber:    d.ReceiptNumber,
		DonationDate:     d.DonationDate,
		Category:         string(d.Category),
		PaymentMode:      string(d.PaymentMode),
		Amount:           d.Amount,
		Purpose:          d.Purpose,
		EightyG:          d.EightyG,
		JournalEntryID:   d.JournalEntryID,
		AccountingPosted: d.JournalEntryID != nil,
	}
}

// ListDonationsParams carries donation list filters from the query string.
type ListDonationsParams struct {
	FromDate    *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"toDate" time_format:"2006-01-02"`
	Category    *string    `form:"category"`
	PaymentMode *string    `form:"paymentMode"`
	DevoteeID   *string    `form:"devoteeID"`
	Limit       int        `form:"limit,default=20"`
	NextToken   *string    `form:"nextToken"`
}

// ListDonationsResponse wraps a paginated donation listing.
type ListDonationsResponse struct {
	Donations []DonationResponse `json:"donations"`
	NextToken *string            `json:"nextToken,omitempty"`
}
