package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSevaRequest adds a seva to the catalog.
type CreateSevaRequest struct {
	Code              string          `json:"code" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	IncomeAccountCode string          `json:"incomeAccountCode" binding:"omitempty,numeric,min=4,max=5"`
}

// UpdateSevaRequest applies partial updates to a catalog seva.
type UpdateSevaRequest struct {
	Name              *string          `json:"name,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	IncomeAccountCode *string          `json:"incomeAccountCode,omitempty"`
	IsActive          *bool            `json:"isActive,omitempty"`
}

// SevaResponse is the public view of a catalog seva.
type SevaResponse struct {
	SevaID            string          `json:"sevaID"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	IncomeAccountCode string          `json:"incomeAccountCode,omitempty"`
	IsActive          bool            `json:"isActive"`
}

// ToSevaResponse converts a domain.Seva to its response DTO.
func ToSevaResponse(s *domain.Seva) SevaResponse {
	return SevaResponse{
		SevaID:            s.SevaID,
		Code:              s.Code,
		Name:              s.Name,
		Amount:            s.Amount,
		IncomeAccountCode: s.IncomeAccountCode,
		IsActive:          s.IsActive,
	}
}

// CreateBookingRequest books a seva for a devotee.
type CreateBookingRequest struct {
	SevaID      string    `json:"sevaID" binding:"required"`
	DevoteeID   string    `json:"devoteeID"`
	BookingDate time.Time `json:"bookingDate" binding:"required"`
	PaymentMode string    `json:"paymentMode" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
}

// BookingResponse is the public view of a seva booking.
type BookingResponse struct {
	BookingID        string          `json:"bookingID"`
	SevaID           string          `json:"sevaID"`
	DevoteeID        *string         `json:"devoteeID,omitempty"`
	BookingDate      time.Time       `json:"bookingDate"`
	PerformedDate    *time.Time      `json:"performedDate,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMode      string          `json:"paymentMode"`
	Status           string          `json:"status"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	AccountingPosted bool            `json:"accountingPosted"`
}

// ToBookingResponse converts a domain.SevaBooking to its response DTO.
func ToBookingResponse(b *domain.SevaBooking) BookingResponse {
	return BookingResponse{
		BookingID:        b.BookingID,
		SevaID:           b.SevaID,
		DevoteeID:        b.DevoteeID,
		BookingDate:      b.BookingDate,
		PerformedDate:    b.PerformedDate,
		Amount:           b.Amount,
		PaymentMode:      string(b.PaymentMode),
		Status:           string(b.Status),
		JournalEntryID:   b.JournalEntryID,
		AccountingPosted: b.JournalEntryID != nil,
	}
}

// ListBookingsResponse wraps a paginated booking listing.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// CreateSponsorshipRequest records a sponsorship commitment.
type CreateSponsorshipRequest struct {
	DevoteeID       string          `json:"devoteeID" binding:"required"`
	ProgramName     string          `json:"programName" binding:"required"`
	EventDate       time.Time       `json:"eventDate" binding:"required"`
	CommittedAmount decimal.Decimal `json:"committedAmount" binding:"required"`
}

// SponsorshipPaymentRequest records money received against a commitment.
type SponsorshipPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode string          `json:"paymentMode" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
}

// SponsorshipResponse is the public view of a sponsorship.
type SponsorshipResponse struct {
	SponsorshipID     string          `json:"sponsorshipID"`
	SponsorshipNumber string          `json:"sponsorshipNumber"`
	DevoteeID         string          `json:"devoteeID"`
	ProgramName       string          `json:"programName"`
	EventDate         time.Time       `json:"eventDate"`
	CommittedAmount   decimal.Decimal `json:"committedAmount"`
	ReceivedAmount    decimal.Decimal `json:"receivedAmount"`
	Status            string          `json:"status"`
	JournalEntryID    *string         `json:"journalEntryID,omitempty"`
	AccountingPosted  bool            `json:"accountingPosted"`
}

// ToSponsorshipResponse converts a domain.Sponsorship to its response DTO.
func ToSponsorshipResponse(s *domain.Sponsorship) SponsorshipResponse {
	return SponsorshipResponse{
		SponsorshipID:     s.SponsorshipID,
		SponsorshipNumber: s.SponsorshipNumber,
		DevoteeID:         s.DevoteeID,
		ProgramName:       s.ProgramName,
		EventDate:         s.EventDate,
		CommittedAmount:   s.CommittedAmount,
		ReceivedAmount:    s.ReceivedAmount,
		Status:            string(s.Status),
		JournalEntryID:    s.JournalEntryID,
		AccountingPosted:  s.JournalEntryID != nil,
	}
}
