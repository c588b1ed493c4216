package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seva is a catalog entry for a ritual service the temple offers.
type Seva struct {
	SevaID            string          `json:"sevaID"`
	TempleID          string          `json:"templeID"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	IncomeAccountCode string          `json:"incomeAccountCode"` // Optional override for the seva income account
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// BookingStatus is the lifecycle of a seva booking.
type BookingStatus string

const (
	BookingBooked    BookingStatus = "BOOKED"
	BookingPerformed BookingStatus = "PERFORMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// SevaBooking records a devotee booking a seva on a date.
type SevaBooking struct {
	BookingID      string          `json:"bookingID"`
	TempleID       string          `json:"templeID"`
	SevaID         string          `json:"sevaID"`
	DevoteeID      *string         `json:"devoteeID,omitempty"`
	BookingDate    time.Time       `json:"bookingDate"`
	PerformedDate  *time.Time      `json:"performedDate,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMode    PaymentMode     `json:"paymentMode"`
	Status         BookingStatus   `json:"status"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}

// SponsorshipStatus tracks how much of a commitment has been received.
type SponsorshipStatus string

const (
	SponsorshipCommitted     SponsorshipStatus = "COMMITTED"
	SponsorshipPartiallyPaid SponsorshipStatus = "PARTIALLY_PAID"
	SponsorshipPaid          SponsorshipStatus = "PAID"
	SponsorshipCancelled     SponsorshipStatus = "CANCELLED"
)

// Sponsorship is a devotee's pledge towards a program or event.
type Sponsorship struct {
	SponsorshipID     string            `json:"sponsorshipID"`
	TempleID          string            `json:"templeID"`
	SponsorshipNumber string            `json:"sponsorshipNumber"` // SP/YYYY/NNNN
	DevoteeID         string            `json:"devoteeID"`
	ProgramName       string            `json:"programName"`
	EventDate         time.Time         `json:"eventDate"`
	CommittedAmount   decimal.Decimal   `json:"committedAmount"`
	ReceivedAmount    decimal.Decimal   `json:"receivedAmount"`
	Status            SponsorshipStatus `json:"status"`
	JournalEntryID    *string           `json:"journalEntryID,omitempty"` // Commitment entry
	AuditFields
}
