package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Devotee is a CRM record for a temple devotee or donor.
// Phone is unique per temple (enforced by a DB constraint).
type Devotee struct {
	DevoteeID string `json:"devoteeID"`
	TempleID  string `json:"templeID"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Gotra     string `json:"gotra"`
	Nakshatra string `json:"nakshatra"`
	Rashi     string `json:"rashi"`
	PANNumber string `json:"panNumber"` // Required for 80G receipts
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// DonationCategory groups donations for receipting and income classification.
type DonationCategory string

const (
	DonationGeneral      DonationCategory = "GENERAL"
	DonationAnnadanam    DonationCategory = "ANNADANAM"
	DonationConstruction DonationCategory = "CONSTRUCTION"
	DonationCorpus       DonationCategory = "CORPUS"
	DonationSpecialPooja DonationCategory = "SPECIAL_POOJA"
)

// Donation records a receipted contribution. DevoteeID may be empty for
// anonymous donations. JournalEntryID is set only when accounting posting
// succeeded; the donation row stands on its own otherwise.
type Donation struct {
	DonationID     string           `json:"donationID"`
	TempleID       string           `json:"templeID"`
	DevoteeID      *string          `json:"devoteeID,omitempty"`
	ReceiptNumber  string           `json:"receiptNumber"` // RCT/YYYY/NNNN
	DonationDate   time.Time        `json:"donationDate"`
	Category       DonationCategory `json:"category"`
	PaymentMode    PaymentMode      `json:"paymentMode"`
	Amount         decimal.Decimal  `json:"amount"`
	Purpose        string           `json:"purpose"`
	EightyG        bool             `json:"eightyG"`
	JournalEntryID *string          `json:"journalEntryID,omitempty"`
	AuditFields
}
