package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateHundiBoxRequest registers a new hundi box.
type CreateHundiBoxRequest struct {
	Code     string `json:"code" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// HundiBoxResponse is the public view of a hundi box.
type HundiBoxResponse struct {
	BoxID    string `json:"boxID"`
	Code     string `json:"code"`
	Location string `json:"location"`
	IsActive bool   `json:"isActive"`
}

// ToHundiBoxResponse converts a domain.HundiBox to its response DTO.
func ToHundiBoxResponse(b *domain.HundiBox) HundiBoxResponse {
	return HundiBoxResponse{
		BoxID:    b.BoxID,
		Code:     b.Code,
		Location: b.Location,
		IsActive: b.IsActive,
	}
}

// RecordHundiOpeningRequest records one counted opening of a hundi box.
// The counted amount must equal the sum over denominations of value*count.
type RecordHundiOpeningRequest struct {
	BoxID         string          `json:"boxID" binding:"required"`
	OpeningDate   time.Time       `json:"openingDate" binding:"required"`
	CountedAmount decimal.Decimal `json:"countedAmount" binding:"required"`
	Denominations map[string]int  `json:"denominations" binding:"required"`
	Witnesses     string          `json:"witnesses"`
	CountedBy     string          `json:"countedBy" binding:"required"`
}

// HundiOpeningResponse is the public view of a hundi opening.
type HundiOpeningResponse struct {
	OpeningID        string          `json:"openingID"`
	BoxID            string          `json:"boxID"`
	OpeningNumber    string          `json:"openingNumber"`
	OpeningDate      time.Time       `json:"openingDate"`
	CountedAmount    decimal.Decimal `json:"countedAmount"`
	Denominations    map[string]int  `json:"denominations"`
	Witnesses        string          `json:"witnesses"`
	CountedBy        string          `json:"countedBy"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	AccountingPosted bool            `json:"accountingPosted"`
}

// ToHundiOpeningResponse converts a domain.HundiOpening to its response DTO.
func ToHundiOpeningResponse(o *domain.HundiOpening) HundiOpeningResponse {
	return HundiOpeningResponse{
		OpeningID:        o.OpeningID,
		BoxID:            o.BoxID,
		OpeningNumber:    o.OpeningNumber,
		OpeningDate:      o.OpeningDate,
		CountedAmount:    o.CountedAmount,
		Denominations:    o.Denominations,
		Witnesses:        o.Witnesses,
		CountedBy:        o.CountedBy,
		JournalEntryID:   o.JournalEntryID,
		AccountingPosted: o.JournalEntryID != nil,
	}
}

// ListHundiOpeningsResponse is a page of hundi openings.
type ListHundiOpeningsResponse struct {
	Openings  []HundiOpeningResponse `json:"openings"`
	NextToken *string                `json:"nextToken,omitempty"`
}
