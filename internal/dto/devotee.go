package dto

import (
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// CreateDevoteeRequest registers a devotee.
type CreateDevoteeRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required,min=10,max=15"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address"`
	Gotra     string `json:"gotra"`
	Nakshatra string `json:"nakshatra"`
	Rashi     string `json:"rashi"`
	PANNumber string `json:"panNumber"`
}

// UpdateDevoteeRequest applies partial updates to a devotee.
type UpdateDevoteeRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Address   *string `json:"address,omitempty"`
	Gotra     *string `json:"gotra,omitempty"`
	Nakshatra *string `json:"nakshatra,omitempty"`
	Rashi     *string `json:"rashi,omitempty"`
	PANNumber *string `json:"panNumber,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// DevoteeResponse is the public view of a devotee.
type DevoteeResponse struct {
	DevoteeID string `json:"devoteeID"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Gotra     string `json:"gotra"`
	Nakshatra string `json:"nakshatra"`
	Rashi     string `json:"rashi"`
	PANNumber string `json:"panNumber"`
	IsActive  bool   `json:"isActive"`
}

// ToDevoteeResponse converts a domain.Devotee to its response DTO.
func ToDevoteeResponse(d *domain.Devotee) DevoteeResponse {
	return DevoteeResponse{
		DevoteeID: d.DevoteeID,
		Name:      d.Name,
		Phone:     d.Phone,
		Email:     d.Email,
		Address:   d.Address,
		Gotra:     d.Gotra,
		Nakshatra: d.Nakshatra,
		Rashi:     d.Rashi,
		PANNumber: d.PANNumber,
		IsActive:  d.IsActive,
	}
}

// ListDevoteesResponse wraps a paginated devotee listing.
type ListDevoteesResponse struct {
	Devotees  []DevoteeResponse `json:"devotees"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ImportRowError reports a single failed row in a bulk CSV import.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarises a bulk CSV import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
