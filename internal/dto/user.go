package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// CreateUserRequest creates a staff login within the caller's temple.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN ACCOUNTANT STAFF"`
}

// UpdateUserRequest applies partial updates to a user.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty" binding:"omitempty,oneof=ADMIN ACCOUNTANT STAFF"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	TempleID  string    `json:"templeID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		TempleID:  u.TempleID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// CreateTempleRequest registers a new temple tenant.
type CreateTempleRequest struct {
	Name               string `json:"name" binding:"required"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registrationNumber"`
	EightyGNumber      string `json:"eightyGNumber"`
}

// UpdateTempleRequest applies partial updates to a temple.
type UpdateTempleRequest struct {
	Name               *string `json:"name,omitempty"`
	Address            *string `json:"address,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	EightyGNumber      *string `json:"eightyGNumber,omitempty"`
}

// TempleResponse is the public view of a temple.
type TempleResponse struct {
	TempleID           string `json:"templeID"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registrationNumber"`
	EightyGNumber      string `json:"eightyGNumber"`
}

// ToTempleResponse converts a domain.Temple to its response DTO.
func ToTempleResponse(t *domain.Temple) TempleResponse {
	return TempleResponse{
		TempleID:           t.TempleID,
		Name:               t.Name,
		Address:            t.Address,
		RegistrationNumber: t.RegistrationNumber,
		EightyGNumber:      t.EightyGNumber,
	}
}
