package domain

import "time"

// UserRole is the role a user holds within their temple.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleStaff      UserRole = "STAFF"
)

// roleRank orders roles by privilege; higher ranks may do everything lower ranks can.
var roleRank = map[UserRole]int{
	RoleStaff:      1,
	RoleAccountant: 2,
	RoleAdmin:      3,
}

// HasAtLeast reports whether the role grants the privileges of required.
func (r UserRole) HasAtLeast(required UserRole) bool {
	return roleRank[r] >= roleRank[required]
}

// User represents a temple staff member able to log into the system.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	TempleID     string   `json:"templeID"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token state; the raw token is never stored, only its SHA-256 hash.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Temple is the tenant all other records are scoped to.
type Temple struct {
	TempleID           string `json:"templeID"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registrationNumber"`
	EightyGNumber      string `json:"eightyGNumber"` // 80G exemption certificate number
	AuditFields
}
