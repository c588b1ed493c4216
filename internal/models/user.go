package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	TempleID     string `db:"temple_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

// Temple is the temples table row.
type Temple struct {
	TempleID           string `db:"temple_id"`
	Name               string `db:"name"`
	Address            string `db:"address"`
	RegistrationNumber string `db:"registration_number"`
	EightyGNumber      string `db:"eighty_g_number"`
	AuditFields
}
