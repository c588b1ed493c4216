package mapping

import (
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		TempleID:               d.TempleID,
		Username:               d.Username,
		Name:                   d.Name,
		PasswordHash:           d.PasswordHash,
		Role:                   string(d.Role),
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       toNullString(d.RefreshTokenHash),
		RefreshTokenExpiryTime: ptrToNullTime(d.RefreshTokenExpiryTime),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		TempleID:               m.TempleID,
		Username:               m.Username,
		Name:                   m.Name,
		PasswordHash:           m.PasswordHash,
		Role:                   domain.UserRole(m.Role),
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		DeletedAt:              m.DeletedAt,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: nullTimeToPtr(m.RefreshTokenExpiryTime),
	}
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToDomainTemple converts a model Temple to a domain Temple
func ToDomainTemple(m models.Temple) domain.Temple {
	return domain.Temple{
		TempleID:           m.TempleID,
		Name:               m.Name,
		Address:            m.Address,
		RegistrationNumber: m.RegistrationNumber,
		EightyGNumber:      m.EightyGNumber,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
