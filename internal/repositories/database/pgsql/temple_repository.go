package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/MandirMitra/mandir_mitra_app/internal/models"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTempleRepository struct {
	BaseRepository
}

// newPgxTempleRepository creates a new repository for temple data.
func newPgxTempleRepository(pool *pgxpool.Pool) portsrepo.TempleRepositoryFacade {
	return &PgxTempleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TempleRepositoryFacade = (*PgxTempleRepository)(nil)

// SaveTemple inserts a new temple.
func (r *PgxTempleRepository) SaveTemple(ctx context.Context, temple domain.Temple) error {
	query := `
		INSERT INTO temples (temple_id, name, address, registration_number, eighty_g_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		temple.TempleID,
		temple.Name,
		temple.Address,
		temple.RegistrationNumber,
		temple.EightyGNumber,
		temple.CreatedAt,
		temple.CreatedBy,
		temple.LastUpdatedAt,
		temple.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save temple %s: %w", temple.TempleID, err)
	}
	return nil
}

// FindTempleByID retrieves a temple by its ID.
func (r *PgxTempleRepository) FindTempleByID(ctx context.Context, templeID string) (*domain.Temple, error) {
	query := `
		SELECT temple_id, name, address, registration_number, eighty_g_number, created_at, created_by, last_updated_at, last_updated_by
		FROM temples
		WHERE temple_id = $1;
	`
	var m models.Temple
	err := r.Pool.QueryRow(ctx, query, templeID).Scan(
		&m.TempleID,
		&m.Name,
		&m.Address,
		&m.RegistrationNumber,
		&m.EightyGNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find temple by ID %s: %w", templeID, err)
	}

	d := mapping.ToDomainTemple(m)
	return &d, nil
}

// UpdateTemple updates temple details.
func (r *PgxTempleRepository) UpdateTemple(ctx context.Context, temple domain.Temple) error {
	query := `
		UPDATE temples
		SET name = $1, address = $2, registration_number = $3, eighty_g_number = $4, last_updated_at = $5, last_updated_by = $6
		WHERE temple_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		temple.Name,
		temple.Address,
		temple.RegistrationNumber,
		temple.EightyGNumber,
		temple.LastUpdatedAt,
		temple.LastUpdatedBy,
		temple.TempleID,
	)
	if err != nil {
		return fmt.Errorf("failed to update temple %s: %w", temple.TempleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
