package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDevoteeRepository struct {
	BaseRepository
}

// newPgxDevoteeRepository creates a new repository for devotee data.
func newPgxDevoteeRepository(pool *pgxpool.Pool) portsrepo.DevoteeRepositoryFacade {
	return &PgxDevoteeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DevoteeRepositoryFacade = (*PgxDevoteeRepository)(nil)

const devoteeColumns = `devotee_id, temple_id, name, phone, email, address, gotra, nakshatra, rashi, pan_number, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanDevotee(row pgx.Row) (domain.Devotee, error) {
	var d domain.Devotee
	err := row.Scan(
		&d.DevoteeID,
		&d.TempleID,
		&d.Name,
		&d.Phone,
		&d.Email,
		&d.Address,
		&d.Gotra,
		&d.Nakshatra,
		&d.Rashi,
		&d.PANNumber,
		&d.IsActive,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// SaveDevotee inserts a new devotee.
func (r *PgxDevoteeRepository) SaveDevotee(ctx context.Context, devotee domain.Devotee) error {
	query := `
		INSERT INTO devotees (` + devoteeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		devotee.DevoteeID,
		devotee.TempleID,
		devotee.Name,
		devotee.Phone,
		devotee.Email,
		devotee.Address,
		devotee.Gotra,
		devotee.Nakshatra,
		devotee.Rashi,
		devotee.PANNumber,
		devotee.IsActive,
		devotee.CreatedAt,
		devotee.CreatedBy,
		devotee.LastUpdatedAt,
		devotee.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: devotee with phone %s already exists", apperrors.ErrDuplicate, devotee.Phone)
		}
		return fmt.Errorf("failed to save devotee %s: %w", devotee.DevoteeID, err)
	}
	return nil
}

// FindDevoteeByID retrieves a devotee by ID within a temple.
func (r *PgxDevoteeRepository) FindDevoteeByID(ctx context.Context, templeID, devoteeID string) (*domain.Devotee, error) {
	query := `SELECT ` + devoteeColumns + ` FROM devotees WHERE temple_id = $1 AND devotee_id = $2;`

	d, err := scanDevotee(r.Pool.QueryRow(ctx, query, templeID, devoteeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find devotee by ID %s: %w", devoteeID, err)
	}
	return &d, nil
}

// FindDevoteeByPhone retrieves a devotee by phone within a temple.
func (r *PgxDevoteeRepository) FindDevoteeByPhone(ctx context.Context, templeID, phone string) (*domain.Devotee, error) {
	query := `SELECT ` + devoteeColumns + ` FROM devotees WHERE temple_id = $1 AND phone = $2;`

	d, err := scanDevotee(r.Pool.QueryRow(ctx, query, templeID, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find devotee by phone: %w", err)
	}
	return &d, nil
}

// ListDevotees retrieves a token-paginated devotee listing, filtered by a
// free-text search over name and phone when search is non-empty.
func (r *PgxDevoteeRepository) ListDevotees(ctx context.Context, templeID string, search string, limit int, nextToken *string) ([]domain.Devotee, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + devoteeColumns + ` FROM devotees WHERE temple_id = $1`
	args := []interface{}{templeID}

	if search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (name ILIKE $` + n + ` OR phone ILIKE $` + n + `)`
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query devotees for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var devotees []domain.Devotee
	for rows.Next() {
		d, err := scanDevotee(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan devotee row: %w", err)
		}
		devotees = append(devotees, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating devotee rows: %w", err)
	}

	var nextTokenVal *string
	if len(devotees) > limit {
		token := pagination.EncodeDateBasedToken(devotees[limit-1].CreatedAt)
		nextTokenVal = &token
		devotees = devotees[:limit]
	}
	return devotees, nextTokenVal, nil
}

// UpdateDevotee updates mutable devotee fields.
func (r *PgxDevoteeRepository) UpdateDevotee(ctx context.Context, devotee domain.Devotee) error {
	query := `
		UPDATE devotees
		SET name = $1, phone = $2, email = $3, address = $4, gotra = $5, nakshatra = $6, rashi = $7, pan_number = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE temple_id = $12 AND devotee_id = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		devotee.Name,
		devotee.Phone,
		devotee.Email,
		devotee.Address,
		devotee.Gotra,
		devotee.Nakshatra,
		devotee.Rashi,
		devotee.PANNumber,
		devotee.IsActive,
		devotee.LastUpdatedAt,
		devotee.LastUpdatedBy,
		devotee.TempleID,
		devotee.DevoteeID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: devotee with phone %s already exists", apperrors.ErrDuplicate, devotee.Phone)
		}
		return fmt.Errorf("failed to update devotee %s: %w", devotee.DevoteeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
