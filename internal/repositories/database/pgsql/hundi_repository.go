package pgsql

import (
	"context"
	"encoding/json"
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

type PgxHundiRepository struct {
	BaseRepository
}

// newPgxHundiRepository creates a new repository for hundi boxes and openings.
func newPgxHundiRepository(pool *pgxpool.Pool) portsrepo.HundiRepositoryFacade {
	return &PgxHundiRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HundiRepositoryFacade = (*PgxHundiRepository)(nil)

const hundiBoxColumns = `box_id, temple_id, code, location, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanHundiBox(row pgx.Row) (domain.HundiBox, error) {
	var b domain.HundiBox
	err := row.Scan(
		&b.BoxID,
		&b.TempleID,
		&b.Code,
		&b.Location,
		&b.IsActive,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

// SaveBox inserts a new hundi box.
func (r *PgxHundiRepository) SaveBox(ctx context.Context, box domain.HundiBox) error {
	query := `
		INSERT INTO hundi_boxes (` + hundiBoxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		box.BoxID,
		box.TempleID,
		box.Code,
		box.Location,
		box.IsActive,
		box.CreatedAt,
		box.CreatedBy,
		box.LastUpdatedAt,
		box.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: hundi box with code %s already exists", apperrors.ErrDuplicate, box.Code)
		}
		return fmt.Errorf("failed to save hundi box %s: %w", box.BoxID, err)
	}
	return nil
}

// FindBoxByID retrieves one hundi box by ID within a temple.
func (r *PgxHundiRepository) FindBoxByID(ctx context.Context, templeID, boxID string) (*domain.HundiBox, error) {
	query := `SELECT ` + hundiBoxColumns + ` FROM hundi_boxes WHERE temple_id = $1 AND box_id = $2;`

	b, err := scanHundiBox(r.Pool.QueryRow(ctx, query, templeID, boxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find hundi box by ID %s: %w", boxID, err)
	}
	return &b, nil
}

// ListBoxes retrieves the temple's hundi boxes, optionally active ones only.
func (r *PgxHundiRepository) ListBoxes(ctx context.Context, templeID string, activeOnly bool) ([]domain.HundiBox, error) {
	query := `SELECT ` + hundiBoxColumns + ` FROM hundi_boxes WHERE temple_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hundi boxes for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var boxes []domain.HundiBox
	for rows.Next() {
		b, err := scanHundiBox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hundi box row: %w", err)
		}
		boxes = append(boxes, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hundi box rows: %w", err)
	}
	return boxes, nil
}

// UpdateBox updates a box's location and active flag.
func (r *PgxHundiRepository) UpdateBox(ctx context.Context, box domain.HundiBox) error {
	query := `
		UPDATE hundi_boxes
		SET location = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE temple_id = $5 AND box_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		box.Location,
		box.IsActive,
		box.LastUpdatedAt,
		box.LastUpdatedBy,
		box.TempleID,
		box.BoxID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hundi box %s: %w", box.BoxID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const hundiOpeningColumns = `opening_id, temple_id, box_id, opening_number, opening_date, counted_amount, denominations, witnesses, counted_by, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanHundiOpening(row pgx.Row) (domain.HundiOpening, error) {
	var o domain.HundiOpening
	var denoms []byte
	err := row.Scan(
		&o.OpeningID,
		&o.TempleID,
		&o.BoxID,
		&o.OpeningNumber,
		&o.OpeningDate,
		&o.CountedAmount,
		&denoms,
		&o.Witnesses,
		&o.CountedBy,
		&o.JournalEntryID,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	if err != nil {
		return o, err
	}
	if len(denoms) > 0 {
		if err := json.Unmarshal(denoms, &o.Denominations); err != nil {
			return o, fmt.Errorf("failed to decode denominations for opening %s: %w", o.OpeningID, err)
		}
	}
	return o, nil
}

// SaveOpening inserts a counted hundi opening. Denominations go in as JSONB.
func (r *PgxHundiRepository) SaveOpening(ctx context.Context, opening domain.HundiOpening) error {
	denoms, err := json.Marshal(opening.Denominations)
	if err != nil {
		return fmt.Errorf("failed to encode denominations for opening %s: %w", opening.OpeningID, err)
	}

	query := `
		INSERT INTO hundi_openings (` + hundiOpeningColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = r.Pool.Exec(ctx, query,
		opening.OpeningID,
		opening.TempleID,
		opening.BoxID,
		opening.OpeningNumber,
		opening.OpeningDate,
		opening.CountedAmount,
		denoms,
		opening.Witnesses,
		opening.CountedBy,
		opening.JournalEntryID,
		opening.CreatedAt,
		opening.CreatedBy,
		opening.LastUpdatedAt,
		opening.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: opening number %s already exists", apperrors.ErrDuplicate, opening.OpeningNumber)
		}
		return fmt.Errorf("failed to save hundi opening %s: %w", opening.OpeningID, err)
	}
	return nil
}

// SetOpeningJournalEntryID back-links the opening to its posted accounting entry.
func (r *PgxHundiRepository) SetOpeningJournalEntryID(ctx context.Context, openingID, entryID string) error {
	query := `UPDATE hundi_openings SET journal_entry_id = $1, last_updated_at = NOW() WHERE opening_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, entryID, openingID)
	if err != nil {
		return fmt.Errorf("failed to link hundi opening %s to entry %s: %w", openingID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindOpeningByID retrieves one hundi opening by ID within a temple.
func (r *PgxHundiRepository) FindOpeningByID(ctx context.Context, templeID, openingID string) (*domain.HundiOpening, error) {
	query := `SELECT ` + hundiOpeningColumns + ` FROM hundi_openings WHERE temple_id = $1 AND opening_id = $2;`

	o, err := scanHundiOpening(r.Pool.QueryRow(ctx, query, templeID, openingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find hundi opening by ID %s: %w", openingID, err)
	}
	return &o, nil
}

// ListOpenings retrieves token-paginated openings, optionally for one box.
func (r *PgxHundiRepository) ListOpenings(ctx context.Context, templeID string, boxID *string, limit int, nextToken *string) ([]domain.HundiOpening, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + hundiOpeningColumns + ` FROM hundi_openings WHERE temple_id = $1`
	args := []interface{}{templeID}

	if boxID != nil && *boxID != "" {
		args = append(args, *boxID)
		query += ` AND box_id = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate)
		dateArg := strconv.Itoa(len(args))
		args = append(args, lastCreatedAt)
		query += ` AND (opening_date, created_at) < ($` + dateArg + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY opening_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query hundi openings for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var openings []domain.HundiOpening
	for rows.Next() {
		o, err := scanHundiOpening(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan hundi opening row: %w", err)
		}
		openings = append(openings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating hundi opening rows: %w", err)
	}

	var nextTokenVal *string
	if len(openings) > limit {
		last := openings[limit-1]
		token := pagination.EncodeToken(last.OpeningDate, last.CreatedAt)
		nextTokenVal = &token
		openings = openings[:limit]
	}
	return openings, nextTokenVal, nil
}
