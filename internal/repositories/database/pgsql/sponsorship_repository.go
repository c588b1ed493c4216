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

type PgxSponsorshipRepository struct {
	BaseRepository
}

// newPgxSponsorshipRepository creates a new repository for sponsorship data.
func newPgxSponsorshipRepository(pool *pgxpool.Pool) portsrepo.SponsorshipRepositoryFacade {
	return &PgxSponsorshipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SponsorshipRepositoryFacade = (*PgxSponsorshipRepository)(nil)

const sponsorshipColumns = `sponsorship_id, temple_id, sponsorship_number, devotee_id, program_name, event_date, committed_amount, received_amount, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanSponsorship(row pgx.Row) (domain.Sponsorship, error) {
	var s domain.Sponsorship
	var status string
	err := row.Scan(
		&s.SponsorshipID,
		&s.TempleID,
		&s.SponsorshipNumber,
		&s.DevoteeID,
		&s.ProgramName,
		&s.EventDate,
		&s.CommittedAmount,
		&s.ReceivedAmount,
		&status,
		&s.JournalEntryID,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	s.Status = domain.SponsorshipStatus(status)
	return s, err
}

// SaveSponsorship inserts a new sponsorship commitment.
func (r *PgxSponsorshipRepository) SaveSponsorship(ctx context.Context, sp domain.Sponsorship) error {
	query := `
		INSERT INTO sponsorships (` + sponsorshipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		sp.SponsorshipID,
		sp.TempleID,
		sp.SponsorshipNumber,
		sp.DevoteeID,
		sp.ProgramName,
		sp.EventDate,
		sp.CommittedAmount,
		sp.ReceivedAmount,
		string(sp.Status),
		sp.JournalEntryID,
		sp.CreatedAt,
		sp.CreatedBy,
		sp.LastUpdatedAt,
		sp.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sponsorship number %s already exists", apperrors.ErrDuplicate, sp.SponsorshipNumber)
		}
		return fmt.Errorf("failed to save sponsorship %s: %w", sp.SponsorshipID, err)
	}
	return nil
}

// FindSponsorshipByID retrieves a sponsorship by ID within a temple.
func (r *PgxSponsorshipRepository) FindSponsorshipByID(ctx context.Context, templeID, sponsorshipID string) (*domain.Sponsorship, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM sponsorships WHERE temple_id = $1 AND sponsorship_id = $2;`

	s, err := scanSponsorship(r.Pool.QueryRow(ctx, query, templeID, sponsorshipID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sponsorship by ID %s: %w", sponsorshipID, err)
	}
	return &s, nil
}

// ListSponsorships retrieves a token-paginated sponsorship listing.
func (r *PgxSponsorshipRepository) ListSponsorships(ctx context.Context, templeID string, status *domain.SponsorshipStatus, limit int, nextToken *string) ([]domain.Sponsorship, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + sponsorshipColumns + ` FROM sponsorships WHERE temple_id = $1`
	args := []interface{}{templeID}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
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
		return nil, nil, fmt.Errorf("failed to query sponsorships for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var sponsorships []domain.Sponsorship
	for rows.Next() {
		s, err := scanSponsorship(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan sponsorship row: %w", err)
		}
		sponsorships = append(sponsorships, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating sponsorship rows: %w", err)
	}

	var nextTokenVal *string
	if len(sponsorships) > limit {
		token := pagination.EncodeDateBasedToken(sponsorships[limit-1].CreatedAt)
		nextTokenVal = &token
		sponsorships = sponsorships[:limit]
	}
	return sponsorships, nextTokenVal, nil
}

// UpdateSponsorship updates a sponsorship's received amount and status.
func (r *PgxSponsorshipRepository) UpdateSponsorship(ctx context.Context, sp domain.Sponsorship) error {
	query := `
		UPDATE sponsorships
		SET received_amount = $1, status = $2, journal_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE temple_id = $6 AND sponsorship_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		sp.ReceivedAmount,
		string(sp.Status),
		sp.JournalEntryID,
		sp.LastUpdatedAt,
		sp.LastUpdatedBy,
		sp.TempleID,
		sp.SponsorshipID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sponsorship %s: %w", sp.SponsorshipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
