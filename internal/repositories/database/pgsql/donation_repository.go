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

type PgxDonationRepository struct {
	BaseRepository
}

// newPgxDonationRepository creates a new repository for donation data.
func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepositoryFacade {
	return &PgxDonationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonationRepositoryFacade = (*PgxDonationRepository)(nil)

const donationColumns = `donation_id, temple_id, devotee_id, receipt_number, donation_date, category, payment_mode, amount, purpose, eighty_g, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanDonation(row pgx.Row) (domain.Donation, error) {
	var d domain.Donation
	var category, mode string
	err := row.Scan(
		&d.DonationID,
		&d.TempleID,
		&d.DevoteeID,
		&d.ReceiptNumber,
		&d.DonationDate,
		&category,
		&mode,
		&d.Amount,
		&d.Purpose,
		&d.EightyG,
		&d.JournalEntryID,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	d.Category = domain.DonationCategory(category)
	d.PaymentMode = domain.PaymentMode(mode)
	return d, err
}

// SaveDonation inserts a new donation.
func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		donation.DonationID,
		donation.TempleID,
		donation.DevoteeID,
		donation.ReceiptNumber,
		donation.DonationDate,
		string(donation.Category),
		string(donation.PaymentMode),
		donation.Amount,
		donation.Purpose,
		donation.EightyG,
		donation.JournalEntryID,
		donation.CreatedAt,
		donation.CreatedBy,
		donation.LastUpdatedAt,
		donation.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: receipt number %s already exists", apperrors.ErrDuplicate, donation.ReceiptNumber)
		}
		return fmt.Errorf("failed to save donation %s: %w", donation.DonationID, err)
	}
	return nil
}

// FindDonationByID retrieves a donation by ID within a temple.
func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, templeID, donationID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE temple_id = $1 AND donation_id = $2;`

	d, err := scanDonation(r.Pool.QueryRow(ctx, query, templeID, donationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find donation by ID %s: %w", donationID, err)
	}
	return &d, nil
}

// ListDonations retrieves a filtered, token-paginated donation listing.
func (r *PgxDonationRepository) ListDonations(ctx context.Context, templeID string, filter portsrepo.ListDonationsFilter, limit int, nextToken *string) ([]domain.Donation, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + donationColumns + ` FROM donations WHERE temple_id = $1`
	args := []interface{}{templeID}

	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += ` AND donation_date >= $` + strconv.Itoa(len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += ` AND donation_date <= $` + strconv.Itoa(len(args))
	}
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.PaymentMode != nil {
		args = append(args, string(*filter.PaymentMode))
		query += ` AND payment_mode = $` + strconv.Itoa(len(args))
	}
	if filter.DevoteeID != nil {
		args = append(args, *filter.DevoteeID)
		query += ` AND devotee_id = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (donation_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY donation_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query donations for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan donation row: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating donation rows: %w", err)
	}

	var nextTokenVal *string
	if len(donations) > limit {
		last := donations[limit-1]
		token := pagination.EncodeToken(last.DonationDate, last.CreatedAt)
		nextTokenVal = &token
		donations = donations[:limit]
	}
	return donations, nextTokenVal, nil
}

// SetJournalEntryID back-links the donation to its posted accounting entry.
func (r *PgxDonationRepository) SetJournalEntryID(ctx context.Context, donationID, entryID string) error {
	query := `UPDATE donations SET journal_entry_id = $1, last_updated_at = NOW() WHERE donation_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, entryID, donationID)
	if err != nil {
		return fmt.Errorf("failed to link donation %s to entry %s: %w", donationID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
