package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSevaRepository struct {
	BaseRepository
}

// newPgxSevaRepository creates a new repository for the seva catalog and bookings.
func newPgxSevaRepository(pool *pgxpool.Pool) portsrepo.SevaRepositoryFacade {
	return &PgxSevaRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SevaRepositoryFacade = (*PgxSevaRepository)(nil)

const sevaColumns = `seva_id, temple_id, code, name, amount, income_account_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanSeva(row pgx.Row) (domain.Seva, error) {
	var s domain.Seva
	err := row.Scan(
		&s.SevaID,
		&s.TempleID,
		&s.Code,
		&s.Name,
		&s.Amount,
		&s.IncomeAccountCode,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveSeva inserts a new seva catalog entry.
func (r *PgxSevaRepository) SaveSeva(ctx context.Context, seva domain.Seva) error {
	query := `
		INSERT INTO sevas (` + sevaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		seva.SevaID,
		seva.TempleID,
		seva.Code,
		seva.Name,
		seva.Amount,
		seva.IncomeAccountCode,
		seva.IsActive,
		seva.CreatedAt,
		seva.CreatedBy,
		seva.LastUpdatedAt,
		seva.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: seva with code %s already exists", apperrors.ErrDuplicate, seva.Code)
		}
		return fmt.Errorf("failed to save seva %s: %w", seva.SevaID, err)
	}
	return nil
}

// FindSevaByID retrieves a seva by ID within a temple.
func (r *PgxSevaRepository) FindSevaByID(ctx context.Context, templeID, sevaID string) (*domain.Seva, error) {
	query := `SELECT ` + sevaColumns + ` FROM sevas WHERE temple_id = $1 AND seva_id = $2;`

	s, err := scanSeva(r.Pool.QueryRow(ctx, query, templeID, sevaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find seva by ID %s: %w", sevaID, err)
	}
	return &s, nil
}

// ListSevas retrieves the seva catalog ordered by code.
func (r *PgxSevaRepository) ListSevas(ctx context.Context, templeID string, activeOnly bool) ([]domain.Seva, error) {
	query := `SELECT ` + sevaColumns + ` FROM sevas WHERE temple_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sevas for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var sevas []domain.Seva
	for rows.Next() {
		s, err := scanSeva(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seva row: %w", err)
		}
		sevas = append(sevas, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seva rows: %w", err)
	}
	return sevas, nil
}

// UpdateSeva updates mutable seva fields.
func (r *PgxSevaRepository) UpdateSeva(ctx context.Context, seva domain.Seva) error {
	query := `
		UPDATE sevas
		SET name = $1, amount = $2, income_account_code = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE temple_id = $7 AND seva_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		seva.Name,
		seva.Amount,
		seva.IncomeAccountCode,
		seva.IsActive,
		seva.LastUpdatedAt,
		seva.LastUpdatedBy,
		seva.TempleID,
		seva.SevaID,
	)
	if err != nil {
		return fmt.Errorf("failed to update seva %s: %w", seva.SevaID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const bookingColumns = `booking_id, temple_id, seva_id, devotee_id, booking_date, performed_date, amount, payment_mode, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBooking(row pgx.Row) (domain.SevaBooking, error) {
	var b domain.SevaBooking
	var mode, status string
	err := row.Scan(
		&b.BookingID,
		&b.TempleID,
		&b.SevaID,
		&b.DevoteeID,
		&b.BookingDate,
		&b.PerformedDate,
		&b.Amount,
		&mode,
		&status,
		&b.JournalEntryID,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	b.PaymentMode = domain.PaymentMode(mode)
	b.Status = domain.BookingStatus(status)
	return b, err
}

// SaveBooking inserts a new seva booking.
func (r *PgxSevaRepository) SaveBooking(ctx context.Context, booking domain.SevaBooking) error {
	query := `
		INSERT INTO seva_bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		booking.BookingID,
		booking.TempleID,
		booking.SevaID,
		booking.DevoteeID,
		booking.BookingDate,
		booking.PerformedDate,
		booking.Amount,
		string(booking.PaymentMode),
		string(booking.Status),
		booking.JournalEntryID,
		booking.CreatedAt,
		booking.CreatedBy,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save booking %s: %w", booking.BookingID, err)
	}
	return nil
}

// FindBookingByID retrieves a booking by ID within a temple.
func (r *PgxSevaRepository) FindBookingByID(ctx context.Context, templeID, bookingID string) (*domain.SevaBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM seva_bookings WHERE temple_id = $1 AND booking_id = $2;`

	b, err := scanBooking(r.Pool.QueryRow(ctx, query, templeID, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID %s: %w", bookingID, err)
	}
	return &b, nil
}

// ListBookings retrieves a filtered, token-paginated booking listing.
func (r *PgxSevaRepository) ListBookings(ctx context.Context, templeID string, status *domain.BookingStatus, from, to *time.Time, limit int, nextToken *string) ([]domain.SevaBooking, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + bookingColumns + ` FROM seva_bookings WHERE temple_id = $1`
	args := []interface{}{templeID}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += ` AND booking_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND booking_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (booking_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY booking_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query bookings for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var bookings []domain.SevaBooking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	var nextTokenVal *string
	if len(bookings) > limit {
		last := bookings[limit-1]
		token := pagination.EncodeToken(last.BookingDate, last.CreatedAt)
		nextTokenVal = &token
		bookings = bookings[:limit]
	}
	return bookings, nextTokenVal, nil
}

// UpdateBooking updates a booking's lifecycle fields.
func (r *PgxSevaRepository) UpdateBooking(ctx context.Context, booking domain.SevaBooking) error {
	query := `
		UPDATE seva_bookings
		SET performed_date = $1, status = $2, journal_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE temple_id = $6 AND booking_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		booking.PerformedDate,
		string(booking.Status),
		booking.JournalEntryID,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
		booking.TempleID,
		booking.BookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.BookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
