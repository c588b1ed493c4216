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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, temple_id, code, name, account_type, sub_type, parent_account_id, opening_debit, opening_credit, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TempleID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.SubType,
		&m.ParentAccountID,
		&m.OpeningDebit,
		&m.OpeningCredit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TempleID,
		m.Code,
		m.Name,
		m.AccountType,
		m.SubType,
		m.ParentAccountID,
		m.OpeningDebit,
		m.OpeningCredit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID within a temple.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, templeID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE temple_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, templeID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its 5-digit code within a temple.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, templeID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE temple_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, templeID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}

	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, templeID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE temple_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, templeID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return result, nil
}

// ListAccounts retrieves all accounts of a temple ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, templeID string, activeOnly bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE temple_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccount updates mutable account fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $1, sub_type = $2, parent_account_id = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE temple_id = $7 AND account_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.SubType,
		m.ParentAccountID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TempleID,
		m.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMapping retrieves a temple's mapping override for a posting purpose.
func (r *PgxAccountRepository) FindMapping(ctx context.Context, templeID, purpose string) (*domain.AccountMapping, error) {
	query := `
		SELECT mapping_id, temple_id, purpose, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM account_mappings
		WHERE temple_id = $1 AND purpose = $2;
	`
	var m models.AccountMapping
	err := r.Pool.QueryRow(ctx, query, templeID, purpose).Scan(
		&m.MappingID,
		&m.TempleID,
		&m.Purpose,
		&m.AccountCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mapping for purpose %s: %w", purpose, err)
	}

	d := mapping.ToDomainAccountMapping(m)
	return &d, nil
}

// UpsertMapping inserts or replaces the account code for a posting purpose.
func (r *PgxAccountRepository) UpsertMapping(ctx context.Context, am domain.AccountMapping) error {
	query := `
		INSERT INTO account_mappings (mapping_id, temple_id, purpose, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (temple_id, purpose)
		DO UPDATE SET account_code = EXCLUDED.account_code, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		am.MappingID,
		am.TempleID,
		am.Purpose,
		am.AccountCode,
		am.CreatedAt,
		am.CreatedBy,
		am.LastUpdatedAt,
		am.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping for purpose %s: %w", am.Purpose, err)
	}
	return nil
}

// ListMappings retrieves all mapping overrides for a temple.
func (r *PgxAccountRepository) ListMappings(ctx context.Context, templeID string) ([]domain.AccountMapping, error) {
	query := `
		SELECT mapping_id, temple_id, purpose, account_code, created_at, created_by, last_updated_at, last_updated_by
		FROM account_mappings
		WHERE temple_id = $1
		ORDER BY purpose;
	`
	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var result []domain.AccountMapping
	for rows.Next() {
		var m models.AccountMapping
		err := rows.Scan(
			&m.MappingID,
			&m.TempleID,
			&m.Purpose,
			&m.AccountCode,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mapping row: %w", err)
		}
		result = append(result, mapping.ToDomainAccountMapping(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping rows: %w", err)
	}
	return result, nil
}
