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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for fixed assets and CWIP projects.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, temple_id, asset_number, name, category, purchase_date, purchase_cost, payment_mode, location, status, disposal_date, disposal_proceeds, disposal_reason, disposal_approver, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (domain.Asset, error) {
	var a domain.Asset
	var category, mode, status string
	err := row.Scan(
		&a.AssetID,
		&a.TempleID,
		&a.AssetNumber,
		&a.Name,
		&category,
		&a.PurchaseDate,
		&a.PurchaseCost,
		&mode,
		&a.Location,
		&status,
		&a.DisposalDate,
		&a.DisposalProceeds,
		&a.DisposalReason,
		&a.DisposalApprover,
		&a.JournalEntryID,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	a.Category = domain.AssetCategory(category)
	a.PaymentMode = domain.PaymentMode(mode)
	a.Status = domain.AssetStatus(status)
	return a, err
}

// SaveAsset inserts a new asset register entry.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID,
		asset.TempleID,
		asset.AssetNumber,
		asset.Name,
		string(asset.Category),
		asset.PurchaseDate,
		asset.PurchaseCost,
		string(asset.PaymentMode),
		asset.Location,
		string(asset.Status),
		asset.DisposalDate,
		asset.DisposalProceeds,
		asset.DisposalReason,
		asset.DisposalApprover,
		asset.JournalEntryID,
		asset.CreatedAt,
		asset.CreatedBy,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset %s: %w", asset.AssetID, err)
	}
	return nil
}

// FindAssetByID retrieves an asset by ID within a temple.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, templeID, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE temple_id = $1 AND asset_id = $2;`

	a, err := scanAsset(r.Pool.QueryRow(ctx, query, templeID, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}
	return &a, nil
}

// ListAssets retrieves a token-paginated asset register listing.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, templeID string, status *domain.AssetStatus, limit int, nextToken *string) ([]domain.Asset, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + assetColumns + ` FROM assets WHERE temple_id = $1`
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
		return nil, nil, fmt.Errorf("failed to query assets for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	var nextTokenVal *string
	if len(assets) > limit {
		token := pagination.EncodeDateBasedToken(assets[limit-1].CreatedAt)
		nextTokenVal = &token
		assets = assets[:limit]
	}
	return assets, nextTokenVal, nil
}

// UpdateAsset updates an asset's lifecycle fields.
func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		UPDATE assets
		SET name = $1, location = $2, status = $3, disposal_date = $4, disposal_proceeds = $5, disposal_reason = $6, disposal_approver = $7, journal_entry_id = $8, last_updated_at = $9, last_updated_by = $10
		WHERE temple_id = $11 AND asset_id = $12;
	`
	tag, err := r.Pool.Exec(ctx, query,
		asset.Name,
		asset.Location,
		string(asset.Status),
		asset.DisposalDate,
		asset.DisposalProceeds,
		asset.DisposalReason,
		asset.DisposalApprover,
		asset.JournalEntryID,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
		asset.TempleID,
		asset.AssetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset %s: %w", asset.AssetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const cwipProjectColumns = `project_id, temple_id, name, budget, total_expenditure, status, capitalized_asset_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCWIPProject(row pgx.Row) (domain.CWIPProject, error) {
	var p domain.CWIPProject
	var status string
	err := row.Scan(
		&p.ProjectID,
		&p.TempleID,
		&p.Name,
		&p.Budget,
		&p.TotalExpenditure,
		&status,
		&p.CapitalizedAsset,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	p.Status = domain.CWIPStatus(status)
	return p, err
}

// SaveCWIPProject inserts a new CWIP project.
func (r *PgxAssetRepository) SaveCWIPProject(ctx context.Context, project domain.CWIPProject) error {
	query := `
		INSERT INTO cwip_projects (` + cwipProjectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.TempleID,
		project.Name,
		project.Budget,
		project.TotalExpenditure,
		string(project.Status),
		project.CapitalizedAsset,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save CWIP project %s: %w", project.ProjectID, err)
	}
	return nil
}

// FindCWIPProjectByID retrieves a CWIP project by ID within a temple.
func (r *PgxAssetRepository) FindCWIPProjectByID(ctx context.Context, templeID, projectID string) (*domain.CWIPProject, error) {
	query := `SELECT ` + cwipProjectColumns + ` FROM cwip_projects WHERE temple_id = $1 AND project_id = $2;`

	p, err := scanCWIPProject(r.Pool.QueryRow(ctx, query, templeID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find CWIP project by ID %s: %w", projectID, err)
	}
	return &p, nil
}

// ListCWIPProjects retrieves all CWIP projects of a temple.
func (r *PgxAssetRepository) ListCWIPProjects(ctx context.Context, templeID string) ([]domain.CWIPProject, error) {
	query := `SELECT ` + cwipProjectColumns + ` FROM cwip_projects WHERE temple_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list CWIP projects for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var projects []domain.CWIPProject
	for rows.Next() {
		p, err := scanCWIPProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan CWIP project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating CWIP project rows: %w", err)
	}
	return projects, nil
}

// UpdateCWIPProject updates a project's accumulated expenditure and status.
func (r *PgxAssetRepository) UpdateCWIPProject(ctx context.Context, project domain.CWIPProject) error {
	query := `
		UPDATE cwip_projects
		SET total_expenditure = $1, status = $2, capitalized_asset_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE temple_id = $6 AND project_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		project.TotalExpenditure,
		string(project.Status),
		project.CapitalizedAsset,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
		project.TempleID,
		project.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update CWIP project %s: %w", project.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveCWIPExpenditure inserts one spend row against a project.
func (r *PgxAssetRepository) SaveCWIPExpenditure(ctx context.Context, exp domain.CWIPExpenditure) error {
	query := `
		INSERT INTO cwip_expenditures (expenditure_id, project_id, temple_id, spend_date, amount, description, payment_mode, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		exp.ExpenditureID,
		exp.ProjectID,
		exp.TempleID,
		exp.SpendDate,
		exp.Amount,
		exp.Description,
		string(exp.PaymentMode),
		exp.JournalEntryID,
		exp.CreatedAt,
		exp.CreatedBy,
		exp.LastUpdatedAt,
		exp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save CWIP expenditure %s: %w", exp.ExpenditureID, err)
	}
	return nil
}

// SetExpenditureJournalEntryID back-links the expenditure to its posted accounting entry.
func (r *PgxAssetRepository) SetExpenditureJournalEntryID(ctx context.Context, expenditureID, entryID string) error {
	query := `UPDATE cwip_expenditures SET journal_entry_id = $1, last_updated_at = NOW() WHERE expenditure_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, entryID, expenditureID)
	if err != nil {
		return fmt.Errorf("failed to link expenditure %s to entry %s: %w", expenditureID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListCWIPExpenditures retrieves the spends of a project in date order.
func (r *PgxAssetRepository) ListCWIPExpenditures(ctx context.Context, templeID, projectID string) ([]domain.CWIPExpenditure, error) {
	query := `
		SELECT expenditure_id, project_id, temple_id, spend_date, amount, description, payment_mode, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM cwip_expenditures
		WHERE temple_id = $1 AND project_id = $2
		ORDER BY spend_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, templeID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list CWIP expenditures for project %s: %w", projectID, err)
	}
	defer rows.Close()

	var exps []domain.CWIPExpenditure
	for rows.Next() {
		var e domain.CWIPExpenditure
		var mode string
		err := rows.Scan(
			&e.ExpenditureID,
			&e.ProjectID,
			&e.TempleID,
			&e.SpendDate,
			&e.Amount,
			&e.Description,
			&mode,
			&e.JournalEntryID,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan CWIP expenditure row: %w", err)
		}
		e.PaymentMode = domain.PaymentMode(mode)
		exps = append(exps, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating CWIP expenditure rows: %w", err)
	}
	return exps, nil
}
