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
	"github.com/shopspring/decimal"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for stock items, purchase
// documents and movements.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const itemColumns = `item_id, temple_id, code, name, category, unit, stock_qty, unit_price, reorder_level, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row pgx.Row) (domain.Item, error) {
	var i domain.Item
	var category string
	err := row.Scan(
		&i.ItemID,
		&i.TempleID,
		&i.Code,
		&i.Name,
		&category,
		&i.Unit,
		&i.StockQty,
		&i.UnitPrice,
		&i.ReorderLevel,
		&i.IsActive,
		&i.CreatedAt,
		&i.CreatedBy,
		&i.LastUpdatedAt,
		&i.LastUpdatedBy,
	)
	i.Category = domain.ItemCategory(category)
	return i, err
}

// SaveItem inserts a new stock item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.TempleID,
		item.Code,
		item.Name,
		string(item.Category),
		item.Unit,
		item.StockQty,
		item.UnitPrice,
		item.ReorderLevel,
		item.IsActive,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item with code %s already exists", apperrors.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("failed to save item %s: %w", item.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an item by ID within a temple.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, templeID, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE temple_id = $1 AND item_id = $2;`

	i, err := scanItem(r.Pool.QueryRow(ctx, query, templeID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}
	return &i, nil
}

// ListItems retrieves the item master ordered by code.
func (r *PgxInventoryRepository) ListItems(ctx context.Context, templeID string, activeOnly bool) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE temple_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

// UpdateItem updates mutable item fields (not stock, which only moves through
// ApplyMovement).
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	query := `
		UPDATE items
		SET name = $1, unit = $2, reorder_level = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE temple_id = $7 AND item_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.Name,
		item.Unit,
		item.ReorderLevel,
		item.IsActive,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
		item.TempleID,
		item.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePurchaseOrder inserts the PO header and its lines in one transaction.
func (r *PgxInventoryRepository) SavePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, lines []domain.PurchaseOrderLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO purchase_orders (po_id, temple_id, po_number, vendor_name, order_date, status, total_amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		po.POID,
		po.TempleID,
		po.PONumber,
		po.VendorName,
		po.OrderDate,
		string(po.Status),
		po.TotalAmount,
		po.CreatedAt,
		po.CreatedBy,
		po.LastUpdatedAt,
		po.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase order %s: %w", po.POID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO purchase_order_lines (line_id, po_id, item_id, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, l := range lines {
		batch.Queue(lineQuery, l.LineID, l.POID, l.ItemID, l.Qty, l.Rate, l.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert purchase order lines for %s: %w", po.POID, err)
	}

	return r.Commit(ctx, tx)
}

// FindPurchaseOrderByID retrieves a PO with its lines.
func (r *PgxInventoryRepository) FindPurchaseOrderByID(ctx context.Context, templeID, poID string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT po_id, temple_id, po_number, vendor_name, order_date, status, total_amount, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_orders
		WHERE temple_id = $1 AND po_id = $2;
	`
	var po domain.PurchaseOrder
	var status string
	err := r.Pool.QueryRow(ctx, query, templeID, poID).Scan(
		&po.POID,
		&po.TempleID,
		&po.PONumber,
		&po.VendorName,
		&po.OrderDate,
		&status,
		&po.TotalAmount,
		&po.CreatedAt,
		&po.CreatedBy,
		&po.LastUpdatedAt,
		&po.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", poID, err)
	}
	po.Status = domain.POStatus(status)

	lineQuery := `SELECT line_id, po_id, item_id, qty, rate, amount FROM purchase_order_lines WHERE po_id = $1 ORDER BY line_id;`
	rows, err := r.Pool.Query(ctx, lineQuery, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for purchase order %s: %w", poID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.PurchaseOrderLine
		if err := rows.Scan(&l.LineID, &l.POID, &l.ItemID, &l.Qty, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase order lines: %w", err)
	}
	return &po, nil
}

// ListPurchaseOrders retrieves a token-paginated PO listing (headers only).
func (r *PgxInventoryRepository) ListPurchaseOrders(ctx context.Context, templeID string, status *domain.POStatus, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT po_id, temple_id, po_number, vendor_name, order_date, status, total_amount, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_orders
		WHERE temple_id = $1`
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
		return nil, nil, fmt.Errorf("failed to query purchase orders for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var pos []domain.PurchaseOrder
	for rows.Next() {
		var po domain.PurchaseOrder
		var st string
		err := rows.Scan(
			&po.POID,
			&po.TempleID,
			&po.PONumber,
			&po.VendorName,
			&po.OrderDate,
			&st,
			&po.TotalAmount,
			&po.CreatedAt,
			&po.CreatedBy,
			&po.LastUpdatedAt,
			&po.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan purchase order row: %w", err)
		}
		po.Status = domain.POStatus(st)
		pos = append(pos, po)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating purchase order rows: %w", err)
	}

	var nextTokenVal *string
	if len(pos) > limit {
		token := pagination.EncodeDateBasedToken(pos[limit-1].CreatedAt)
		nextTokenVal = &token
		pos = pos[:limit]
	}
	return pos, nextTokenVal, nil
}

// UpdatePurchaseOrderStatus transitions a PO's status.
func (r *PgxInventoryRepository) UpdatePurchaseOrderStatus(ctx context.Context, poID string, status domain.POStatus, updatedBy string, updatedAt time.Time) error {
	query := `UPDATE purchase_orders SET status = $1, last_updated_at = $2, last_updated_by = $3 WHERE po_id = $4;`
	tag, err := r.Pool.Exec(ctx, query, string(status), updatedAt, updatedBy, poID)
	if err != nil {
		return fmt.Errorf("failed to update purchase order %s status: %w", poID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveGoodsReceipt inserts a goods receipt note.
func (r *PgxInventoryRepository) SaveGoodsReceipt(ctx context.Context, grn domain.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (grn_id, temple_id, grn_number, po_id, receipt_date, total_amount, payment_mode, on_credit, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		grn.GRNID,
		grn.TempleID,
		grn.GRNNumber,
		grn.POID,
		grn.ReceiptDate,
		grn.TotalAmount,
		string(grn.PaymentMode),
		grn.OnCredit,
		grn.JournalEntryID,
		grn.CreatedAt,
		grn.CreatedBy,
		grn.LastUpdatedAt,
		grn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save goods receipt %s: %w", grn.GRNID, err)
	}
	return nil
}

// SaveGoodsIssue inserts a goods issue note.
func (r *PgxInventoryRepository) SaveGoodsIssue(ctx context.Context, gin domain.GoodsIssue) error {
	query := `
		INSERT INTO goods_issues (gin_id, temple_id, gin_number, issue_date, purpose, department, total_amount, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		gin.GINID,
		gin.TempleID,
		gin.GINNumber,
		gin.IssueDate,
		gin.Purpose,
		gin.Department,
		gin.TotalAmount,
		gin.JournalEntryID,
		gin.CreatedAt,
		gin.CreatedBy,
		gin.LastUpdatedAt,
		gin.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save goods issue %s: %w", gin.GINID, err)
	}
	return nil
}

// SetReceiptJournalEntryID back-links the receipt to its posted accounting entry.
func (r *PgxInventoryRepository) SetReceiptJournalEntryID(ctx context.Context, grnID, entryID string) error {
	query := `UPDATE goods_receipts SET journal_entry_id = $1, last_updated_at = NOW() WHERE grn_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, entryID, grnID)
	if err != nil {
		return fmt.Errorf("failed to link goods receipt %s to entry %s: %w", grnID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetIssueJournalEntryID back-links the issue to its posted accounting entry.
func (r *PgxInventoryRepository) SetIssueJournalEntryID(ctx context.Context, ginID, entryID string) error {
	query := `UPDATE goods_issues SET journal_entry_id = $1, last_updated_at = NOW() WHERE gin_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, entryID, ginID)
	if err != nil {
		return fmt.Errorf("failed to link goods issue %s to entry %s: %w", ginID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetMovementJournalEntryID back-links a direct movement to its posted accounting entry.
func (r *PgxInventoryRepository) SetMovementJournalEntryID(ctx context.Context, movementID, entryID string) error {
	query := `UPDATE stock_movements SET journal_entry_id = $1, last_updated_at = NOW() WHERE movement_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, entryID, movementID)
	if err != nil {
		return fmt.Errorf("failed to link stock movement %s to entry %s: %w", movementID, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyMovement inserts the stock movement and adjusts the item's stock level
// in one transaction. The item row is locked so concurrent movements serialize,
// and outward movements cannot take the stock negative.
func (r *PgxInventoryRepository) ApplyMovement(ctx context.Context, movement domain.StockMovement, stockDelta decimal.Decimal, newUnitPrice *decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var currentQty decimal.Decimal
	lockQuery := `SELECT stock_qty FROM items WHERE temple_id = $1 AND item_id = $2 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, movement.TempleID, movement.ItemID).Scan(&currentQty); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock item %s: %w", movement.ItemID, err)
	}

	newQty := currentQty.Add(stockDelta)
	if newQty.IsNegative() {
		return fmt.Errorf("%w: insufficient stock for item %s: have %s, need %s", apperrors.ErrValidation, movement.ItemID, currentQty.String(), stockDelta.Neg().String())
	}

	movementQuery := `
		INSERT INTO stock_movements (movement_id, temple_id, movement_number, item_id, movement_type, movement_date, qty, rate, amount, reference_type, reference_id, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, movementQuery,
		movement.MovementID,
		movement.TempleID,
		movement.MovementNumber,
		movement.ItemID,
		string(movement.MovementType),
		movement.MovementDate,
		movement.Qty,
		movement.Rate,
		movement.Amount,
		movement.ReferenceType,
		movement.ReferenceID,
		movement.JournalEntryID,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", movement.MovementID, err)
	}

	updateQuery := `UPDATE items SET stock_qty = $1, last_updated_at = $2, last_updated_by = $3`
	args := []interface{}{newQty, movement.LastUpdatedAt, movement.LastUpdatedBy}
	if newUnitPrice != nil {
		args = append(args, *newUnitPrice)
		updateQuery += `, unit_price = $` + strconv.Itoa(len(args))
	}
	args = append(args, movement.TempleID, movement.ItemID)
	updateQuery += fmt.Sprintf(` WHERE temple_id = $%d AND item_id = $%d;`, len(args)-1, len(args))

	if _, err := tx.Exec(ctx, updateQuery, args...); err != nil {
		return fmt.Errorf("failed to adjust stock for item %s: %w", movement.ItemID, err)
	}

	return r.Commit(ctx, tx)
}

// ListStockMovements retrieves a filtered, token-paginated movement listing.
func (r *PgxInventoryRepository) ListStockMovements(ctx context.Context, templeID string, itemID *string, from, to *time.Time, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT movement_id, temple_id, movement_number, item_id, movement_type, movement_date, qty, rate, amount, reference_type, reference_id, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE temple_id = $1`
	args := []interface{}{templeID}

	if itemID != nil {
		args = append(args, *itemID)
		query += ` AND item_id = $` + strconv.Itoa(len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += ` AND movement_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND movement_date <= $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (movement_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY movement_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query stock movements for temple %s: %w", templeID, err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		var mType string
		err := rows.Scan(
			&m.MovementID,
			&m.TempleID,
			&m.MovementNumber,
			&m.ItemID,
			&mType,
			&m.MovementDate,
			&m.Qty,
			&m.Rate,
			&m.Amount,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.JournalEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		m.MovementType = domain.MovementType(mType)
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}

	var nextTokenVal *string
	if len(movements) > limit {
		last := movements[limit-1]
		token := pagination.EncodeToken(last.MovementDate, last.CreatedAt)
		nextTokenVal = &token
		movements = movements[:limit]
	}
	return movements, nextTokenVal, nil
}
