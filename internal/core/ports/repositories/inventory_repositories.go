package repositories

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryRepositoryFacade defines persistence for items, purchase documents
// and stock movements.
type InventoryRepositoryFacade interface {
	SaveItem(ctx context.Context, item domain.Item) error
	FindItemByID(ctx context.Context, templeID, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, templeID string, activeOnly bool) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) error

	SavePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, lines []domain.PurchaseOrderLine) error
	FindPurchaseOrderByID(ctx context.Context, templeID, poID string) (*domain.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, templeID string, status *domain.POStatus, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error)
	UpdatePurchaseOrderStatus(ctx context.Context, poID string, status domain.POStatus, updatedBy string, updatedAt time.Time) error

	SaveGoodsReceipt(ctx context.Context, grn domain.GoodsReceipt) error
	SaveGoodsIssue(ctx context.Context, gin domain.GoodsIssue) error
	// SetReceiptJournalEntryID back-links the receipt to its posted accounting entry.
	SetReceiptJournalEntryID(ctx context.Context, grnID, entryID string) error
	// SetIssueJournalEntryID back-links the issue to its posted accounting entry.
	SetIssueJournalEntryID(ctx context.Context, ginID, entryID string) error
	// SetMovementJournalEntryID back-links a direct movement to its posted accounting entry.
	SetMovementJournalEntryID(ctx context.Context, movementID, entryID string) error

	// ApplyMovement inserts the stock movement and adjusts the item's stock
	// quantity (and latest unit price on inward movements) in one database
	// transaction, locking the item row against concurrent movements.
	ApplyMovement(ctx context.Context, movement domain.StockMovement, stockDelta decimal.Decimal, newUnitPrice *decimal.Decimal) error
	ListStockMovements(ctx context.Context, templeID string, itemID *string, from, to *time.Time, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}
