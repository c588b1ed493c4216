package services

import (
	"context"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// ItemSvc defines operations on stock items
type ItemSvc interface {
	// CreateItem registers a stock item.
	CreateItem(ctx context.Context, actor domain.Actor, req dto.CreateItemRequest) (*domain.Item, error)

	// UpdateItem updates an item's details.
	UpdateItem(ctx context.Context, actor domain.Actor, itemID string, req dto.UpdateItemRequest) (*domain.Item, error)

	// GetItemByID retrieves an item by ID.
	GetItemByID(ctx context.Context, actor domain.Actor, itemID string) (*domain.Item, error)

	// ListItems retrieves the item master, optionally only items at or below
	// their reorder level.
	ListItems(ctx context.Context, actor domain.Actor, belowReorder bool) ([]domain.Item, error)
}

// PurchaseSvc defines the purchase order to goods receipt flow
type PurchaseSvc interface {
	// CreatePO creates a DRAFT purchase order.
	CreatePO(ctx context.Context, actor domain.Actor, req dto.CreatePORequest) (*domain.PurchaseOrder, error)

	// ApprovePO moves a DRAFT purchase order to APPROVED. Accountant or above.
	ApprovePO(ctx context.Context, actor domain.Actor, poID string) (*domain.PurchaseOrder, error)

	// GetPOByID retrieves a purchase order with its lines.
	GetPOByID(ctx context.Context, actor domain.Actor, poID string) (*domain.PurchaseOrder, error)

	// ListPOs retrieves the purchase orders of a temple.
	ListPOs(ctx context.Context, actor domain.Actor, status *string) ([]domain.PurchaseOrder, error)

	// ReceiveGoods records a goods receipt against an APPROVED purchase order,
	// increments stock and posts the purchase.
	ReceiveGoods(ctx context.Context, actor domain.Actor, req dto.CreateGoodsReceiptRequest) (*domain.GoodsReceipt, error)

	// DirectPurchase buys an item into stock without a purchase order.
	DirectPurchase(ctx context.Context, actor domain.Actor, req dto.DirectPurchaseRequest) (*domain.StockMovement, error)
}

// IssueSvc defines stock consumption operations
type IssueSvc interface {
	// IssueGoods records a goods issue, decrements stock and posts the
	// consumption expense by item category.
	IssueGoods(ctx context.Context, actor domain.Actor, req dto.CreateGoodsIssueRequest) (*domain.GoodsIssue, error)

	// DirectIssue consumes a single item without a goods issue note.
	DirectIssue(ctx context.Context, actor domain.Actor, req dto.DirectIssueRequest) (*domain.StockMovement, error)

	// ListMovements retrieves the stock movement history of an item.
	ListMovements(ctx context.Context, actor domain.Actor, itemID string, limit int, nextToken *string) (*dto.ListMovementsResponse, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	ItemSvc
	PurchaseSvc
	IssueSvc
}
