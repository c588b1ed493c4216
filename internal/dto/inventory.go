package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest adds a stock item.
type CreateItemRequest struct {
	Code         string          `json:"code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category" binding:"required,oneof=POOJA_MATERIAL PROVISIONS CONSUMABLES MAINTENANCE"`
	Unit         string          `json:"unit" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
}

// UpdateItemRequest applies partial updates to an item.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
}

// ItemResponse is the public view of a stock item.
type ItemResponse struct {
	ItemID       string          `json:"itemID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	StockQty     decimal.Decimal `json:"stockQty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	IsActive     bool            `json:"isActive"`
}

// ToItemResponse converts a domain.Item to its response DTO.
func ToItemResponse(i *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:       i.ItemID,
		Code:         i.Code,
		Name:         i.Name,
		Category:     string(i.Category),
		Unit:         i.Unit,
		StockQty:     i.StockQty,
		UnitPrice:    i.UnitPrice,
		ReorderLevel: i.ReorderLevel,
		IsActive:     i.IsActive,
	}
}

// POLineRequest is one line on a purchase order request.
type POLineRequest struct {
	ItemID string          `json:"itemID" binding:"required"`
	Qty    decimal.Decimal `json:"qty" binding:"required"`
	Rate   decimal.Decimal `json:"rate" binding:"required"`
}

// CreatePORequest raises a purchase order in DRAFT.
type CreatePORequest struct {
	VendorName string          `json:"vendorName" binding:"required"`
	OrderDate  time.Time       `json:"orderDate" binding:"required"`
	Lines      []POLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// POResponse is the public view of a purchase order.
type POResponse struct {
	POID        string           `json:"poID"`
	PONumber    string           `json:"poNumber"`
	VendorName  string           `json:"vendorName"`
	OrderDate   time.Time        `json:"orderDate"`
	Status      string           `json:"status"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	Lines       []POLineResponse `json:"lines,omitempty"`
}

// POLineResponse is one line on a purchase order response.
type POLineResponse struct {
	LineID string          `json:"lineID"`
	ItemID string          `json:"itemID"`
	Qty    decimal.Decimal `json:"qty"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// ToPOResponse converts a domain.PurchaseOrder to its response DTO.
func ToPOResponse(po *domain.PurchaseOrder) POResponse {
	resp := POResponse{
		POID:        po.POID,
		PONumber:    po.PONumber,
		VendorName:  po.VendorName,
		OrderDate:   po.OrderDate,
		Status:      string(po.Status),
		TotalAmount: po.TotalAmount,
	}
	for _, l := range po.Lines {
		resp.Lines = append(resp.Lines, POLineResponse{
			LineID: l.LineID,
			ItemID: l.ItemID,
			Qty:    l.Qty,
			Rate:   l.Rate,
			Amount: l.Amount,
		})
	}
	return resp
}

// CreateGoodsReceiptRequest receives stock against an approved purchase order.
type CreateGoodsReceiptRequest struct {
	POID        string    `json:"poID" binding:"required"`
	ReceiptDate time.Time `json:"receiptDate" binding:"required"`
	OnCredit    bool      `json:"onCredit"`
	PaymentMode string    `json:"paymentMode" binding:"omitempty,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
}

// GoodsIssueLineRequest is one issued item.
type GoodsIssueLineRequest struct {
	ItemID string          `json:"itemID" binding:"required"`
	Qty    decimal.Decimal `json:"qty" binding:"required"`
}

// CreateGoodsIssueRequest issues stock for consumption.
type CreateGoodsIssueRequest struct {
	IssueDate  time.Time               `json:"issueDate" binding:"required"`
	Purpose    string                  `json:"purpose" binding:"required"`
	Department string                  `json:"department"`
	Lines      []GoodsIssueLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// DirectPurchaseRequest records a purchase without a PO/GRN document trail.
type DirectPurchaseRequest struct {
	ItemID       string          `json:"itemID" binding:"required"`
	PurchaseDate time.Time       `json:"purchaseDate" binding:"required"`
	Qty          decimal.Decimal `json:"qty" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	OnCredit     bool            `json:"onCredit"`
	PaymentMode  string          `json:"paymentMode" binding:"omitempty,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
}

// DirectIssueRequest records an issue without a GIN document.
type DirectIssueRequest struct {
	ItemID    string          `json:"itemID" binding:"required"`
	IssueDate time.Time       `json:"issueDate" binding:"required"`
	Qty       decimal.Decimal `json:"qty" binding:"required"`
	Purpose   string          `json:"purpose"`
}

// MovementResponse is the public view of a stock movement.
type MovementResponse struct {
	MovementID       string          `json:"movementID"`
	MovementNumber   string          `json:"movementNumber"`
	ItemID           string          `json:"itemID"`
	MovementType     string          `json:"movementType"`
	MovementDate     time.Time       `json:"movementDate"`
	Qty              decimal.Decimal `json:"qty"`
	Rate             decimal.Decimal `json:"rate"`
	Amount           decimal.Decimal `json:"amount"`
	ReferenceType    string          `json:"referenceType"`
	ReferenceID      string          `json:"referenceID,omitempty"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	AccountingPosted bool            `json:"accountingPosted"`
}

// ToMovementResponse converts a domain.StockMovement to its response DTO.
func ToMovementResponse(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		MovementID:       m.MovementID,
		MovementNumber:   m.MovementNumber,
		ItemID:           m.ItemID,
		MovementType:     string(m.MovementType),
		MovementDate:     m.MovementDate,
		Qty:              m.Qty,
		Rate:             m.Rate,
		Amount:           m.Amount,
		ReferenceType:    m.ReferenceType,
		ReferenceID:      m.ReferenceID,
		JournalEntryID:   m.JournalEntryID,
		AccountingPosted: m.JournalEntryID != nil,
	}
}

// ListMovementsResponse wraps a paginated stock movement listing.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}
