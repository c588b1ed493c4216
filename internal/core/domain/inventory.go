package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCategory classifies stock items and drives the consumption expense account.
type ItemCategory string

const (
	ItemPoojaMaterial ItemCategory = "POOJA_MATERIAL"
	ItemProvisions    ItemCategory = "PROVISIONS"
	ItemConsumables   ItemCategory = "CONSUMABLES"
	ItemMaintenance   ItemCategory = "MAINTENANCE"
)

// Item is a stock-keeping unit in the temple stores.
type Item struct {
	ItemID       string          `json:"itemID"`
	TempleID     string          `json:"templeID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     ItemCategory    `json:"category"`
	Unit         string          `json:"unit"`
	StockQty     decimal.Decimal `json:"stockQty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"` // Latest purchase rate
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// POStatus is the purchase order lifecycle.
type POStatus string

const (
	PODraft     POStatus = "DRAFT"
	POApproved  POStatus = "APPROVED"
	POReceived  POStatus = "RECEIVED"
	POCancelled POStatus = "CANCELLED"
)

// PurchaseOrder is a vendor order for stock items.
type PurchaseOrder struct {
	POID        string          `json:"poID"`
	TempleID    string          `json:"templeID"`
	PONumber    string          `json:"poNumber"` // PO/YYYY/NNNN
	VendorName  string          `json:"vendorName"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      POStatus        `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AuditFields
	Lines []PurchaseOrderLine `json:"lines,omitempty"`
}

// PurchaseOrderLine is one item row on a purchase order.
type PurchaseOrderLine struct {
	LineID string          `json:"lineID"`
	POID   string          `json:"poID"`
	ItemID string          `json:"itemID"`
	Qty    decimal.Decimal `json:"qty"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// GoodsReceipt records stock arriving against an approved purchase order.
type GoodsReceipt struct {
	GRNID          string          `json:"grnID"`
	TempleID       string          `json:"templeID"`
	GRNNumber      string          `json:"grnNumber"` // GRN/YYYY/NNNN
	POID           string          `json:"poID"`
	ReceiptDate    time.Time       `json:"receiptDate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaymentMode    PaymentMode     `json:"paymentMode"`
	OnCredit       bool            `json:"onCredit"` // Credit purchases post against vendor payable
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}

// GoodsIssue records stock leaving the stores for consumption.
type GoodsIssue struct {
	GINID          string          `json:"ginID"`
	TempleID       string          `json:"templeID"`
	GINNumber      string          `json:"ginNumber"` // GIN/YYYY/NNNN
	IssueDate      time.Time       `json:"issueDate"`
	Purpose        string          `json:"purpose"`
	Department     string          `json:"department"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockMovement is one item-level stock change, referenced back to the
// document (GRN/GIN or direct purchase/issue) that caused it.
type StockMovement struct {
	MovementID     string          `json:"movementID"`
	TempleID       string          `json:"templeID"`
	MovementNumber string          `json:"movementNumber"` // PUR/YYYY/NNNN in, ISS/YYYY/NNNN out
	ItemID         string          `json:"itemID"`
	MovementType   MovementType    `json:"movementType"`
	MovementDate   time.Time       `json:"movementDate"`
	Qty            decimal.Decimal `json:"qty"`
	Rate           decimal.Decimal `json:"rate"`
	Amount         decimal.Decimal `json:"amount"`
	ReferenceType  string          `json:"referenceType"` // GRN, GIN or DIRECT
	ReferenceID    string          `json:"referenceID"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}
