package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory picks the fixed-asset account an asset is carried on.
type AssetCategory string

const (
	AssetLand      AssetCategory = "LAND"
	AssetBuilding  AssetCategory = "BUILDING"
	AssetVehicle   AssetCategory = "VEHICLE"
	AssetEquipment AssetCategory = "EQUIPMENT"
	AssetFurniture AssetCategory = "FURNITURE"
)

// AssetStatus is the asset lifecycle.
type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetDisposed AssetStatus = "DISPOSED"
)

// Asset is a fixed asset on the temple's books.
type Asset struct {
	AssetID      string          `json:"assetID"`
	TempleID     string          `json:"templeID"`
	AssetNumber  string          `json:"assetNumber"` // AST/YYYY/NNNN
	Name         string          `json:"name"`
	Category     AssetCategory   `json:"category"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	PurchaseCost decimal.Decimal `json:"purchaseCost"`
	PaymentMode  PaymentMode     `json:"paymentMode"`
	Location     string          `json:"location"`
	Status       AssetStatus     `json:"status"`

	DisposalDate     *time.Time      `json:"disposalDate,omitempty"`
	DisposalProceeds decimal.Decimal `json:"disposalProceeds"`
	DisposalReason   string          `json:"disposalReason"`
	DisposalApprover *string         `json:"disposalApprover,omitempty"`

	JournalEntryID *string `json:"journalEntryID,omitempty"` // Purchase entry
	AuditFields
}

// CWIPStatus is the Capital Work In Progress project lifecycle.
type CWIPStatus string

const (
	CWIPInProgress  CWIPStatus = "IN_PROGRESS"
	CWIPCapitalized CWIPStatus = "CAPITALIZED"
)

// CWIPProject accumulates construction cost until it is capitalized to an asset.
type CWIPProject struct {
	ProjectID        string          `json:"projectID"`
	TempleID         string          `json:"templeID"`
	Name             string          `json:"name"`
	Budget           decimal.Decimal `json:"budget"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	Status           CWIPStatus      `json:"status"`
	CapitalizedAsset *string         `json:"capitalizedAssetID,omitempty"`
	AuditFields
}

// CWIPExpenditure is one spend booked against a CWIP project.
type CWIPExpenditure struct {
	ExpenditureID  string          `json:"expenditureID"`
	ProjectID      string          `json:"projectID"`
	TempleID       string          `json:"templeID"`
	SpendDate      time.Time       `json:"spendDate"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	PaymentMode    PaymentMode     `json:"paymentMode"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}
