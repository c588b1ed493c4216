package dto

import (
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterAssetRequest records a fixed asset purchase.
type RegisterAssetRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category" binding:"required,oneof=LAND BUILDING VEHICLE EQUIPMENT FURNITURE"`
	PurchaseDate time.Time       `json:"purchaseDate" binding:"required"`
	PurchaseCost decimal.Decimal `json:"purchaseCost" binding:"required"`
	PaymentMode  string          `json:"paymentMode" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
	Location     string          `json:"location"`
}

// DisposalRequest asks for an asset to be disposed; approval is a separate
// admin action.
type DisposalRequest struct {
	DisposalDate time.Time       `json:"disposalDate" binding:"required"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	Reason       string          `json:"reason" binding:"required"`
}

// AssetResponse is the public view of a fixed asset.
type AssetResponse struct {
	AssetID          string          `json:"assetID"`
	AssetNumber      string          `json:"assetNumber"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	PurchaseDate     time.Time       `json:"purchaseDate"`
	PurchaseCost     decimal.Decimal `json:"purchaseCost"`
	PaymentMode      string          `json:"paymentMode"`
	Location         string          `json:"location"`
	Status           string          `json:"status"`
	DisposalDate     *time.Time      `json:"disposalDate,omitempty"`
	DisposalProceeds decimal.Decimal `json:"disposalProceeds"`
	DisposalReason   string          `json:"disposalReason,omitempty"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	AccountingPosted bool            `json:"accountingPosted"`
}

// ToAssetResponse converts a domain.Asset to its response DTO.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		AssetID:          a.AssetID,
		AssetNumber:      a.AssetNumber,
		Name:             a.Name,
		Category:         string(a.Category),
		PurchaseDate:     a.PurchaseDate,
		PurchaseCost:     a.PurchaseCost,
		PaymentMode:      string(a.PaymentMode),
		Location:         a.Location,
		Status:           string(a.Status),
		DisposalDate:     a.DisposalDate,
		DisposalProceeds: a.DisposalProceeds,
		DisposalReason:   a.DisposalReason,
		JournalEntryID:   a.JournalEntryID,
		AccountingPosted: a.JournalEntryID != nil,
	}
}

// CreateCWIPProjectRequest opens a capital work in progress project.
type CreateCWIPProjectRequest struct {
	Name   string          `json:"name" binding:"required"`
	Budget decimal.Decimal `json:"budget"`
}

// AddCWIPExpenditureRequest books spend against a CWIP project.
type AddCWIPExpenditureRequest struct {
	SpendDate   time.Time       `json:"spendDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	PaymentMode string          `json:"paymentMode" binding:"required,oneof=CASH UPI CARD BANK_TRANSFER CHEQUE"`
}

// CapitalizeCWIPRequest turns an in-progress project into a fixed asset.
type CapitalizeCWIPRequest struct {
	AssetName        string    `json:"assetName" binding:"required"`
	Category         string    `json:"category" binding:"required,oneof=LAND BUILDING VEHICLE EQUIPMENT FURNITURE"`
	CapitalizedDate  time.Time `json:"capitalizedDate" binding:"required"`
	Location         string    `json:"location"`
}

// CWIPProjectResponse is the public view of a CWIP project.
type CWIPProjectResponse struct {
	ProjectID        string          `json:"projectID"`
	Name             string          `json:"name"`
	Budget           decimal.Decimal `json:"budget"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	Status           string          `json:"status"`
	CapitalizedAsset *string         `json:"capitalizedAssetID,omitempty"`
}

// ToCWIPProjectResponse converts a domain.CWIPProject to its response DTO.
func ToCWIPProjectResponse(p *domain.CWIPProject) CWIPProjectResponse {
	return CWIPProjectResponse{
		ProjectID:        p.ProjectID,
		Name:             p.Name,
		Budget:           p.Budget,
		TotalExpenditure: p.TotalExpenditure,
		Status:           string(p.Status),
		CapitalizedAsset: p.CapitalizedAsset,
	}
}
