package dto

import (
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates a ledger account in the chart of accounts.
type CreateAccountRequest struct {
	Code            string          `json:"code" binding:"required,numeric,min=4,max=5"`
	Name            string          `json:"name" binding:"required"`
	AccountType     string          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	SubType         string          `json:"subType"`
	ParentAccountID string          `json:"parentAccountID"`
	OpeningDebit    decimal.Decimal `json:"openingDebit"`
	OpeningCredit   decimal.Decimal `json:"openingCredit"`
}

// UpdateAccountRequest applies partial updates to an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	SubType  *string `json:"subType,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// AccountResponse is the public view of a ledger account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	SubType         string          `json:"subType"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	OpeningDebit    decimal.Decimal `json:"openingDebit"`
	OpeningCredit   decimal.Decimal `json:"openingCredit"`
	IsActive        bool            `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		SubType:         a.SubType,
		ParentAccountID: a.ParentAccountID,
		OpeningDebit:    a.OpeningDebit,
		OpeningCredit:   a.OpeningCredit,
		IsActive:        a.IsActive,
	}
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// UpsertMappingRequest sets a posting purpose -> account code override.
type UpsertMappingRequest struct {
	Purpose     string `json:"purpose" binding:"required"`
	AccountCode string `json:"accountCode" binding:"required,numeric,min=4,max=5"`
}

// MappingResponse is the public view of an account mapping.
type MappingResponse struct {
	Purpose     string `json:"purpose"`
	AccountCode string `json:"accountCode"`
}
