package services

import (
	"context"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its numeric code.
	GetAccountByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Account, error)

	// ListAccounts retrieves the accounts of a temple, optionally only active ones.
	ListAccounts(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. Accountant or above.
	CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, actor domain.Actor, accountID string) error

	// SeedDefaultChart creates the built-in chart of accounts for a new temple.
	SeedDefaultChart(ctx context.Context, actor domain.Actor) error
}

// AccountMappingSvc defines operations for purpose-to-account mapping overrides
type AccountMappingSvc interface {
	// UpsertMapping sets the account code a posting purpose resolves to. Admin only.
	UpsertMapping(ctx context.Context, actor domain.Actor, req dto.UpsertMappingRequest) (*domain.AccountMapping, error)

	// ListMappings retrieves all mapping overrides for the temple.
	ListMappings(ctx context.Context, actor domain.Actor) ([]domain.AccountMapping, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountMappingSvc
}
