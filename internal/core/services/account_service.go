package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

// defaultChart is the built-in chart of accounts seeded for each new temple.
// Codes line up with the posting defaults in defaultPurposeCodes.
var defaultChart = []struct {
	Code    string
	Name    string
	Type    domain.AccountType
	SubType string
}{
	{"1101", "Cash in Hand", domain.AccountTypeAsset, domain.SubTypeCash},
	{"1201", "Bank Account", domain.AccountTypeAsset, domain.SubTypeBank},
	{"1301", "Stock in Hand", domain.AccountTypeAsset, domain.SubTypeCurrentAsset},
	{"1401", "Sponsorship Receivable", domain.AccountTypeAsset, domain.SubTypeCurrentAsset},
	{"1501", "Land", domain.AccountTypeAsset, domain.SubTypeFixedAsset},
	{"1502", "Buildings", domain.AccountTypeAsset, domain.SubTypeFixedAsset},
	{"1503", "Vehicles", domain.AccountTypeAsset, domain.SubTypeFixedAsset},
	{"1504", "Equipment", domain.AccountTypeAsset, domain.SubTypeFixedAsset},
	{"1505", "Furniture and Fixtures", domain.AccountTypeAsset, domain.SubTypeFixedAsset},
	{"1601", "Capital Work in Progress", domain.AccountTypeAsset, domain.SubTypeFixedAsset},
	{"2101", "Salary Payable", domain.Liability, domain.SubTypeCurrentLiability},
	{"2201", "Vendor Payable", domain.Liability, domain.SubTypeCurrentLiability},
	{"3101", "Corpus Fund", domain.Equity, domain.SubTypeCorpusFund},
	{"4101", "Donation Income - General", domain.Income, ""},
	{"4102", "Donation Income - Annadanam", domain.Income, ""},
	{"4103", "Donation Income - Construction", domain.Income, ""},
	{"4104", "Donation Income - Corpus", domain.Income, ""},
	{"4105", "Donation Income - Special Pooja", domain.Income, ""},
	{"4201", "Seva Income", domain.Income, ""},
	{"4301", "Sponsorship Income", domain.Income, ""},
	{"4401", "Hundi Collections", domain.Income, ""},
	{"4801", "Asset Disposal Proceeds", domain.Income, ""},
	{"4901", "Other Income", domain.Income, ""},
	{"5101", "Salary Expense", domain.Expense, ""},
	{"5201", "Pooja Material Consumption", domain.Expense, ""},
	{"5202", "Provisions Consumption", domain.Expense, ""},
	{"5203", "Consumables", domain.Expense, ""},
	{"5301", "Repairs and Maintenance", domain.Expense, ""},
	{"5901", "Miscellaneous Expense", domain.Expense, ""},
}

// accountService manages the chart of accounts and posting-purpose mappings.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, actor.TempleID, accountID)
}

// GetAccountByCode retrieves an account by its code.
func (s *accountService) GetAccountByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, actor.TempleID, code)
}

// ListAccounts retrieves the accounts of a temple, optionally only active ones.
func (s *accountService) ListAccounts(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, actor.TempleID, activeOnly)
}

// CreateAccount persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TempleID:        actor.TempleID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		SubType:         req.SubType,
		ParentAccountID: req.ParentAccountID,
		OpeningDebit:    req.OpeningDebit,
		OpeningCredit:   req.OpeningCredit,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if req.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, actor.TempleID, req.ParentAccountID); err != nil {
			return nil, fmt.Errorf("parent account %s: %w", req.ParentAccountID, err)
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount updates an existing account's details.
func (s *accountService) UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, actor.TempleID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, actor, accountID, dto.UpdateAccountRequest{IsActive: &inactive})
	return err
}

// SeedDefaultChart creates the built-in chart of accounts for a new temple.
// Codes already present are left untouched.
func (s *accountService) SeedDefaultChart(ctx context.Context, actor domain.Actor) error {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}

	existing, err := s.accountRepo.ListAccounts(ctx, actor.TempleID, false)
	if err != nil {
		return fmt.Errorf("failed to list existing accounts: %w", err)
	}
	existingCodes := make(map[string]bool, len(existing))
	for _, a := range existing {
		existingCodes[a.Code] = true
	}

	now := time.Now().UTC()
	seeded := 0
	for _, c := range defaultChart {
		if existingCodes[c.Code] {
			continue
		}
		account := domain.Account{
			AccountID:   uuid.NewString(),
			TempleID:    actor.TempleID,
			Code:        c.Code,
			Name:        c.Name,
			AccountType: c.Type,
			SubType:     c.SubType,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", c.Code, err)
		}
		seeded++
	}

	s.LogInfo(ctx, "Default chart seeded", slog.Int("accounts_created", seeded))
	return nil
}

// UpsertMapping sets the account code a posting purpose resolves to.
func (s *accountService) UpsertMapping(ctx context.Context, actor domain.Actor, req dto.UpsertMappingRequest) (*domain.AccountMapping, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	// The target account must exist before the override takes effect.
	if _, err := s.accountRepo.FindAccountByCode(ctx, actor.TempleID, req.AccountCode); err != nil {
		return nil, fmt.Errorf("account with code %s: %w", req.AccountCode, err)
	}

	now := time.Now().UTC()
	mapping := domain.AccountMapping{
		MappingID:   uuid.NewString(),
		TempleID:    actor.TempleID,
		Purpose:     req.Purpose,
		AccountCode: req.AccountCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.accountRepo.UpsertMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to upsert account mapping", slog.String("purpose", req.Purpose))
		return nil, err
	}
	return &mapping, nil
}

// ListMappings retrieves all mapping overrides for the temple.
func (s *accountService) ListMappings(ctx context.Context, actor domain.Actor) ([]domain.AccountMapping, error) {
	return s.accountRepo.ListMappings(ctx, actor.TempleID)
}
