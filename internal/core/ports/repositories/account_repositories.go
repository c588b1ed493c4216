package repositories

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, templeID, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, templeID, code string) (*domain.Account, error)
	// FindAccountsByIDs returns the accounts found; callers must check for missing IDs.
	FindAccountsByIDs(ctx context.Context, templeID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, templeID string, activeOnly bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	// Account mapping rows override the default posting account codes per temple.
	FindMapping(ctx context.Context, templeID, purpose string) (*domain.AccountMapping, error)
	UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error
	ListMappings(ctx context.Context, templeID string) ([]domain.AccountMapping, error)
}

// SequenceRepositoryFacade hands out document sequence numbers.
type SequenceRepositoryFacade interface {
	// NextValue atomically increments and returns the counter for
	// (templeID, docKey, year). Safe under concurrent callers.
	NextValue(ctx context.Context, templeID, docKey string, year int) (int64, error)
}

// TempleRepositoryFacade defines persistence operations for temples (tenants).
type TempleRepositoryFacade interface {
	SaveTemple(ctx context.Context, temple domain.Temple) error
	FindTempleByID(ctx context.Context, templeID string) (*domain.Temple, error)
	UpdateTemple(ctx context.Context, temple domain.Temple) error
}

// UserRepositoryFacade defines persistence operations for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, templeID string) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string) error
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error
}
