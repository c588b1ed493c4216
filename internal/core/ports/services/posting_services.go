package services

import (
	"context"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResolverSvc resolves posting purpose keys to ledger accounts,
// honouring per-temple mapping overrides before the built-in defaults.
type AccountResolverSvc interface {
	ResolveAccount(ctx context.Context, templeID string, purpose string) (*domain.Account, error)
}

// PostingSvcFacade turns domain transactions into posted journal entries.
// Every method returns the POSTED entry; callers store its ID on the domain
// row. Posting failures never roll back the domain record.
type PostingSvcFacade interface {
	AccountResolverSvc

	// PostDonation posts Dr cash/bank, Cr donation income by category.
	PostDonation(ctx context.Context, actor domain.Actor, d *domain.Donation) (*domain.JournalEntry, error)

	// PostSevaBooking posts Dr cash/bank, Cr the seva's income account.
	PostSevaBooking(ctx context.Context, actor domain.Actor, b *domain.SevaBooking, seva *domain.Seva) (*domain.JournalEntry, error)

	// PostSponsorshipCommitment posts Dr sponsorship receivable, Cr sponsorship income.
	PostSponsorshipCommitment(ctx context.Context, actor domain.Actor, s *domain.Sponsorship) (*domain.JournalEntry, error)

	// PostSponsorshipPayment posts Dr cash/bank, Cr sponsorship receivable.
	PostSponsorshipPayment(ctx context.Context, actor domain.Actor, s *domain.Sponsorship, amount decimal.Decimal, mode domain.PaymentMode, paymentDate time.Time) (*domain.JournalEntry, error)

	// PostGoodsReceipt posts Dr stock in hand, Cr cash/bank or vendor payable.
	PostGoodsReceipt(ctx context.Context, actor domain.Actor, grn *domain.GoodsReceipt) (*domain.JournalEntry, error)

	// PostGoodsIssue posts Dr consumption expense per item category, Cr stock in hand.
	PostGoodsIssue(ctx context.Context, actor domain.Actor, gin *domain.GoodsIssue, byCategory map[domain.ItemCategory]decimal.Decimal) (*domain.JournalEntry, error)

	// PostDirectPurchase posts Dr stock in hand, Cr cash/bank for an off-PO purchase.
	PostDirectPurchase(ctx context.Context, actor domain.Actor, m *domain.StockMovement, item *domain.Item, mode domain.PaymentMode) (*domain.JournalEntry, error)

	// PostDirectIssue posts Dr consumption expense, Cr stock in hand for an off-GIN issue.
	PostDirectIssue(ctx context.Context, actor domain.Actor, m *domain.StockMovement, item *domain.Item) (*domain.JournalEntry, error)

	// PostPayrollAccrual posts Dr salary expense, Cr salary payable for a month's net pay.
	PostPayrollAccrual(ctx context.Context, actor domain.Actor, month string, totalNetPay decimal.Decimal, accrualDate time.Time) (*domain.JournalEntry, error)

	// PostPayrollPayment posts Dr salary payable, Cr cash/bank.
	PostPayrollPayment(ctx context.Context, actor domain.Actor, month string, totalNetPay decimal.Decimal, mode domain.PaymentMode, paymentDate time.Time) (*domain.JournalEntry, error)

	// PostAssetPurchase posts Dr the category's fixed-asset account, Cr cash/bank.
	PostAssetPurchase(ctx context.Context, actor domain.Actor, a *domain.Asset) (*domain.JournalEntry, error)

	// PostAssetDisposal posts Dr cash, Cr disposal proceeds income.
	PostAssetDisposal(ctx context.Context, actor domain.Actor, a *domain.Asset) (*domain.JournalEntry, error)

	// PostCWIPExpenditure posts Dr capital work in progress, Cr cash/bank.
	PostCWIPExpenditure(ctx context.Context, actor domain.Actor, e *domain.CWIPExpenditure) (*domain.JournalEntry, error)

	// PostCWIPCapitalization posts Dr the category's fixed-asset account, Cr CWIP
	// for the project's accumulated expenditure.
	PostCWIPCapitalization(ctx context.Context, actor domain.Actor, p *domain.CWIPProject, category domain.AssetCategory, capitalizedDate time.Time) (*domain.JournalEntry, error)

	// PostHundiOpening posts Dr cash in hand, Cr hundi collections.
	PostHundiOpening(ctx context.Context, actor domain.Actor, o *domain.HundiOpening) (*domain.JournalEntry, error)
}
