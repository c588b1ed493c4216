package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Posting purpose keys. Temples can remap any of these to a different account
// code through the account_mappings table; defaultPurposeCodes below is the
// fallback.
const (
	PurposeCash                   = "cash"
	PurposeBank                   = "bank"
	PurposeStock                  = "inventory.stock"
	PurposeVendorPayable          = "inventory.vendor_payable"
	PurposeSponsorshipReceivable  = "sponsorship.receivable"
	PurposeSponsorshipIncome      = "sponsorship.income"
	PurposeSevaIncome             = "seva.income"
	PurposeHundiIncome            = "hundi.income"
	PurposeDisposalProceeds       = "asset.disposal_proceeds"
	PurposeCWIP                   = "asset.cwip"
	PurposeSalaryExpense          = "payroll.salary_expense"
	PurposeSalaryPayable          = "payroll.salary_payable"
	PurposeMaintenanceExpense     = "inventory.expense.MAINTENANCE"
	donationIncomePurposePrefix   = "donation.income."
	consumptionExpensePrefix      = "inventory.expense."
	fixedAssetPurposePrefix       = "asset.fixed."
)

// defaultPurposeCodes are the built-in account codes each purpose resolves to
// when the temple has no mapping override. They match the seeded chart.
var defaultPurposeCodes = map[string]string{
	PurposeCash:                  "1101",
	PurposeBank:                  "1201",
	PurposeStock:                 "1301",
	PurposeSponsorshipReceivable: "1401",
	PurposeCWIP:                  "1601",
	PurposeSalaryPayable:         "2101",
	PurposeVendorPayable:         "2201",
	PurposeSevaIncome:            "4201",
	PurposeSponsorshipIncome:     "4301",
	PurposeHundiIncome:           "4401",
	PurposeDisposalProceeds:      "4801",
	PurposeSalaryExpense:         "5101",

	donationIncomePurposePrefix + string(domain.DonationGeneral):      "4101",
	donationIncomePurposePrefix + string(domain.DonationAnnadanam):    "4102",
	donationIncomePurposePrefix + string(domain.DonationConstruction): "4103",
	donationIncomePurposePrefix + string(domain.DonationCorpus):       "4104",
	donationIncomePurposePrefix + string(domain.DonationSpecialPooja): "4105",

	consumptionExpensePrefix + string(domain.ItemPoojaMaterial): "5201",
	consumptionExpensePrefix + string(domain.ItemProvisions):    "5202",
	consumptionExpensePrefix + string(domain.ItemConsumables):   "5203",
	consumptionExpensePrefix + string(domain.ItemMaintenance):   "5301",

	fixedAssetPurposePrefix + string(domain.AssetLand):      "1501",
	fixedAssetPurposePrefix + string(domain.AssetBuilding):  "1502",
	fixedAssetPurposePrefix + string(domain.AssetVehicle):   "1503",
	fixedAssetPurposePrefix + string(domain.AssetEquipment): "1504",
	fixedAssetPurposePrefix + string(domain.AssetFurniture): "1505",
}

// postingService turns domain transactions into balanced, immediately POSTED
// journal entries. One adapter method per transaction shape.
type postingService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, sequenceRepo portsrepo.SequenceRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// ResolveAccount resolves a posting purpose to a ledger account, honouring the
// temple's mapping override before the built-in default code.
func (s *postingService) ResolveAccount(ctx context.Context, templeID string, purpose string) (*domain.Account, error) {
	code := ""
	mapping, err := s.accountRepo.FindMapping(ctx, templeID, purpose)
	switch {
	case err == nil:
		code = mapping.AccountCode
	case errors.Is(err, apperrors.ErrNotFound):
		var ok bool
		code, ok = defaultPurposeCodes[purpose]
		if !ok {
			return nil, fmt.Errorf("%w: no account mapped for purpose %s", apperrors.ErrValidation, purpose)
		}
	default:
		return nil, fmt.Errorf("failed to look up mapping for purpose %s: %w", purpose, err)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, templeID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account with code %s for purpose %s does not exist", apperrors.ErrValidation, code, purpose)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s for purpose %s is inactive", apperrors.ErrValidation, code, purpose)
	}
	return account, nil
}

// settlementPurpose picks cash or bank based on the payment mode.
func settlementPurpose(mode domain.PaymentMode) string {
	if mode.SettledViaBank() {
		return PurposeBank
	}
	return PurposeCash
}

// postEntry builds, validates and saves an immediately POSTED entry.
func (s *postingService) postEntry(ctx context.Context, actor domain.Actor, entryDate time.Time, narration string, refType domain.ReferenceType, refID string, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
		lines[i].LineNo = i + 1
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	year := entryDate.Year()
	seq, err := s.sequenceRepo.NextValue(ctx, actor.TempleID, "JE", year)
	if err != nil {
		return nil, fmt.Errorf("failed to get next entry number: %w", err)
	}
	entryNumber := fmt.Sprintf("JE/%d/%04d", year, seq)

	debits, _ := accounting.SumSides(lines)
	now := time.Now().UTC()

	entry := domain.JournalEntry{
		EntryID:       entryID,
		TempleID:      actor.TempleID,
		EntryNumber:   entryNumber,
		EntryDate:     entryDate,
		Narration:     narration,
		ReferenceType: refType,
		ReferenceID:   refID,
		TotalAmount:   debits,
		Status:        domain.EntryPosted,
		PostedBy:      &actor.UserID,
		PostedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save posting entry", slog.String("entry_number", entryNumber), slog.String("reference_type", string(refType)))
		return nil, err
	}

	s.LogInfo(ctx, "Posting entry saved", slog.String("entry_number", entryNumber), slog.String("reference_type", string(refType)), slog.String("reference_id", refID))
	entry.Lines = lines
	return &entry, nil
}

// twoLine builds the common Dr one account / Cr another shape.
func twoLine(debitAccount, creditAccount *domain.Account, amount decimal.Decimal, description string) []domain.JournalLine {
	return []domain.JournalLine{
		{AccountID: debitAccount.AccountID, Debit: amount, Description: description},
		{AccountID: creditAccount.AccountID, Credit: amount, Description: description},
	}
}

// PostDonation posts Dr cash/bank, Cr donation income by category.
func (s *postingService) PostDonation(ctx context.Context, actor domain.Actor, d *domain.Donation) (*domain.JournalEntry, error) {
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(d.PaymentMode))
	if err != nil {
		return nil, err
	}
	income, err := s.ResolveAccount(ctx, actor.TempleID, donationIncomePurposePrefix+string(d.Category))
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Donation %s (%s)", d.ReceiptNumber, d.Category)
	lines := twoLine(settle, income, d.Amount, narration)
	return s.postEntry(ctx, actor, d.DonationDate, narration, domain.RefDonation, d.DonationID, lines)
}

// PostSevaBooking posts Dr cash/bank, Cr the seva's income account.
func (s *postingService) PostSevaBooking(ctx context.Context, actor domain.Actor, b *domain.SevaBooking, seva *domain.Seva) (*domain.JournalEntry, error) {
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(b.PaymentMode))
	if err != nil {
		return nil, err
	}

	var income *domain.Account
	if seva.IncomeAccountCode != "" {
		income, err = s.accountRepo.FindAccountByCode(ctx, actor.TempleID, seva.IncomeAccountCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve seva income account %s: %w", seva.IncomeAccountCode, err)
		}
	} else {
		income, err = s.ResolveAccount(ctx, actor.TempleID, PurposeSevaIncome)
		if err != nil {
			return nil, err
		}
	}

	narration := fmt.Sprintf("Seva booking %s (%s)", b.BookingID, seva.Name)
	lines := twoLine(settle, income, b.Amount, narration)
	return s.postEntry(ctx, actor, b.BookingDate, narration, domain.RefSeva, b.BookingID, lines)
}

// PostSponsorshipCommitment posts Dr sponsorship receivable, Cr sponsorship income.
func (s *postingService) PostSponsorshipCommitment(ctx context.Context, actor domain.Actor, sp *domain.Sponsorship) (*domain.JournalEntry, error) {
	receivable, err := s.ResolveAccount(ctx, actor.TempleID, PurposeSponsorshipReceivable)
	if err != nil {
		return nil, err
	}
	income, err := s.ResolveAccount(ctx, actor.TempleID, PurposeSponsorshipIncome)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Sponsorship commitment %s (%s)", sp.SponsorshipNumber, sp.ProgramName)
	lines := twoLine(receivable, income, sp.CommittedAmount, narration)
	return s.postEntry(ctx, actor, sp.CreatedAt, narration, domain.RefSponsorship, sp.SponsorshipID, lines)
}

// PostSponsorshipPayment posts Dr cash/bank, Cr sponsorship receivable.
func (s *postingService) PostSponsorshipPayment(ctx context.Context, actor domain.Actor, sp *domain.Sponsorship, amount decimal.Decimal, mode domain.PaymentMode, paymentDate time.Time) (*domain.JournalEntry, error) {
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(mode))
	if err != nil {
		return nil, err
	}
	receivable, err := s.ResolveAccount(ctx, actor.TempleID, PurposeSponsorshipReceivable)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Sponsorship payment against %s", sp.SponsorshipNumber)
	lines := twoLine(settle, receivable, amount, narration)
	return s.postEntry(ctx, actor, paymentDate, narration, domain.RefSponsorship, sp.SponsorshipID, lines)
}

// PostGoodsReceipt posts Dr stock in hand, Cr cash/bank or vendor payable.
func (s *postingService) PostGoodsReceipt(ctx context.Context, actor domain.Actor, grn *domain.GoodsReceipt) (*domain.JournalEntry, error) {
	stock, err := s.ResolveAccount(ctx, actor.TempleID, PurposeStock)
	if err != nil {
		return nil, err
	}

	creditPurpose := settlementPurpose(grn.PaymentMode)
	if grn.OnCredit {
		creditPurpose = PurposeVendorPayable
	}
	credit, err := s.ResolveAccount(ctx, actor.TempleID, creditPurpose)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Goods receipt %s", grn.GRNNumber)
	lines := twoLine(stock, credit, grn.TotalAmount, narration)
	return s.postEntry(ctx, actor, grn.ReceiptDate, narration, domain.RefInventory, grn.GRNID, lines)
}

// PostGoodsIssue posts Dr consumption expense per item category, Cr stock in hand.
func (s *postingService) PostGoodsIssue(ctx context.Context, actor domain.Actor, gin *domain.GoodsIssue, byCategory map[domain.ItemCategory]decimal.Decimal) (*domain.JournalEntry, error) {
	stock, err := s.ResolveAccount(ctx, actor.TempleID, PurposeStock)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Goods issue %s (%s)", gin.GINNumber, gin.Purpose)
	var lines []domain.JournalLine
	total := decimal.Zero

	// Stable iteration: category constants in declaration order.
	for _, category := range []domain.ItemCategory{domain.ItemPoojaMaterial, domain.ItemProvisions, domain.ItemConsumables, domain.ItemMaintenance} {
		amount, ok := byCategory[category]
		if !ok || amount.IsZero() {
			continue
		}
		expense, err := s.ResolveAccount(ctx, actor.TempleID, consumptionExpensePrefix+string(category))
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.JournalLine{AccountID: expense.AccountID, Debit: amount, Description: narration})
		total = total.Add(amount)
	}
	lines = append(lines, domain.JournalLine{AccountID: stock.AccountID, Credit: total, Description: narration})

	return s.postEntry(ctx, actor, gin.IssueDate, narration, domain.RefInventory, gin.GINID, lines)
}

// PostDirectPurchase posts Dr stock in hand, Cr cash/bank for an off-PO purchase.
func (s *postingService) PostDirectPurchase(ctx context.Context, actor domain.Actor, m *domain.StockMovement, item *domain.Item, mode domain.PaymentMode) (*domain.JournalEntry, error) {
	stock, err := s.ResolveAccount(ctx, actor.TempleID, PurposeStock)
	if err != nil {
		return nil, err
	}
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(mode))
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Direct purchase %s (%s)", m.MovementNumber, item.Name)
	lines := twoLine(stock, settle, m.Amount, narration)
	return s.postEntry(ctx, actor, m.MovementDate, narration, domain.RefInventory, m.MovementID, lines)
}

// PostDirectIssue posts Dr consumption expense, Cr stock in hand for an off-GIN issue.
func (s *postingService) PostDirectIssue(ctx context.Context, actor domain.Actor, m *domain.StockMovement, item *domain.Item) (*domain.JournalEntry, error) {
	expense, err := s.ResolveAccount(ctx, actor.TempleID, consumptionExpensePrefix+string(item.Category))
	if err != nil {
		return nil, err
	}
	stock, err := s.ResolveAccount(ctx, actor.TempleID, PurposeStock)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Direct issue %s (%s)", m.MovementNumber, item.Name)
	lines := twoLine(expense, stock, m.Amount, narration)
	return s.postEntry(ctx, actor, m.MovementDate, narration, domain.RefInventory, m.MovementID, lines)
}

// PostPayrollAccrual posts Dr salary expense, Cr salary payable for a month's net pay.
func (s *postingService) PostPayrollAccrual(ctx context.Context, actor domain.Actor, month string, totalNetPay decimal.Decimal, accrualDate time.Time) (*domain.JournalEntry, error) {
	expense, err := s.ResolveAccount(ctx, actor.TempleID, PurposeSalaryExpense)
	if err != nil {
		return nil, err
	}
	payable, err := s.ResolveAccount(ctx, actor.TempleID, PurposeSalaryPayable)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Salary accrual for %s", month)
	lines := twoLine(expense, payable, totalNetPay, narration)
	return s.postEntry(ctx, actor, accrualDate, narration, domain.RefPayroll, month, lines)
}

// PostPayrollPayment posts Dr salary payable, Cr cash/bank.
func (s *postingService) PostPayrollPayment(ctx context.Context, actor domain.Actor, month string, totalNetPay decimal.Decimal, mode domain.PaymentMode, paymentDate time.Time) (*domain.JournalEntry, error) {
	payable, err := s.ResolveAccount(ctx, actor.TempleID, PurposeSalaryPayable)
	if err != nil {
		return nil, err
	}
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(mode))
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Salary payment for %s", month)
	lines := twoLine(payable, settle, totalNetPay, narration)
	return s.postEntry(ctx, actor, paymentDate, narration, domain.RefPayroll, month, lines)
}

// PostAssetPurchase posts Dr the category's fixed-asset account, Cr cash/bank.
func (s *postingService) PostAssetPurchase(ctx context.Context, actor domain.Actor, a *domain.Asset) (*domain.JournalEntry, error) {
	assetAccount, err := s.ResolveAccount(ctx, actor.TempleID, fixedAssetPurposePrefix+string(a.Category))
	if err != nil {
		return nil, err
	}
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(a.PaymentMode))
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Asset purchase %s (%s)", a.AssetNumber, a.Name)
	lines := twoLine(assetAccount, settle, a.PurchaseCost, narration)
	return s.postEntry(ctx, actor, a.PurchaseDate, narration, domain.RefAsset, a.AssetID, lines)
}

// PostAssetDisposal posts Dr cash, Cr disposal proceeds income.
func (s *postingService) PostAssetDisposal(ctx context.Context, actor domain.Actor, a *domain.Asset) (*domain.JournalEntry, error) {
	cash, err := s.ResolveAccount(ctx, actor.TempleID, PurposeCash)
	if err != nil {
		return nil, err
	}
	proceeds, err := s.ResolveAccount(ctx, actor.TempleID, PurposeDisposalProceeds)
	if err != nil {
		return nil, err
	}

	disposalDate := time.Now().UTC()
	if a.DisposalDate != nil {
		disposalDate = *a.DisposalDate
	}

	narration := fmt.Sprintf("Asset disposal %s (%s)", a.AssetNumber, a.Name)
	lines := twoLine(cash, proceeds, a.DisposalProceeds, narration)
	return s.postEntry(ctx, actor, disposalDate, narration, domain.RefAsset, a.AssetID, lines)
}

// PostCWIPExpenditure posts Dr capital work in progress, Cr cash/bank.
func (s *postingService) PostCWIPExpenditure(ctx context.Context, actor domain.Actor, e *domain.CWIPExpenditure) (*domain.JournalEntry, error) {
	cwip, err := s.ResolveAccount(ctx, actor.TempleID, PurposeCWIP)
	if err != nil {
		return nil, err
	}
	settle, err := s.ResolveAccount(ctx, actor.TempleID, settlementPurpose(e.PaymentMode))
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("CWIP expenditure: %s", e.Description)
	lines := twoLine(cwip, settle, e.Amount, narration)
	return s.postEntry(ctx, actor, e.SpendDate, narration, domain.RefAsset, e.ProjectID, lines)
}

// PostCWIPCapitalization posts Dr the category's fixed-asset account, Cr CWIP
// for the project's accumulated expenditure.
func (s *postingService) PostCWIPCapitalization(ctx context.Context, actor domain.Actor, p *domain.CWIPProject, category domain.AssetCategory, capitalizedDate time.Time) (*domain.JournalEntry, error) {
	assetAccount, err := s.ResolveAccount(ctx, actor.TempleID, fixedAssetPurposePrefix+string(category))
	if err != nil {
		return nil, err
	}
	cwip, err := s.ResolveAccount(ctx, actor.TempleID, PurposeCWIP)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Capitalization of %s", p.Name)
	lines := twoLine(assetAccount, cwip, p.TotalExpenditure, narration)
	return s.postEntry(ctx, actor, capitalizedDate, narration, domain.RefAsset, p.ProjectID, lines)
}

// PostHundiOpening posts Dr cash in hand, Cr hundi collections.
func (s *postingService) PostHundiOpening(ctx context.Context, actor domain.Actor, o *domain.HundiOpening) (*domain.JournalEntry, error) {
	cash, err := s.ResolveAccount(ctx, actor.TempleID, PurposeCash)
	if err != nil {
		return nil, err
	}
	income, err := s.ResolveAccount(ctx, actor.TempleID, PurposeHundiIncome)
	if err != nil {
		return nil, err
	}

	narration := fmt.Sprintf("Hundi opening %s", o.OpeningNumber)
	lines := twoLine(cash, income, o.CountedAmount, narration)
	return s.postEntry(ctx, actor, o.OpeningDate, narration, domain.RefHundi, o.OpeningID, lines)
}
