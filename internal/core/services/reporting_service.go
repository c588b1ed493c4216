package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/accounting"
)

// plGroupDef is one named code range of the profit and loss statement.
type plGroupDef struct {
	name     string
	codeFrom int
	codeTo   int
}

var plIncomeGroups = []plGroupDef{
	{"Donation Income", 4100, 4199},
	{"Seva Income", 4200, 4299},
	{"Sponsorship Income", 4300, 4399},
	{"Hundi Collections", 4400, 4499},
	{"Other Income", 4800, 4999},
}

var plExpenseGroups = []plGroupDef{
	{"Staff Costs", 5100, 5199},
	{"Material Consumption", 5200, 5299},
	{"Repairs and Maintenance", 5300, 5399},
	{"Other Expenses", 5900, 5999},
}

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, actor domain.Actor, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	activities, err := s.reportingRepo.GetAccountActivity(ctx, actor.TempleID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity")
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{AsOf: asOf}
	for _, a := range activities {
		net := a.NetBalance()
		if net.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        a.Code,
			AccountName: a.Name,
			AccountType: a.AccountType,
		}
		if net.IsPositive() {
			row.DebitBalance = net
			resp.TotalDebits = resp.TotalDebits.Add(net)
		} else {
			row.CreditBalance = net.Neg()
			resp.TotalCredits = resp.TotalCredits.Add(net.Neg())
		}
		resp.Rows = append(resp.Rows, row)
	}
	resp.Balanced = resp.TotalDebits.Sub(resp.TotalCredits).Abs().LessThanOrEqual(accounting.BalanceTolerance)
	return resp, nil
}

func (s *reportingService) Ledger(ctx context.Context, actor domain.Actor, accountID string, from, to time.Time) (*dto.LedgerResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, actor.TempleID, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.reportingRepo.GetAccountOpening(ctx, actor.TempleID, accountID, from)
	if err != nil {
		return nil, err
	}

	// The running balance is carried on the account's normal side.
	openingBalance := opening.NetBalance()
	if !account.NormalSideDebit() {
		openingBalance = openingBalance.Neg()
	}

	lines, err := s.reportingRepo.GetLedgerLines(ctx, actor.TempleID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", "account_id", accountID)
		return nil, err
	}

	running := openingBalance
	for i := range lines {
		delta := lines[i].Debit.Sub(lines[i].Credit)
		if !account.NormalSideDebit() {
			delta = delta.Neg()
		}
		running = running.Add(delta)
		lines[i].RunningBalance = running
	}

	return &dto.LedgerResponse{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: openingBalance,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}

// codeGroup finds the report group a 4-5 digit account code falls into.
// Five digit codes are grouped by their leading four digits.
func codeGroup(groups []plGroupDef, code string) int {
	digits := code
	if len(digits) > 4 {
		digits = digits[:4]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	for i, g := range groups {
		if n >= g.codeFrom && n <= g.codeTo {
			return i
		}
	}
	return -1
}

func buildPLGroups(defs []plGroupDef, fallback int, accounts []domain.AccountAmount, codes []string) []domain.PLGroup {
	groups := make([]domain.PLGroup, len(defs))
	for i, d := range defs {
		groups[i] = domain.PLGroup{
			Name:     d.name,
			CodeFrom: strconv.Itoa(d.codeFrom),
			CodeTo:   strconv.Itoa(d.codeTo),
		}
	}
	for i, acct := range accounts {
		idx := codeGroup(defs, codes[i])
		if idx < 0 {
			idx = fallback
		}
		groups[idx].Accounts = append(groups[idx].Accounts, acct)
		groups[idx].Amount = groups[idx].Amount.Add(acct.Amount)
	}

	nonEmpty := groups[:0]
	for _, g := range groups {
		if len(g.Accounts) > 0 {
			nonEmpty = append(nonEmpty, g)
		}
	}
	return nonEmpty
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, actor domain.Actor, from, to time.Time) (*dto.ProfitLossResponse, error) {
	activities, err := s.reportingRepo.GetAccountActivityRange(ctx, actor.TempleID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity")
		return nil, err
	}

	var incomeAccounts, expenseAccounts []domain.AccountAmount
	var incomeCodes, expenseCodes []string
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	for _, a := range activities {
		switch a.AccountType {
		case domain.Income:
			amount := a.TotalCredit.Sub(a.TotalDebit)
			if amount.IsZero() {
				continue
			}
			incomeAccounts = append(incomeAccounts, domain.AccountAmount{
				AccountID: a.AccountID, Code: a.Code, Name: a.Name, Amount: amount,
			})
			incomeCodes = append(incomeCodes, a.Code)
			totalIncome = totalIncome.Add(amount)
		case domain.Expense:
			amount := a.TotalDebit.Sub(a.TotalCredit)
			if amount.IsZero() {
				continue
			}
			expenseAccounts = append(expenseAccounts, domain.AccountAmount{
				AccountID: a.AccountID, Code: a.Code, Name: a.Name, Amount: amount,
			})
			expenseCodes = append(expenseCodes, a.Code)
			totalExpenses = totalExpenses.Add(amount)
		}
	}

	return &dto.ProfitLossResponse{
		FromDate:      from,
		ToDate:        to,
		IncomeGroups:  buildPLGroups(plIncomeGroups, len(plIncomeGroups)-1, incomeAccounts, incomeCodes),
		ExpenseGroups: buildPLGroups(plExpenseGroups, len(plExpenseGroups)-1, expenseAccounts, expenseCodes),
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetSurplus:    totalIncome.Sub(totalExpenses),
	}, nil
}

func addToSection(section *dto.BalanceSheetSection, a domain.AccountActivity, amount decimal.Decimal) {
	section.Accounts = append(section.Accounts, domain.AccountAmount{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Amount:    amount,
	})
	section.Total = section.Total.Add(amount)
}

func (s *reportingService) BalanceSheet(ctx context.Context, actor domain.Actor, asOf time.Time) (*dto.BalanceSheetResponse, error) {
	activities, err := s.reportingRepo.GetAccountActivity(ctx, actor.TempleID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity")
		return nil, err
	}

	resp := &dto.BalanceSheetResponse{AsOf: asOf}
	resp.FixedAssets.Name = "Fixed Assets"
	resp.CurrentAssets.Name = "Current Assets"
	resp.CorpusFunds.Name = "Corpus Funds"
	resp.DesignatedFunds.Name = "Designated Funds"
	resp.Liabilities.Name = "Liabilities"

	for _, a := range activities {
		net := a.NetBalance()
		if net.IsZero() {
			continue
		}
		switch a.AccountType {
		case domain.AccountTypeAsset:
			if a.SubType == domain.SubTypeFixedAsset {
				addToSection(&resp.FixedAssets, a, net)
			} else {
				addToSection(&resp.CurrentAssets, a, net)
			}
		case domain.Liability:
			addToSection(&resp.Liabilities, a, net.Neg())
		case domain.Equity:
			switch {
			case a.SubType == domain.SubTypeCorpusFund:
				addToSection(&resp.CorpusFunds, a, net.Neg())
			case a.SubType == domain.SubTypeDesignatedFund:
				addToSection(&resp.DesignatedFunds, a, net.Neg())
			case strings.Contains(strings.ToLower(a.Name), "corpus"):
				addToSection(&resp.CorpusFunds, a, net.Neg())
			default:
				addToSection(&resp.DesignatedFunds, a, net.Neg())
			}
		case domain.Income, domain.Expense:
			// Income and expense balances fold into the accumulated surplus.
			resp.AccumulatedSurplus = resp.AccumulatedSurplus.Add(net.Neg())
		}
	}

	resp.TotalAssets = resp.FixedAssets.Total.Add(resp.CurrentAssets.Total)
	resp.TotalFundsAndLiab = resp.CorpusFunds.Total.
		Add(resp.DesignatedFunds.Total).
		Add(resp.Liabilities.Total).
		Add(resp.AccumulatedSurplus)
	resp.Balanced = resp.TotalAssets.Sub(resp.TotalFundsAndLiab).Abs().LessThanOrEqual(accounting.BalanceTolerance)
	return resp, nil
}

// bookOpening sums the netted balances of accounts of the given subtypes for
// all posted activity strictly before from.
func (s *reportingService) bookOpening(ctx context.Context, templeID string, subTypes []string, from time.Time) (decimal.Decimal, error) {
	activities, err := s.reportingRepo.GetAccountActivity(ctx, templeID, from.AddDate(0, 0, -1))
	if err != nil {
		return decimal.Zero, err
	}
	opening := decimal.Zero
	for _, a := range activities {
		for _, st := range subTypes {
			if a.SubType == st {
				opening = opening.Add(a.NetBalance())
				break
			}
		}
	}
	return opening, nil
}

func (s *reportingService) book(ctx context.Context, actor domain.Actor, subTypes []string, from, to time.Time) (*dto.BookResponse, error) {
	opening, err := s.bookOpening(ctx, actor.TempleID, subTypes, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute book opening balance")
		return nil, err
	}

	lines, err := s.reportingRepo.GetBookLines(ctx, actor.TempleID, subTypes, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list book lines")
		return nil, err
	}

	resp := &dto.BookResponse{
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: opening,
	}
	running := opening
	for i := range lines {
		running = running.Add(lines[i].Receipt).Sub(lines[i].Payment)
		lines[i].RunningBalance = running
		resp.TotalReceipts = resp.TotalReceipts.Add(lines[i].Receipt)
		resp.TotalPayments = resp.TotalPayments.Add(lines[i].Payment)
	}
	resp.Lines = lines
	resp.ClosingBalance = running
	return resp, nil
}

func (s *reportingService) DayBook(ctx context.Context, actor domain.Actor, from, to time.Time) (*dto.BookResponse, error) {
	return s.book(ctx, actor, []string{domain.SubTypeCash, domain.SubTypeBank}, from, to)
}

func (s *reportingService) CashBook(ctx context.Context, actor domain.Actor, from, to time.Time) (*dto.BookResponse, error) {
	return s.book(ctx, actor, []string{domain.SubTypeCash}, from, to)
}

func (s *reportingService) BankBook(ctx context.Context, actor domain.Actor, from, to time.Time, accountID *string) (*dto.BookResponse, error) {
	if accountID == nil || *accountID == "" {
		return s.book(ctx, actor, []string{domain.SubTypeBank}, from, to)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, actor.TempleID, *accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.reportingRepo.GetAccountOpening(ctx, actor.TempleID, account.AccountID, from)
	if err != nil {
		return nil, err
	}
	openingBalance := opening.NetBalance()

	ledgerLines, err := s.reportingRepo.GetLedgerLines(ctx, actor.TempleID, account.AccountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list book lines", "account_id", account.AccountID)
		return nil, err
	}

	resp := &dto.BookResponse{
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: openingBalance,
	}
	running := openingBalance
	for _, l := range ledgerLines {
		running = running.Add(l.Debit).Sub(l.Credit)
		resp.TotalReceipts = resp.TotalReceipts.Add(l.Debit)
		resp.TotalPayments = resp.TotalPayments.Add(l.Credit)
		resp.Lines = append(resp.Lines, domain.BookLine{
			EntryID:        l.EntryID,
			EntryNumber:    l.EntryNumber,
			EntryDate:      l.EntryDate,
			AccountID:      account.AccountID,
			AccountName:    account.Name,
			Narration:      l.Narration,
			Receipt:        l.Debit,
			Payment:        l.Credit,
			RunningBalance: running,
		})
	}
	resp.ClosingBalance = running
	return resp, nil
}
