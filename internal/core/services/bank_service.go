package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
)

const reconciliationDocKey = "VER"

// autoMatchWindow is how far either side of the transaction date the
// auto-matcher looks for a journal line of the same amount.
const autoMatchWindow = 72 * time.Hour

type bankService struct {
	BaseService
	bankRepo     portsrepo.BankRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// NewBankService creates a new bank reconciliation service.
func NewBankService(
	bankRepo portsrepo.BankRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
) portssvc.BankSvcFacade {
	return &bankService{
		bankRepo:     bankRepo,
		accountRepo:  accountRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

func (s *bankService) CreateBankAccount(ctx context.Context, actor domain.Actor, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	glAccount, err := s.accountRepo.FindAccountByID(ctx, actor.TempleID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: GL account %s not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, err
	}
	if glAccount.SubType != domain.SubTypeBank {
		return nil, fmt.Errorf("%w: account %s is not a BANK account", apperrors.ErrValidation, glAccount.Code)
	}

	now := time.Now().UTC()
	acc := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		TempleID:      actor.TempleID,
		AccountID:     glAccount.AccountID,
		BankName:      strings.TrimSpace(req.BankName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IFSC:          strings.ToUpper(strings.TrimSpace(req.IFSC)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.bankRepo.SaveBankAccount(ctx, acc); err != nil {
		s.LogError(ctx, err, "Failed to save bank account")
		return nil, err
	}
	return &acc, nil
}

func (s *bankService) ListBankAccounts(ctx context.Context, actor domain.Actor) ([]domain.BankAccount, error) {
	return s.bankRepo.ListBankAccounts(ctx, actor.TempleID)
}

// statementDateFormats are tried in order when parsing statement dates.
var statementDateFormats = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

func parseStatementDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range statementDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseStatementAmount(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ImportStatementCSV expects columns Date, Value Date, Description, Debit,
// Credit, Balance, Reference. Rows with unparseable dates or without an
// amount are skipped.
func (s *bankService) ImportStatementCSV(ctx context.Context, actor domain.Actor, bankAccountID string, r io.Reader) (*dto.StatementImportResponse, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, actor.TempleID, bankAccountID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	result := &dto.StatementImportResponse{}
	var lines []domain.BankStatementLine
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.SkippedRows++
			continue
		}
		result.TotalRows++

		field := func(i int) string {
			if i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		txnDate, ok := parseStatementDate(field(0))
		if !ok {
			result.SkippedRows++
			continue
		}
		debit := parseStatementAmount(field(3))
		credit := parseStatementAmount(field(4))
		if debit.IsZero() && credit.IsZero() {
			result.SkippedRows++
			continue
		}

		line := domain.BankStatementLine{
			StatementLineID: uuid.NewString(),
			TempleID:        actor.TempleID,
			BankAccountID:   bankAccount.BankAccountID,
			TxnDate:         txnDate,
			Description:     field(2),
			Debit:           debit,
			Credit:          credit,
			Balance:         parseStatementAmount(field(5)),
			Reference:       field(6),
			Status:          domain.ReconUnmatched,
			AuditFields:     audit,
		}
		if valueDate, ok := parseStatementDate(field(1)); ok {
			line.ValueDate = &valueDate
		}
		lines = append(lines, line)
	}

	if len(lines) > 0 {
		inserted, err := s.bankRepo.InsertStatementLines(ctx, lines)
		if err != nil {
			s.LogError(ctx, err, "Failed to insert statement lines", "bank_account_id", bankAccountID)
			return nil, err
		}
		result.Imported = inserted
		result.Duplicates = len(lines) - inserted
	}

	matched, unmatched, err := s.autoMatch(ctx, actor, bankAccount)
	if err != nil {
		s.LogError(ctx, err, "Auto-match failed after import", "bank_account_id", bankAccountID)
		return nil, err
	}
	result.AutoMatched = matched
	result.UnmatchedLeft = unmatched

	s.LogInfo(ctx, "Bank statement imported",
		"bank_account_id", bankAccountID,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"auto_matched", result.AutoMatched)
	return result, nil
}

// autoMatch pairs each UNMATCHED statement line with a posted journal line of
// the same amount within the match window. Lines with zero or multiple
// candidates stay unmatched for manual review.
func (s *bankService) autoMatch(ctx context.Context, actor domain.Actor, bankAccount *domain.BankAccount) (matched, unmatched int, err error) {
	status := domain.ReconUnmatched
	lines, err := s.bankRepo.ListStatementLines(ctx, actor.TempleID, bankAccount.BankAccountID, &status, nil, nil)
	if err != nil {
		return 0, 0, err
	}

	now := time.Now().UTC()
	for _, line := range lines {
		amount := line.Credit
		isDebit := true // Money into the bank is a debit on the GL account.
		if line.Credit.IsZero() {
			amount = line.Debit
			isDebit = false
		}

		candidates, err := s.bankRepo.FindMatchCandidates(ctx, actor.TempleID, bankAccount.AccountID, amount, isDebit, line.TxnDate, autoMatchWindow)
		if err != nil {
			return matched, 0, err
		}
		if len(candidates) != 1 {
			unmatched++
			continue
		}

		if err := s.bankRepo.UpdateStatementMatch(ctx, line.StatementLineID, &candidates[0].LineID, domain.ReconMatched, actor.UserID, now); err != nil {
			return matched, 0, err
		}
		matched++
	}
	return matched, unmatched, nil
}

func (s *bankService) ListStatementLines(ctx context.Context, actor domain.Actor, params dto.ListStatementLinesParams) (*dto.ListStatementLinesResponse, error) {
	var status *domain.ReconStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.ReconStatus(*params.Status)
		status = &st
	}
	lines, err := s.bankRepo.ListStatementLines(ctx, actor.TempleID, params.BankAccountID, status, params.FromDate, params.ToDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statement lines")
		return nil, err
	}

	resp := &dto.ListStatementLinesResponse{
		Lines: make([]dto.StatementLineResponse, 0, len(lines)),
	}
	for i := range lines {
		resp.Lines = append(resp.Lines, dto.ToStatementLineResponse(&lines[i]))
	}
	return resp, nil
}

func (s *bankService) SuggestMatches(ctx context.Context, actor domain.Actor, statementLineID string) ([]dto.MatchCandidateResponse, error) {
	line, err := s.bankRepo.FindStatementLineByID(ctx, actor.TempleID, statementLineID)
	if err != nil {
		return nil, err
	}
	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, actor.TempleID, line.BankAccountID)
	if err != nil {
		return nil, err
	}

	amount := line.Credit
	isDebit := true
	if line.Credit.IsZero() {
		amount = line.Debit
		isDebit = false
	}

	candidates, err := s.bankRepo.FindMatchCandidates(ctx, actor.TempleID, bankAccount.AccountID, amount, isDebit, line.TxnDate, autoMatchWindow)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.MatchCandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		candidateAmount := c.Debit
		if !isDebit {
			candidateAmount = c.Credit
		}
		resp = append(resp, dto.MatchCandidateResponse{
			JournalLineID: c.LineID,
			EntryID:       c.EntryID,
			EntryNumber:   c.EntryNumber,
			EntryDate:     c.EntryDate,
			Narration:     c.Narration,
			Amount:        candidateAmount,
			IsDebit:       isDebit,
		})
	}
	return resp, nil
}

func (s *bankService) MatchLine(ctx context.Context, actor domain.Actor, statementLineID string, journalLineID string) (*domain.BankStatementLine, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	line, err := s.bankRepo.FindStatementLineByID(ctx, actor.TempleID, statementLineID)
	if err != nil {
		return nil, err
	}
	if line.Status == domain.ReconVerified {
		return nil, fmt.Errorf("%w: statement line is verified and cannot be re-matched", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.bankRepo.UpdateStatementMatch(ctx, statementLineID, &journalLineID, domain.ReconMatched, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to match statement line", "statement_line_id", statementLineID)
		return nil, err
	}

	line.MatchedLineID = &journalLineID
	line.Status = domain.ReconMatched
	line.LastUpdatedAt = now
	line.LastUpdatedBy = actor.UserID
	return line, nil
}

func (s *bankService) UnmatchLine(ctx context.Context, actor domain.Actor, statementLineID string) (*domain.BankStatementLine, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	line, err := s.bankRepo.FindStatementLineByID(ctx, actor.TempleID, statementLineID)
	if err != nil {
		return nil, err
	}
	if line.Status == domain.ReconVerified {
		return nil, fmt.Errorf("%w: statement line is verified and cannot be unmatched", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.bankRepo.UpdateStatementMatch(ctx, statementLineID, nil, domain.ReconUnmatched, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to unmatch statement line", "statement_line_id", statementLineID)
		return nil, err
	}

	line.MatchedLineID = nil
	line.Status = domain.ReconUnmatched
	line.LastUpdatedAt = now
	line.LastUpdatedBy = actor.UserID
	return line, nil
}

func (s *bankService) CreateReconciliationRun(ctx context.Context, actor domain.Actor, bankAccountID string, from, to time.Time) (*domain.ReconciliationRun, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end is before period start", apperrors.ErrValidation)
	}

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, actor.TempleID, bankAccountID)
	if err != nil {
		return nil, err
	}

	lines, err := s.bankRepo.ListStatementLines(ctx, actor.TempleID, bankAccount.BankAccountID, nil, &from, &to)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	matchedCount := 0
	unmatchedCount := 0
	for _, line := range lines {
		switch line.Status {
		case domain.ReconMatched:
			if err := s.bankRepo.UpdateStatementMatch(ctx, line.StatementLineID, line.MatchedLineID, domain.ReconVerified, actor.UserID, now); err != nil {
				s.LogError(ctx, err, "Failed to verify statement line", "statement_line_id", line.StatementLineID)
				return nil, err
			}
			matchedCount++
		case domain.ReconVerified:
			matchedCount++
		default:
			unmatchedCount++
		}
	}

	year := to.Year()
	seq, err := s.sequenceRepo.NextValue(ctx, actor.TempleID, reconciliationDocKey, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate reconciliation run number")
		return nil, err
	}

	run := domain.ReconciliationRun{
		RunID:          uuid.NewString(),
		TempleID:       actor.TempleID,
		RunNumber:      fmt.Sprintf("%s/%d/%04d", reconciliationDocKey, year, seq),
		BankAccountID:  bankAccount.BankAccountID,
		PeriodFrom:     from,
		PeriodTo:       to,
		MatchedCount:   matchedCount,
		UnmatchedCount: unmatchedCount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.bankRepo.SaveReconciliationRun(ctx, run); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation run")
		return nil, err
	}
	s.LogInfo(ctx, "Reconciliation run recorded", "run_number", run.RunNumber, "matched", matchedCount, "unmatched", unmatchedCount)
	return &run, nil
}
