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
	"github.com/MandirMitra/mandir_mitra_app/internal/dto"
	"github.com/MandirMitra/mandir_mitra_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// journalService provides the posting engine: entry creation, lifecycle
// transitions and document numbering.
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	sequenceRepo  portsrepo.SequenceRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, sequenceRepo portsrepo.SequenceRepositoryFacade, reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		sequenceRepo:  sequenceRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// NextDocumentNumber returns the next number in the per-temple, per-year
// sequence for the given document key, formatted as PREFIX/YYYY/NNNN.
func (s *journalService) NextDocumentNumber(ctx context.Context, templeID string, docKey string, prefix string, date time.Time) (string, error) {
	year := date.Year()
	seq, err := s.sequenceRepo.NextValue(ctx, templeID, docKey, year)
	if err != nil {
		return "", fmt.Errorf("failed to get next sequence for %s: %w", docKey, err)
	}
	return fmt.Sprintf("%s/%d/%04d", prefix, year, seq), nil
}

// buildLines converts request lines to domain lines with generated IDs and
// sequential line numbers.
func buildLines(entryID string, reqLines []dto.CreateJournalLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, l := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			LineNo:      i + 1,
		}
	}
	return lines
}

// validateLineAccounts checks every line's account exists in the temple and is active.
func (s *journalService) validateLineAccounts(ctx context.Context, templeID string, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, templeID, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}
	for _, id := range ids {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, acc.Code, acc.Name)
		}
	}
	return nil
}

// CreateEntry validates and persists a new journal entry, as DRAFT or
// directly POSTED when the request asks for it.
func (s *journalService) CreateEntry(ctx context.Context, actor domain.Actor, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines)

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := s.validateLineAccounts(ctx, actor.TempleID, lines); err != nil {
		return nil, err
	}

	entryNumber, err := s.NextDocumentNumber(ctx, actor.TempleID, "JE", "JE", req.EntryDate)
	if err != nil {
		return nil, err
	}

	debits, _ := accounting.SumSides(lines)
	now := time.Now().UTC()

	entry := domain.JournalEntry{
		EntryID:       entryID,
		TempleID:      actor.TempleID,
		EntryNumber:   entryNumber,
		EntryDate:     req.EntryDate,
		Narration:     req.Narration,
		ReferenceType: domain.RefManual,
		TotalAmount:   debits,
		Status:        domain.EntryDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if req.Post {
		entry.Status = domain.EntryPosted
		entry.PostedBy = &actor.UserID
		entry.PostedAt = &now
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_number", entryNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entryID), slog.String("entry_number", entryNumber), slog.String("status", string(entry.Status)))
	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, actor.TempleID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries.
func (s *journalService) ListEntries(ctx context.Context, actor domain.Actor, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := portsrepo.ListEntriesFilter{
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}
	if params.ReferenceType != nil {
		refType := domain.ReferenceType(*params.ReferenceType)
		filter.ReferenceType = &refType
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, actor.TempleID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// PostEntry moves a DRAFT entry to POSTED.
func (s *journalService) PostEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	if err := s.RequireRole(actor, domain.RoleAccountant); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, actor.TempleID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: only DRAFT entries can be posted, entry is %s", apperrors.ErrValidation, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkPosted(ctx, entryID, actor.UserID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lost the race to another poster.
			return nil, fmt.Errorf("%w: entry %s is no longer DRAFT", apperrors.ErrConflict, entryID)
		}
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return s.GetEntryByID(ctx, actor, entryID)
}

// CancelEntry cancels a POSTED entry by creating a linked reversal entry with
// debit and credit sides swapped. The original lines stay untouched.
func (s *journalService) CancelEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(ctx, actor, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: only POSTED entries can be cancelled, entry is %s", apperrors.ErrValidation, entry.Status)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalNumber, err := s.NextDocumentNumber(ctx, actor.TempleID, "JE", "JE", now)
	if err != nil {
		return nil, err
	}

	reversalLines := make([]domain.JournalLine, len(entry.Lines))
	for i, l := range entry.Lines {
		reversalLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   l.AccountID,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Description: l.Description,
			LineNo:      i + 1,
		}
	}

	reversal := domain.JournalEntry{
		EntryID:           reversalID,
		TempleID:          actor.TempleID,
		EntryNumber:       reversalNumber,
		EntryDate:         now,
		Narration:         fmt.Sprintf("Reversal of %s: %s", entry.EntryNumber, entry.Narration),
		ReferenceType:     entry.ReferenceType,
		ReferenceID:       entry.ReferenceID,
		TotalAmount:       entry.TotalAmount,
		Status:            domain.EntryPosted,
		PostedBy:          &actor.UserID,
		PostedAt:          &now,
		ReversalOfEntryID: &entry.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, entry.EntryID, reversal, reversalLines, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to cancel journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry cancelled", slog.String("entry_id", entryID), slog.String("reversal_entry_id", reversalID))
	return s.GetEntryByID(ctx, actor, entryID)
}

// CalculateAccountBalance calculates the current balance of an account from
// its opening balance and all posted lines. Positive means a balance on the
// account's normal side.
func (s *journalService) CalculateAccountBalance(ctx context.Context, actor domain.Actor, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, actor.TempleID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	// Activity strictly before tomorrow covers everything posted to date.
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	activity, err := s.reportingRepo.GetAccountOpening(ctx, actor.TempleID, accountID, tomorrow)
	if err != nil {
		return decimal.Zero, err
	}

	balance := activity.NetBalance()
	if !account.NormalSideDebit() {
		balance = balance.Neg()
	}
	return balance, nil
}
