package mapping

import (
	"database/sql"
	"time"

	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	"github.com/MandirMitra/mandir_mitra_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		TempleID:          d.TempleID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		Narration:         d.Narration,
		ReferenceType:     string(d.ReferenceType),
		ReferenceID:       toNullString(d.ReferenceID),
		TotalAmount:       d.TotalAmount,
		Status:            string(d.Status),
		PostedBy:          ptrToNullString(d.PostedBy),
		PostedAt:          ptrToNullTime(d.PostedAt),
		CancelledBy:       ptrToNullString(d.CancelledBy),
		CancelledAt:       ptrToNullTime(d.CancelledAt),
		ReversalOfEntryID: ptrToNullString(d.ReversalOfEntryID),
		ReversedByEntryID: ptrToNullString(d.ReversedByEntryID),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		TempleID:          m.TempleID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		Narration:         m.Narration,
		ReferenceType:     domain.ReferenceType(m.ReferenceType),
		ReferenceID:       m.ReferenceID.String,
		TotalAmount:       m.TotalAmount,
		Status:            domain.EntryStatus(m.Status),
		PostedBy:          nullStringToPtr(m.PostedBy),
		PostedAt:          nullTimeToPtr(m.PostedAt),
		CancelledBy:       nullStringToPtr(m.CancelledBy),
		CancelledAt:       nullTimeToPtr(m.CancelledAt),
		ReversalOfEntryID: nullStringToPtr(m.ReversalOfEntryID),
		ReversedByEntryID: nullStringToPtr(m.ReversedByEntryID),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		LineNo:      d.LineNo,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		LineNo:      m.LineNo,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

func ptrToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
