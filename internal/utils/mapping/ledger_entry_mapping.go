package mapping

import (
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/finbook-app/finbook_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		CompanyID:      d.CompanyID,
		EntryType:      string(d.Type),
		Amount:         d.Amount,
		EntryDate:      d.EntryDate,
		Notes:          d.Notes,
		AccountID:      d.AccountID,
		ProjectID:      d.ProjectID,
		CustomerID:     d.CustomerID,
		VendorID:       d.VendorID,
		ExpenseID:      d.ExpenseID,
		JournalID:      d.JournalID,
		RunningBalance: d.RunningBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		CompanyID:      m.CompanyID,
		Type:           domain.EntryType(m.EntryType),
		Amount:         m.Amount,
		EntryDate:      m.EntryDate,
		Notes:          m.Notes,
		AccountID:      m.AccountID,
		ProjectID:      m.ProjectID,
		CustomerID:     m.CustomerID,
		VendorID:       m.VendorID,
		ExpenseID:      m.ExpenseID,
		JournalID:      m.JournalID,
		RunningBalance: m.RunningBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain form
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
