package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the append-only ledger. The optional foreign keys
// are nullable in the database, hence the pointers.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	CompanyID      string          `db:"company_id"`
	EntryType      string          `db:"entry_type"`
	Amount         decimal.Decimal `db:"amount"`
	EntryDate      time.Time       `db:"entry_date"`
	Notes          string          `db:"notes"`
	AccountID      *string         `db:"account_id"`
	ProjectID      *string         `db:"project_id"`
	CustomerID     *string         `db:"customer_id"`
	VendorID       *string         `db:"vendor_id"`
	ExpenseID      *string         `db:"expense_id"`
	JournalID      *string         `db:"journal_id"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	AuditFields
}
