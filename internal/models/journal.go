package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a balanced financial event row.
type Journal struct {
	JournalID          string          `db:"journal_id"`
	CompanyID          string          `db:"company_id"`
	JournalDate        time.Time       `db:"journal_date"`
	Reference          string          `db:"reference"`
	Notes              string          `db:"notes"`
	Status             string          `db:"status"`
	Amount             decimal.Decimal `db:"amount"`
	OriginalJournalID  *string         `db:"original_journal_id"`
	ReversingJournalID *string         `db:"reversing_journal_id"`
	AuditFields
}

// JournalLine is one leg of a journal entry row. Exactly one of debit and
// credit is positive.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	AccountID   string          `db:"account_id"`
	AccountName string          `db:"account_name"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	AuditFields
}
