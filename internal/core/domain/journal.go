package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
// Draft -> Validated -> Posted, or Draft/Validated -> Rejected.
// A posted journal can later be flagged Reversed by an offsetting journal;
// its lines are never mutated.
type JournalStatus string

const (
	JournalDraft     JournalStatus = "DRAFT"
	JournalValidated JournalStatus = "VALIDATED"
	JournalPosted    JournalStatus = "POSTED"
	JournalRejected  JournalStatus = "REJECTED"
	JournalReversed  JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple lines.
type Journal struct {
	JournalID   string        `json:"journalID"` // Primary Key (e.g., UUID)
	CompanyID   string        `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	JournalDate time.Time     `json:"journalDate"`
	Reference   string        `json:"reference"` // External reference, nullable
	Notes       string        `json:"notes"`     // Nullable user description
	Status      JournalStatus `json:"status"`

	// Amount is the economic value of the journal: the sum of one side of a
	// balanced entry. Set by the poster.
	Amount decimal.Decimal `json:"amount"`

	// OriginalJournalID links a reversing journal back to the journal it
	// reverses; ReversingJournalID is the inverse link on the original.
	OriginalJournalID  *string `json:"originalJournalID"`
	ReversingJournalID *string `json:"reversingJournalID"`

	Lines []JournalLine `json:"lines"` // Often loaded separately
	AuditFields
}

// JournalLine is one leg of a journal entry. Exactly one of Debit and Credit
// must be nonzero and positive.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (e.g., UUID)
	JournalID   string          `json:"journalID"` // FK -> journals.journal_id (Not Null)
	AccountID   string          `json:"accountID"` // FK -> accounts.account_id (Not Null)
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	AuditFields
}

// IsDebit reports whether the line is a debit leg.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the magnitude of whichever side of the line is set.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
