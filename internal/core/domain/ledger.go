package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType categorizes a ledger entry.
type EntryType string

const (
	EntryIncome      EntryType = "INCOME"
	EntryExpense     EntryType = "EXPENSE"
	EntryTransferIn  EntryType = "TRANSFER_IN"
	EntryTransferOut EntryType = "TRANSFER_OUT"
	EntryDebtTaken   EntryType = "DEBT_TAKEN"
	EntryDebtRepaid  EntryType = "DEBT_REPAID"
	EntryOther       EntryType = "OTHER"
)

// LedgerEntry is a single immutable row of the append-only ledger. Entries are
// created by expense, sale, payment and journal flows and are never deleted.
//
// Sign convention: EXPENSE entries carry a negative amount; DEBT_TAKEN and
// DEBT_REPAID carry positive amounts regardless of the direction of the cash
// movement (the counterparty link determines direction).
type LedgerEntry struct {
	EntryID   string          `json:"entryID"`   // Primary Key (e.g., UUID)
	CompanyID string          `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	Type      EntryType       `json:"type"`
	Amount    decimal.Decimal `json:"amount"`    // Signed, see convention above
	EntryDate time.Time       `json:"entryDate"` // Date the entry takes effect
	Notes     string          `json:"notes"`     // Nullable

	// Optional links to source records.
	AccountID  *string `json:"accountID"`
	ProjectID  *string `json:"projectID"`
	CustomerID *string `json:"customerID"`
	VendorID   *string `json:"vendorID"`
	ExpenseID  *string `json:"expenseID"`
	JournalID  *string `json:"journalID"` // Set when the entry was posted by a journal line

	// RunningBalance of the linked account after this entry was applied.
	// Populated by the poster, zero for entries without an account link.
	RunningBalance decimal.Decimal `json:"runningBalance"`

	AuditFields
}
