package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpensePaymentStatus tracks whether an expense has been settled.
type ExpensePaymentStatus string

const (
	ExpensePaid   ExpensePaymentStatus = "PAID"
	ExpenseUnpaid ExpensePaymentStatus = "UNPAID"
	ExpenseRepaid ExpensePaymentStatus = "REPAID"
)

// Expense represents a recorded business expense. Amount is always a positive
// magnitude; the ledger entry created alongside carries the sign.
type Expense struct {
	ExpenseID     string               `json:"expenseID"` // Primary Key (e.g., UUID)
	CompanyID     string               `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	Category      string               `json:"category"`  // Free text, display only
	SubCategory   string               `json:"subCategory"`
	Amount        decimal.Decimal      `json:"amount"` // Positive magnitude
	PaymentStatus ExpensePaymentStatus `json:"paymentStatus"`
	Kind          ExpenseKind          `json:"kind"` // Assigned at creation; empty for unmigrated rows
	ExpenseDate   time.Time            `json:"expenseDate"`

	ProjectID  *string `json:"projectID"`
	CustomerID *string `json:"customerID"`
	VendorID   *string `json:"vendorID"`

	AuditFields
}

// Classification returns the expense kind, falling back to the legacy keyword
// heuristic for rows created before kinds were stored.
func (e Expense) Classification() ExpenseKind {
	if e.Kind != KindUnclassified {
		return e.Kind
	}
	return ClassifyLegacy(e.Category, e.SubCategory, e.ProjectID, e.CustomerID)
}
