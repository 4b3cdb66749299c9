package domain

import "strings"

// ExpenseKind is the closed classification assigned to an expense (or an
// expense-like ledger entry) at creation time. Reports branch on this enum,
// never on raw category text.
type ExpenseKind string

const (
	KindUnclassified       ExpenseKind = ""                    // Not yet migrated; resolved via ClassifyLegacy
	KindDirectCost         ExpenseKind = "DIRECT_COST"         // Project-linked cost of delivery
	KindOperatingExpense   ExpenseKind = "OPERATING_EXPENSE"   // General overhead
	KindDebtOrLoan         ExpenseKind = "DEBT_OR_LOAN"        // Debt taken, loan, repayment
	KindCapitalMovement    ExpenseKind = "CAPITAL_MOVEMENT"    // Owner capital injection or withdrawal
	KindCustomerReceivable ExpenseKind = "CUSTOMER_RECEIVABLE" // Money out on behalf of a customer; an asset
)

// debtKeywords and capitalKeywords drive the legacy keyword heuristic.
// Matching is case-insensitive substring on category and subcategory.
var (
	debtKeywords    = []string{"debt", "loan", "repayment"}
	capitalKeywords = []string{"capital", "withdrawal", "drawing"}
)

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ClassifyLegacy maps free-text category data to an ExpenseKind using the
// keyword heuristic of the legacy data model. It exists for import/backfill of
// records created before kinds were assigned at creation; new records must be
// stored with an explicit kind.
//
// Precedence: project link wins over keywords, keywords win over a bare
// customer link, everything else is overhead. An expense carrying both a
// project and a customer link is a DirectCost (the project takes precedence).
func ClassifyLegacy(category, subCategory string, projectID, customerID *string) ExpenseKind {
	if projectID != nil && *projectID != "" {
		return KindDirectCost
	}
	if containsAny(category, debtKeywords) || containsAny(subCategory, debtKeywords) {
		return KindDebtOrLoan
	}
	if containsAny(category, capitalKeywords) || containsAny(subCategory, capitalKeywords) {
		return KindCapitalMovement
	}
	if customerID != nil && *customerID != "" {
		return KindCustomerReceivable
	}
	return KindOperatingExpense
}
