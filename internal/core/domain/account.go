package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// cashTypeKeywords are the account-type fragments that mark an account as a
// cash-and-bank asset on the balance sheet. Matching is case-insensitive substring.
var cashTypeKeywords = []string{"bank", "cash", "asset", "mobile", "money", "wallet", "e-"}

// Account represents a money account within a company. The Type is a free-form
// string (e.g. "Cash", "Mobile Money", "EQUITY") as captured at creation time.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (e.g., UUID)
	CompanyID string          `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	Name      string          `json:"name"`      // User-defined name
	Type      string          `json:"type"`      // Free-form account type string
	Balance   decimal.Decimal `json:"balance"`   // Persisted running balance (cumulative postings)
	IsActive  bool            `json:"isActive"`  // Soft delete or status flag
	AuditFields
}

// IsCashOrBank reports whether the account counts toward CashAndBank on the
// balance sheet, based on its free-form type string.
func (a Account) IsCashOrBank() bool {
	t := strings.ToLower(a.Type)
	for _, kw := range cashTypeKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// IsEquity reports whether the account contributes to the Capital line
// of the equity section.
func (a Account) IsEquity() bool {
	return strings.Contains(strings.ToLower(a.Type), "equity")
}
