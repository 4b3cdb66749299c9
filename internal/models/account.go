package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a money account row. Type is stored as the free-form
// string captured at creation time.
type Account struct {
	AccountID   string `db:"account_id"`
	CompanyID   string `db:"company_id"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	IsActive    bool   `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Persisted running balance
}
