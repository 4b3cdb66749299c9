package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedAsset is a long-lived purchase depreciated on a straight line.
// CurrentBookValue is derived, recomputed on each report call and never
// treated as authoritative.
type FixedAsset struct {
	AssetID          string          `json:"assetID"` // Primary Key (e.g., UUID)
	CompanyID        string          `json:"companyID"`
	Name             string          `json:"name"`
	Value            decimal.Decimal `json:"value"` // Purchase cost
	PurchaseDate     time.Time       `json:"purchaseDate"`
	CurrentBookValue decimal.Decimal `json:"currentBookValue"` // Derived, see accounting.BookValue
	AuditFields
}

// InventoryItem is a stocked good valued at purchase price for the
// balance-sheet inventory line.
type InventoryItem struct {
	ItemID        string          `json:"itemID"` // Primary Key (e.g., UUID)
	CompanyID     string          `json:"companyID"`
	Name          string          `json:"name"`
	InStock       decimal.Decimal `json:"inStock"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	AuditFields
}

// StockValue is the balance-sheet value of the item: units in stock times
// purchase price.
func (i InventoryItem) StockValue() decimal.Decimal {
	return i.InStock.Mul(i.PurchasePrice)
}
