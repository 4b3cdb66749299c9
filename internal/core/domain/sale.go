package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalePaymentStatus tracks how much of a sale has been collected.
type SalePaymentStatus string

const (
	SalePaid     SalePaymentStatus = "PAID"
	SalePartial  SalePaymentStatus = "PARTIAL"
	SaleUnpaid   SalePaymentStatus = "UNPAID"
	SaleRefunded SalePaymentStatus = "REFUNDED"
)

// SaleItem is a line of a shop sale. CostPrice is the product cost captured
// at sale time, used for COGS.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID"`
	SaleID     string          `json:"saleID"`
	ProductID  *string         `json:"productID"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	CostPrice  decimal.Decimal `json:"costPrice"`
}

// Sale represents a shop sale with its items.
type Sale struct {
	SaleID        string            `json:"saleID"` // Primary Key (e.g., UUID)
	CompanyID     string            `json:"companyID"`
	CustomerID    *string           `json:"customerID"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Tax           decimal.Decimal   `json:"tax"`
	Total         decimal.Decimal   `json:"total"`
	PaidAmount    decimal.Decimal   `json:"paidAmount"`
	PaymentStatus SalePaymentStatus `json:"paymentStatus"`
	SaleDate      time.Time         `json:"saleDate"`
	Items         []SaleItem        `json:"items"`
	AuditFields
}

// COGS is the cost of goods sold for the sale: quantity times captured
// product cost, summed over all items.
func (s Sale) COGS() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Quantity.Mul(item.CostPrice))
	}
	return total
}
