package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary amount for display with two fraction digits
// using banker's rounding. Rounding happens only at display time; every
// intermediate computation keeps full decimal precision.
func FormatMoney(amount decimal.Decimal) string {
	return FormatMoneyWithPrecision(amount, 2)
}

// FormatMoneyWithPrecision renders an amount with a caller-chosen number of
// fraction digits, still using banker's rounding.
func FormatMoneyWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.RoundBank(precision).StringFixed(precision)
}
