package accounting

import (
	"time"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultDepreciationRate is the fixed annual straight-line rate applied to
// all fixed assets. There is no per-asset override.
var DefaultDepreciationRate = decimal.NewFromFloat(0.15)

// BookValue computes the straight-line book value of a fixed asset as of a
// date: value minus value * rate * whole calendar years elapsed, floored at
// zero. Years elapsed is the difference of calendar years, not a fractional
// duration, so the value steps down once per year boundary.
func BookValue(asset domain.FixedAsset, asOf time.Time) decimal.Decimal {
	years := asOf.Year() - asset.PurchaseDate.Year()
	if years <= 0 {
		return asset.Value
	}
	depreciation := asset.Value.Mul(DefaultDepreciationRate).Mul(decimal.NewFromInt(int64(years)))
	bookValue := asset.Value.Sub(depreciation)
	if bookValue.IsNegative() {
		return decimal.Zero
	}
	return bookValue
}

// AsOfCutoff normalizes a calendar date to its end-of-day instant
// (23:59:59.999) so that as-of filters are inclusive of the whole day.
// Reports are only reproducible if every consumer applies the same bound.
func AsOfCutoff(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(999*time.Millisecond), date.Location())
}
