package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RecognitionPolicy selects how revenue is recognized for a report. Two
// policies coexist deliberately: the cash-basis financial summary and the
// accrual balance sheet consume the same ledger under different treatments.
type RecognitionPolicy string

const (
	CashBasis           RecognitionPolicy = "CASH_BASIS"
	AccrualOnCompletion RecognitionPolicy = "ACCRUAL_ON_COMPLETION"
)

// Valid reports whether the policy is one of the supported values.
func (p RecognitionPolicy) Valid() bool {
	return p == CashBasis || p == AccrualOnCompletion
}

// BreakdownLine is one labeled component of an aggregate figure.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SortBreakdown filters out non-positive lines and orders the remainder
// descending by amount. Every breakdown exposed by the engine goes through it.
func SortBreakdown(lines []BreakdownLine) []BreakdownLine {
	out := make([]BreakdownLine, 0, len(lines))
	for _, l := range lines {
		if l.Amount.IsPositive() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// RevenueResult is the output of the revenue recognition engine.
type RevenueResult struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []BreakdownLine `json:"breakdown"`
	// Unearned is cash received for work not yet recognized as revenue.
	// Zero under the cash-basis policy.
	Unearned decimal.Decimal `json:"unearned"`
}

// PnLReport is the assembled profit and loss statement.
type PnLReport struct {
	Policy            RecognitionPolicy `json:"policy"`
	Revenue           decimal.Decimal   `json:"revenue"`
	RevenueBreakdown  []BreakdownLine   `json:"revenueBreakdown"`
	DirectCosts       decimal.Decimal   `json:"directCosts"`
	GrossProfit       decimal.Decimal   `json:"grossProfit"`
	OperatingExpenses decimal.Decimal   `json:"operatingExpenses"`
	OpexBreakdown     []BreakdownLine   `json:"opexBreakdown"` // Grouped by category, descending
	OperatingProfit   decimal.Decimal   `json:"operatingProfit"`
	OtherExpenses     decimal.Decimal   `json:"otherExpenses"` // Reserved, currently always zero
	NetProfit         decimal.Decimal   `json:"netProfit"`
}

// ReportLine is a balance-sheet line item carrying an opaque drill-down
// identifier for downstream navigation. The engine never interprets the pair.
type ReportLine struct {
	Label     string          `json:"label"`
	Value     decimal.Decimal `json:"value"`
	DrillType string          `json:"drillType"`
	DrillID   string          `json:"drillID"`
}

// BalanceSheetReport is the assembled statement of financial position.
type BalanceSheetReport struct {
	Assets           []ReportLine    `json:"assets"`
	Liabilities      []ReportLine    `json:"liabilities"`
	Equity           []ReportLine    `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`

	// Balanced is false when |Assets - (Liabilities + Equity)| >= 1 currency
	// unit. The report is still returned; the imbalance indicates a
	// data-quality issue in the underlying ledger, not an engine failure.
	Balanced  bool            `json:"balanced"`
	Imbalance decimal.Decimal `json:"imbalance"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// FinancialSummary pairs the performance view with the position view.
type FinancialSummary struct {
	Policy      RecognitionPolicy `json:"policy"`
	Performance PnLReport         `json:"performance"`
	Position    struct {
		Assets      decimal.Decimal `json:"assets"`
		Liabilities decimal.Decimal `json:"liabilities"`
		Equity      decimal.Decimal `json:"equity"`
	} `json:"position"`
	Balanced bool     `json:"balanced"`
	Warnings []string `json:"warnings,omitempty"`
}

// balanceTolerance is the permitted absolute difference between assets and
// liabilities plus equity: one unit of currency.
var balanceTolerance = decimal.NewFromInt(1)

// CheckBalanceInvariant returns the imbalance and whether it is within
// tolerance. The journal poster uses exact equality instead; this check is
// only for assembled balance sheets where account-balance approximations
// can introduce sub-unit noise.
func CheckBalanceInvariant(assets, liabilities, equity decimal.Decimal) (decimal.Decimal, bool) {
	imbalance := assets.Sub(liabilities.Add(equity))
	return imbalance, imbalance.Abs().LessThan(balanceTolerance)
}
