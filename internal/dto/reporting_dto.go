package dto

import (
	"time"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/finbook-app/finbook_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// Report amounts are serialized twice: the raw decimal keeps full precision
// for callers that compute, and the display string is rounded to two places
// with banker's rounding for callers that render. Rounding happens nowhere
// earlier in the pipeline.

// BreakdownLineResponse is one labeled component of an aggregate figure.
type BreakdownLineResponse struct {
	Label         string          `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amountDisplay"`
}

// ReportLineResponse is a statement line carrying an opaque drill-down pair
// for downstream navigation.
type ReportLineResponse struct {
	Label        string          `json:"label"`
	Value        decimal.Decimal `json:"value"`
	ValueDisplay string          `json:"valueDisplay"`
	DrillType    string          `json:"drillType,omitempty"`
	DrillID      string          `json:"drillID,omitempty"`
}

// ProfitAndLossResponse represents the P&L report response.
type ProfitAndLossResponse struct {
	AsOf              string                  `json:"asOf"`
	Policy            string                  `json:"policy"`
	Revenue           decimal.Decimal         `json:"revenue"`
	RevenueBreakdown  []BreakdownLineResponse `json:"revenueBreakdown"`
	DirectCosts       decimal.Decimal         `json:"directCosts"`
	GrossProfit       decimal.Decimal         `json:"grossProfit"`
	OperatingExpenses decimal.Decimal         `json:"operatingExpenses"`
	OpexBreakdown     []BreakdownLineResponse `json:"opexBreakdown"`
	OperatingProfit   decimal.Decimal         `json:"operatingProfit"`
	NetProfit         decimal.Decimal         `json:"netProfit"`
	NetProfitDisplay  string                  `json:"netProfitDisplay"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf        string               `json:"asOf"`
	Assets      []ReportLineResponse `json:"assets"`
	Liabilities []ReportLineResponse `json:"liabilities"`
	Equity      []ReportLineResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
	Balanced  bool            `json:"balanced"`
	Imbalance decimal.Decimal `json:"imbalance"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// FinancialSummaryResponse pairs the performance view with the position view.
type FinancialSummaryResponse struct {
	AsOf        string `json:"asOf"`
	Policy      string `json:"policy"`
	Performance struct {
		Revenue           decimal.Decimal `json:"revenue"`
		DirectCosts       decimal.Decimal `json:"directCosts"`
		GrossProfit       decimal.Decimal `json:"grossProfit"`
		OperatingExpenses decimal.Decimal `json:"operatingExpenses"`
		OperatingProfit   decimal.Decimal `json:"operatingProfit"`
		NetProfit         decimal.Decimal `json:"netProfit"`
	} `json:"performance"`
	Position struct {
		Assets      decimal.Decimal `json:"assets"`
		Liabilities decimal.Decimal `json:"liabilities"`
		Equity      decimal.Decimal `json:"equity"`
	} `json:"position"`
	Balanced bool     `json:"balanced"`
	Warnings []string `json:"warnings,omitempty"`
}

func toBreakdownResponses(lines []domain.BreakdownLine) []BreakdownLineResponse {
	out := make([]BreakdownLineResponse, len(lines))
	for i, l := range lines {
		out[i] = BreakdownLineResponse{
			Label:         l.Label,
			Amount:        l.Amount,
			AmountDisplay: utils.FormatMoney(l.Amount),
		}
	}
	return out
}

func toReportLineResponses(lines []domain.ReportLine) []ReportLineResponse {
	out := make([]ReportLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ReportLineResponse{
			Label:        l.Label,
			Value:        l.Value,
			ValueDisplay: utils.FormatMoney(l.Value),
			DrillType:    l.DrillType,
			DrillID:      l.DrillID,
		}
	}
	return out
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response.
func ToProfitAndLossResponse(report *domain.PnLReport, asOf time.Time) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		AsOf:              asOf.Format("2006-01-02"),
		Policy:            string(report.Policy),
		Revenue:           report.Revenue,
		RevenueBreakdown:  toBreakdownResponses(report.RevenueBreakdown),
		DirectCosts:       report.DirectCosts,
		GrossProfit:       report.GrossProfit,
		OperatingExpenses: report.OperatingExpenses,
		OpexBreakdown:     toBreakdownResponses(report.OpexBreakdown),
		OperatingProfit:   report.OperatingProfit,
		NetProfit:         report.NetProfit,
		NetProfitDisplay:  utils.FormatMoney(report.NetProfit),
	}
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        asOf.Format("2006-01-02"),
		Assets:      toReportLineResponses(report.Assets),
		Liabilities: toReportLineResponses(report.Liabilities),
		Equity:      toReportLineResponses(report.Equity),
		Balanced:    report.Balanced,
		Imbalance:   report.Imbalance,
		Warnings:    report.Warnings,
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	return response
}

// ToFinancialSummaryResponse converts a domain financial summary to a DTO response.
func ToFinancialSummaryResponse(summary *domain.FinancialSummary, asOf time.Time) FinancialSummaryResponse {
	response := FinancialSummaryResponse{
		AsOf:     asOf.Format("2006-01-02"),
		Policy:   string(summary.Policy),
		Balanced: summary.Balanced,
		Warnings: summary.Warnings,
	}
	response.Performance.Revenue = summary.Performance.Revenue
	response.Performance.DirectCosts = summary.Performance.DirectCosts
	response.Performance.GrossProfit = summary.Performance.GrossProfit
	response.Performance.OperatingExpenses = summary.Performance.OperatingExpenses
	response.Performance.OperatingProfit = summary.Performance.OperatingProfit
	response.Performance.NetProfit = summary.Performance.NetProfit
	response.Position.Assets = summary.Position.Assets
	response.Position.Liabilities = summary.Position.Liabilities
	response.Position.Equity = summary.Position.Equity
	return response
}
