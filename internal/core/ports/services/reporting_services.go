package services

import (
	"context"
	"time"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
)

// ReportingService defines the financial statement computations. All methods
// are read-only and side-effect free; asOf dates are normalized to an
// inclusive end-of-day bound before filtering.
type ReportingService interface {
	// GetFinancialSummary computes the combined performance (P&L) and position
	// (balance sheet totals) view under the given recognition policy.
	GetFinancialSummary(ctx context.Context, companyID string, asOf time.Time, policy domain.RecognitionPolicy, userID string) (*domain.FinancialSummary, error)

	// GetBalanceSheet assembles the statement of financial position as of a
	// date. projectID optionally narrows work-in-progress and receivable lines
	// to a single project.
	GetBalanceSheet(ctx context.Context, companyID string, asOf time.Time, projectID *string, userID string) (*domain.BalanceSheetReport, error)

	// ProfitAndLoss assembles the P&L statement under the given policy.
	ProfitAndLoss(ctx context.Context, companyID string, asOf time.Time, policy domain.RecognitionPolicy, userID string) (*domain.PnLReport, error)
}
