package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface. All methods are
// read-only: they load a point-in-time snapshot of the ledger and derive the
// statements from it without touching storage.
type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingCompanyAuthorizer sets the company authorizer for the reporting service.
func WithReportingCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.LedgerReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		ledgerRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetFinancialSummary computes the combined performance and position view
// under one recognition policy, from a single ledger snapshot so both halves
// agree on the underlying data.
func (s *reportingService) GetFinancialSummary(ctx context.Context, companyID string, asOf time.Time, policy domain.RecognitionPolicy, userID string) (*domain.FinancialSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "Authorization failed for GetFinancialSummary",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, err
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: unknown recognition policy %q", apperrors.ErrValidation, policy)
	}

	snap, err := loadLedgerSnapshot(ctx, s.ledgerRepo, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger snapshot",
			slog.String("company_id", companyID), slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to load ledger data: %w", err)
	}

	pnl, err := s.assemblePnL(ctx, snap, policy)
	if err != nil {
		return nil, err
	}

	sheet := s.assembleBalanceSheet(ctx, snap, policy, nil, pnl)

	summary := &domain.FinancialSummary{
		Policy:      policy,
		Performance: *pnl,
		Balanced:    sheet.Balanced,
		Warnings:    sheet.Warnings,
	}
	summary.Position.Assets = sheet.TotalAssets
	summary.Position.Liabilities = sheet.TotalLiabilities
	summary.Position.Equity = sheet.TotalEquity

	s.LogInfo(ctx, "Financial summary generated",
		slog.String("company_id", companyID),
		slog.String("policy", string(policy)),
		slog.Bool("balanced", summary.Balanced))
	return summary, nil
}

// GetBalanceSheet assembles the statement of financial position. The balance
// sheet view always uses accrual recognition: unearned revenue and COGS only
// exist as positions under accrual treatment.
func (s *reportingService) GetBalanceSheet(ctx context.Context, companyID string, asOf time.Time, projectID *string, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "Authorization failed for GetBalanceSheet",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, err
	}

	snap, err := loadLedgerSnapshot(ctx, s.ledgerRepo, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger snapshot",
			slog.String("company_id", companyID), slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to load ledger data: %w", err)
	}

	pnl, err := s.assemblePnL(ctx, snap, domain.AccrualOnCompletion)
	if err != nil {
		return nil, err
	}

	sheet := s.assembleBalanceSheet(ctx, snap, domain.AccrualOnCompletion, projectID, pnl)

	if !sheet.Balanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("company_id", companyID),
			slog.String("imbalance", sheet.Imbalance.String()))
	}
	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("company_id", companyID),
		slog.String("as_of", asOf.Format("2006-01-02")),
		slog.Bool("balanced", sheet.Balanced))
	return sheet, nil
}

// ProfitAndLoss assembles the P&L statement under the given policy.
func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, asOf time.Time, policy domain.RecognitionPolicy, userID string) (*domain.PnLReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "Authorization failed for ProfitAndLoss",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, err
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: unknown recognition policy %q", apperrors.ErrValidation, policy)
	}

	snap, err := loadLedgerSnapshot(ctx, s.ledgerRepo, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger snapshot",
			slog.String("company_id", companyID), slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to load ledger data: %w", err)
	}

	pnl, err := s.assemblePnL(ctx, snap, policy)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Profit and loss generated",
		slog.String("company_id", companyID),
		slog.String("policy", string(policy)),
		slog.String("net_profit", pnl.NetProfit.String()))
	return pnl, nil
}

// assemblePnL derives the P&L from the snapshot. COGS for shop sales is a
// direct cost only under accrual treatment; the cash view already counts the
// full sale proceeds as cash revenue.
func (s *reportingService) assemblePnL(ctx context.Context, snap *ledgerSnapshot, policy domain.RecognitionPolicy) (*domain.PnLReport, error) {
	revenue, err := recognizeRevenue(snap, policy)
	if err != nil {
		return nil, err
	}

	directCosts := decimal.Zero
	operatingExpenses := decimal.Zero
	opexByCategory := make(map[string]decimal.Decimal)

	for _, ex := range snap.Expenses {
		switch ex.Classification() {
		case domain.KindDirectCost:
			directCosts = directCosts.Add(ex.Amount)
		case domain.KindOperatingExpense:
			operatingExpenses = operatingExpenses.Add(ex.Amount)
			label := ex.Category
			if label == "" {
				label = "Uncategorized"
			}
			opexByCategory[label] = opexByCategory[label].Add(ex.Amount)
		}
		// Debt, capital and customer-receivable movements are balance sheet
		// items, not expenses
	}

	if policy == domain.AccrualOnCompletion {
		for _, sale := range snap.Sales {
			directCosts = directCosts.Add(sale.COGS())
		}
	}

	opexBreakdown := make([]domain.BreakdownLine, 0, len(opexByCategory))
	for label, amount := range opexByCategory {
		opexBreakdown = append(opexBreakdown, domain.BreakdownLine{Label: label, Amount: amount})
	}
	sort.SliceStable(opexBreakdown, func(i, j int) bool {
		return opexBreakdown[i].Label < opexBreakdown[j].Label
	})
	opexBreakdown = domain.SortBreakdown(opexBreakdown)

	grossProfit := revenue.Total.Sub(directCosts)
	operatingProfit := grossProfit.Sub(operatingExpenses)
	otherExpenses := decimal.Zero
	netProfit := operatingProfit.Sub(otherExpenses)

	return &domain.PnLReport{
		Policy:            policy,
		Revenue:           revenue.Total,
		RevenueBreakdown:  revenue.Breakdown,
		DirectCosts:       directCosts,
		GrossProfit:       grossProfit,
		OperatingExpenses: operatingExpenses,
		OpexBreakdown:     opexBreakdown,
		OperatingProfit:   operatingProfit,
		OtherExpenses:     otherExpenses,
		NetProfit:         netProfit,
	}, nil
}

// assembleBalanceSheet builds the position statement from the snapshot. The
// balance invariant |A - (L + E)| < 1 is checked and surfaced as a diagnostic
// on the report, never as an error: an imbalance means the underlying ledger
// has a data-quality problem, and hiding the whole statement would help nobody.
func (s *reportingService) assembleBalanceSheet(ctx context.Context, snap *ledgerSnapshot, policy domain.RecognitionPolicy, projectID *string, pnl *domain.PnLReport) *domain.BalanceSheetReport {
	var warnings []string

	debts := resolveDebts(snap, projectID)

	// Account balances are the current running balances, not balances
	// reconstructed as of the report date. For a historical asOf this is an
	// approximation, and the report says so.
	if snap.AsOf.Before(accounting.AsOfCutoff(time.Now())) {
		warnings = append(warnings, "account balances reflect current state, not the historical as-of date")
	}

	cashAndBank := decimal.Zero
	capital := decimal.Zero
	for _, acc := range snap.Accounts {
		if !acc.IsActive {
			continue
		}
		switch {
		case acc.IsEquity():
			capital = capital.Add(acc.Balance)
		case acc.IsCashOrBank():
			cashAndBank = cashAndBank.Add(acc.Balance)
		}
	}
	cashAndBank = cashAndBank.Add(debts.CashAdjustment)

	fixedAssets := decimal.Zero
	for _, asset := range snap.Assets {
		fixedAssets = fixedAssets.Add(accounting.BookValue(asset, snap.AsOf))
	}

	inventory := decimal.Zero
	for _, item := range snap.Inventory {
		inventory = inventory.Add(item.StockValue())
	}

	// Work in progress: direct costs of projects still active. An expense
	// pointing at an unknown project contributes nothing and is logged, so one
	// broken link cannot blank out the statement.
	projects := snap.projectByID()
	workInProgress := decimal.Zero
	for _, ex := range snap.Expenses {
		if ex.ProjectID == nil || *ex.ProjectID == "" {
			continue
		}
		if projectID != nil && *ex.ProjectID != *projectID {
			continue
		}
		project, found := projects[*ex.ProjectID]
		if !found {
			s.LogWarn(ctx, "Expense references unknown project, skipped",
				slog.String("expense_id", ex.ExpenseID),
				slog.String("project_id", *ex.ProjectID))
			warnings = append(warnings, fmt.Sprintf("expense %s references unknown project %s", ex.ExpenseID, *ex.ProjectID))
			continue
		}
		if project.Status == domain.ProjectActive {
			workInProgress = workInProgress.Add(ex.Amount)
		}
	}

	taxPayable := decimal.Zero
	for _, sale := range snap.Sales {
		taxPayable = taxPayable.Add(sale.Tax)
	}

	// Unearned revenue exists only under accrual treatment: cash received for
	// active projects has not been earned yet
	unearned := decimal.Zero
	if policy == domain.AccrualOnCompletion {
		for _, p := range snap.Projects {
			if projectID != nil && p.ProjectID != *projectID {
				continue
			}
			if p.Status == domain.ProjectActive {
				unearned = unearned.Add(p.CashReceived())
			}
		}
	}

	retainedEarnings := pnl.NetProfit

	drillID := ""
	if projectID != nil {
		drillID = *projectID
	}

	sheet := &domain.BalanceSheetReport{
		Assets: []domain.ReportLine{
			{Label: "Cash & Bank", Value: cashAndBank, DrillType: "accounts"},
			{Label: "Accounts Receivable", Value: debts.CustomerReceivables, DrillType: "receivables", DrillID: drillID},
			{Label: "Inventory", Value: inventory, DrillType: "inventory"},
			{Label: "Work In Progress", Value: workInProgress, DrillType: "wip", DrillID: drillID},
			{Label: "Fixed Assets (net)", Value: fixedAssets, DrillType: "fixed-assets"},
		},
		Liabilities: []domain.ReportLine{
			{Label: "Accounts Payable", Value: debts.VendorPayables, DrillType: "payables"},
			{Label: "Tax Payable", Value: taxPayable, DrillType: "tax"},
			{Label: "Unearned Revenue", Value: unearned, DrillType: "unearned-revenue"},
			{Label: "Long-term Loans", Value: debts.UnlinkedLoans, DrillType: "loans"},
		},
		Equity: []domain.ReportLine{
			{Label: "Capital", Value: capital, DrillType: "capital"},
			{Label: "Retained Earnings", Value: retainedEarnings, DrillType: "retained-earnings"},
		},
	}

	for _, line := range sheet.Assets {
		sheet.TotalAssets = sheet.TotalAssets.Add(line.Value)
	}
	for _, line := range sheet.Liabilities {
		sheet.TotalLiabilities = sheet.TotalLiabilities.Add(line.Value)
	}
	for _, line := range sheet.Equity {
		sheet.TotalEquity = sheet.TotalEquity.Add(line.Value)
	}

	sheet.Imbalance, sheet.Balanced = domain.CheckBalanceInvariant(sheet.TotalAssets, sheet.TotalLiabilities, sheet.TotalEquity)
	if !sheet.Balanced {
		warnings = append(warnings, fmt.Sprintf("assets differ from liabilities plus equity by %s", sheet.Imbalance.String()))
	}
	sheet.Warnings = warnings

	return sheet
}
