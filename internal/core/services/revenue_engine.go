package services

import (
	"fmt"

	"github.com/finbook-app/finbook_backend/internal/apperrors"
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// recognizeRevenue computes recognized revenue from a ledger snapshot under
// the given policy. Both reports that consume the ledger call this one
// function with different policy values; the treatments diverge deliberately:
//
//   - CASH_BASIS: revenue is cash in hand. Every project payment counts
//     regardless of project status, shop sales count at total (tax included,
//     since that is what was collected), and INCOME ledger entries count.
//   - ACCRUAL_ON_COMPLETION: project revenue is the agreement amount,
//     recognized once when the project completes. Cash received on projects
//     still in flight is unearned revenue, a liability, not revenue. Shop
//     sales count at subtotal (tax is a payable, not revenue).
//
// The breakdown keeps only positive lines, ordered descending.
func recognizeRevenue(snap *ledgerSnapshot, policy domain.RecognitionPolicy) (*domain.RevenueResult, error) {
	switch policy {
	case domain.CashBasis:
		return cashBasisRevenue(snap), nil
	case domain.AccrualOnCompletion:
		return accrualRevenue(snap), nil
	default:
		return nil, fmt.Errorf("%w: unknown recognition policy %q", apperrors.ErrValidation, policy)
	}
}

func cashBasisRevenue(snap *ledgerSnapshot) *domain.RevenueResult {
	var breakdown []domain.BreakdownLine
	total := decimal.Zero

	for _, p := range snap.Projects {
		received := p.PaymentsTotal()
		total = total.Add(received)
		breakdown = append(breakdown, domain.BreakdownLine{Label: projectLabel(p), Amount: received})
	}

	shop := decimal.Zero
	for _, s := range snap.Sales {
		shop = shop.Add(s.Total)
	}
	total = total.Add(shop)
	breakdown = append(breakdown, domain.BreakdownLine{Label: "Shop sales", Amount: shop})

	other := decimal.Zero
	for _, e := range snap.Entries {
		if e.Type == domain.EntryIncome {
			other = other.Add(e.Amount)
		}
	}
	total = total.Add(other)
	breakdown = append(breakdown, domain.BreakdownLine{Label: "Other income", Amount: other})

	return &domain.RevenueResult{
		Total:     total,
		Breakdown: domain.SortBreakdown(breakdown),
		Unearned:  decimal.Zero,
	}
}

func accrualRevenue(snap *ledgerSnapshot) *domain.RevenueResult {
	var breakdown []domain.BreakdownLine
	total := decimal.Zero
	unearned := decimal.Zero

	for _, p := range snap.Projects {
		switch p.Status {
		case domain.ProjectCompleted:
			total = total.Add(p.AgreementAmount)
			breakdown = append(breakdown, domain.BreakdownLine{Label: projectLabel(p), Amount: p.AgreementAmount})
		case domain.ProjectActive:
			unearned = unearned.Add(p.CashReceived())
		}
		// Cancelled projects contribute nothing either way
	}

	shop := decimal.Zero
	for _, s := range snap.Sales {
		shop = shop.Add(s.Subtotal)
	}
	total = total.Add(shop)
	breakdown = append(breakdown, domain.BreakdownLine{Label: "Shop sales", Amount: shop})

	other := decimal.Zero
	for _, e := range snap.Entries {
		if e.Type == domain.EntryIncome {
			other = other.Add(e.Amount)
		}
	}
	total = total.Add(other)
	breakdown = append(breakdown, domain.BreakdownLine{Label: "Other income", Amount: other})

	return &domain.RevenueResult{
		Total:     total,
		Breakdown: domain.SortBreakdown(breakdown),
		Unearned:  unearned,
	}
}

func projectLabel(p domain.Project) string {
	if p.Name != "" {
		return p.Name
	}
	return "Project " + p.ProjectID
}
