package services

import (
	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// debtResolution is the output of the receivables/payables resolver. All
// figures are company totals as of the snapshot date.
type debtResolution struct {
	// CustomerReceivables is owed to the company: outstanding balances of
	// completed projects, plus net customer debt, plus money paid out on
	// behalf of customers.
	CustomerReceivables decimal.Decimal

	// VendorPayables is owed by the company: unpaid expenses plus net
	// vendor debt.
	VendorPayables decimal.Decimal

	// UnlinkedLoans is net debt taken with no counterparty link, carried as
	// a long-term liability.
	UnlinkedLoans decimal.Decimal

	// CashAdjustment corrects the cash position for debt repayments that
	// were recorded without an account link and therefore never moved an
	// account balance. A customer repaying the company increases cash; the
	// company repaying a vendor decreases it.
	CashAdjustment decimal.Decimal
}

// resolveDebts nets DEBT_TAKEN against DEBT_REPAID per counterparty and
// combines the result with unpaid expense balances and completed-project
// receivables. Netting is floored at zero per counterparty before summing: a
// customer who overpaid their debt is not converted into a payable, nor the
// reverse for vendors.
//
// projectFilter, when set, narrows the receivable side to the outstanding
// balance of that single project.
func resolveDebts(snap *ledgerSnapshot, projectFilter *string) *debtResolution {
	res := &debtResolution{
		CustomerReceivables: decimal.Zero,
		VendorPayables:      decimal.Zero,
		UnlinkedLoans:       decimal.Zero,
		CashAdjustment:      decimal.Zero,
	}

	// Completed-project receivables, floored at zero per project
	for _, p := range snap.Projects {
		if projectFilter != nil && p.ProjectID != *projectFilter {
			continue
		}
		res.CustomerReceivables = res.CustomerReceivables.Add(p.Receivable())
	}

	if projectFilter != nil {
		// A single-project view carries no company-wide debt positions
		return res
	}

	// Net debt per counterparty from the ledger
	customerNet := make(map[string]decimal.Decimal)
	vendorNet := make(map[string]decimal.Decimal)
	unlinked := decimal.Zero
	for _, e := range snap.Entries {
		switch e.Type {
		case domain.EntryDebtTaken:
			switch {
			case e.CustomerID != nil && *e.CustomerID != "":
				customerNet[*e.CustomerID] = customerNet[*e.CustomerID].Add(e.Amount)
			case e.VendorID != nil && *e.VendorID != "":
				vendorNet[*e.VendorID] = vendorNet[*e.VendorID].Add(e.Amount)
			default:
				unlinked = unlinked.Add(e.Amount)
			}
		case domain.EntryDebtRepaid:
			// Repayment reduces the counterparty's net debt. The cash effect
			// is asymmetric: a customer repaying brings money in, the company
			// repaying a vendor sends money out.
			switch {
			case e.CustomerID != nil && *e.CustomerID != "":
				customerNet[*e.CustomerID] = customerNet[*e.CustomerID].Sub(e.Amount)
				if e.AccountID == nil {
					res.CashAdjustment = res.CashAdjustment.Add(e.Amount)
				}
			case e.VendorID != nil && *e.VendorID != "":
				vendorNet[*e.VendorID] = vendorNet[*e.VendorID].Sub(e.Amount)
				if e.AccountID == nil {
					res.CashAdjustment = res.CashAdjustment.Sub(e.Amount)
				}
			default:
				unlinked = unlinked.Sub(e.Amount)
			}
		}
	}

	for _, net := range customerNet {
		if net.IsPositive() {
			res.CustomerReceivables = res.CustomerReceivables.Add(net)
		}
	}
	for _, net := range vendorNet {
		if net.IsPositive() {
			res.VendorPayables = res.VendorPayables.Add(net)
		}
	}
	if unlinked.IsPositive() {
		res.UnlinkedLoans = unlinked
	}

	// Expense contributions
	for _, ex := range snap.Expenses {
		kind := ex.Classification()
		if kind == domain.KindCustomerReceivable {
			// Money out on behalf of a customer is an asset, not an expense
			res.CustomerReceivables = res.CustomerReceivables.Add(ex.Amount)
		}
		if ex.PaymentStatus == domain.ExpenseUnpaid && kind != domain.KindDebtOrLoan {
			res.VendorPayables = res.VendorPayables.Add(ex.Amount)
		}
	}

	return res
}
