package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a project.
// Active -> Completed (terminal) once the remaining amount reaches zero,
// or Active -> Cancelled (terminal).
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

// Payment represents cash received against a project agreement.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (e.g., UUID)
	CompanyID   string          `json:"companyID"`
	ProjectID   string          `json:"projectID"` // FK -> projects.project_id (NON-NULL)
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	AuditFields
}

// Project represents a client engagement with an agreed price.
type Project struct {
	ProjectID       string          `json:"projectID"` // Primary Key (e.g., UUID)
	CompanyID       string          `json:"companyID"`
	CustomerID      *string         `json:"customerID"`
	Name            string          `json:"name"`
	Status          ProjectStatus   `json:"status"`
	AgreementAmount decimal.Decimal `json:"agreementAmount"`
	AdvancePaid     decimal.Decimal `json:"advancePaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Payments        []Payment       `json:"payments"`
	AuditFields
}

// PaymentsTotal sums all recorded payments against the project.
func (p Project) PaymentsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, pay := range p.Payments {
		total = total.Add(pay.Amount)
	}
	return total
}

// CashReceived is everything the customer has handed over so far:
// the advance plus all subsequent payments.
func (p Project) CashReceived() decimal.Decimal {
	return p.AdvancePaid.Add(p.PaymentsTotal())
}

// Receivable is the outstanding amount still owed on a completed project,
// floored at zero. Active and cancelled projects carry no receivable.
func (p Project) Receivable() decimal.Decimal {
	if p.Status != ProjectCompleted {
		return decimal.Zero
	}
	outstanding := p.AgreementAmount.Sub(p.AdvancePaid).Sub(p.PaymentsTotal())
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}
