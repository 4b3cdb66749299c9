package accounting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrJournalMinLines is returned when a journal has fewer than two lines.
	ErrJournalMinLines = errors.New("journal must have at least two lines")
	// ErrJournalLineSides is returned when a line does not have exactly one positive side.
	ErrJournalLineSides = errors.New("journal line must have exactly one of debit or credit set")
	// ErrJournalUnbalanced is returned when total debits differ from total credits.
	ErrJournalUnbalanced = errors.New("journal debits do not equal credits")
)

// NormalBalance indicates which side increases an account.
type NormalBalance int

const (
	DebitNormal  NormalBalance = iota // Assets, expenses
	CreditNormal                      // Liabilities, equity, income
)

// creditNormalKeywords identify credit-normal accounts from the free-form
// account type string. Anything else is treated as debit-normal.
var creditNormalKeywords = []string{
	"equity", "liab", "loan", "payable", "debt",
	"income", "revenue", "unearned", "capital",
}

// NormalBalanceFor derives the normal balance side from a free-form account
// type string, case-insensitive.
func NormalBalanceFor(accountType string) NormalBalance {
	t := strings.ToLower(accountType)
	for _, kw := range creditNormalKeywords {
		if strings.Contains(t, kw) {
			return CreditNormal
		}
	}
	return DebitNormal
}

// SignedAmount converts a journal line into the balance delta it applies to
// its account. A debit increases a debit-normal account and decreases a
// credit-normal one, and vice versa.
func SignedAmount(line domain.JournalLine, normal NormalBalance) decimal.Decimal {
	net := line.Debit.Sub(line.Credit)
	if normal == CreditNormal {
		return net.Neg()
	}
	return net
}

// ValidateJournalLines enforces the journal entry invariants: at least two
// lines, exactly one positive side per line, and exact decimal equality of
// total debits and credits. Unlike the balance-sheet tolerance check, journal
// balancing admits no epsilon.
func ValidateJournalLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrJournalMinLines
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, line := range lines {
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative side", ErrJournalLineSides, i+1)
		}
		if debitSet == creditSet { // both set or both zero
			return fmt.Errorf("%w: line %d", ErrJournalLineSides, i+1)
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Equal(credits) {
		delta := debits.Sub(credits)
		return fmt.Errorf("%w: debits %s, credits %s, delta %s",
			ErrJournalUnbalanced, debits.String(), credits.String(), delta.String())
	}
	return nil
}

// JournalAmount computes the economic value of a balanced journal: the sum of
// its debit side.
func JournalAmount(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}
