package accounting_test

import (
	"testing"

	"github.com/finbook-app/finbook_backend/internal/core/domain"
	"github.com/finbook-app/finbook_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalBalanceFor(t *testing.T) {
	tests := []struct {
		accountType string
		want        accounting.NormalBalance
	}{
		{"CASH", accounting.DebitNormal},
		{"BANK", accounting.DebitNormal},
		{"FIXED_ASSET", accounting.DebitNormal},
		{"EQUITY", accounting.CreditNormal},
		{"LIABILITY", accounting.CreditNormal},
		{"Accounts Payable", accounting.CreditNormal},
		{"INCOME", accounting.CreditNormal},
		{"Unearned Revenue", accounting.CreditNormal},
		{"owner capital", accounting.CreditNormal},
		{"Bank Loan", accounting.CreditNormal},
		{"", accounting.DebitNormal},
	}

	for _, tt := range tests {
		t.Run(tt.accountType, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.NormalBalanceFor(tt.accountType))
		})
	}
}

func TestSignedAmount(t *testing.T) {
	debitLine := domain.JournalLine{Debit: decimal.NewFromInt(100)}
	creditLine := domain.JournalLine{Credit: decimal.NewFromInt(100)}

	assert.True(t, accounting.SignedAmount(debitLine, accounting.DebitNormal).Equal(decimal.NewFromInt(100)))
	assert.True(t, accounting.SignedAmount(creditLine, accounting.DebitNormal).Equal(decimal.NewFromInt(-100)))
	assert.True(t, accounting.SignedAmount(debitLine, accounting.CreditNormal).Equal(decimal.NewFromInt(-100)))
	assert.True(t, accounting.SignedAmount(creditLine, accounting.CreditNormal).Equal(decimal.NewFromInt(100)))
}

func TestValidateJournalLines_Balanced(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromFloat(99.99)},
		{Credit: decimal.NewFromFloat(50.00)},
		{Credit: decimal.NewFromFloat(49.99)},
	}
	assert.NoError(t, accounting.ValidateJournalLines(lines))
}

func TestValidateJournalLines_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Credit: decimal.NewFromFloat(99.99)},
	}
	err := accounting.ValidateJournalLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounting.ErrJournalUnbalanced)
	// The delta is part of the message
	assert.Contains(t, err.Error(), "0.01")
}

func TestValidateJournalLines_TooFewLines(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
	}
	assert.ErrorIs(t, accounting.ValidateJournalLines(lines), accounting.ErrJournalMinLines)
}

func TestValidateJournalLines_BadSides(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalLine
	}{
		{
			name: "both sides set on one line",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
				{Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "neither side set",
			lines: []domain.JournalLine{
				{},
				{Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "negative debit",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(-100)},
				{Credit: decimal.NewFromInt(100)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, accounting.ValidateJournalLines(tt.lines), accounting.ErrJournalLineSides)
		})
	}
}

func TestJournalAmount(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(70)},
		{Debit: decimal.NewFromInt(30)},
		{Credit: decimal.NewFromInt(100)},
	}
	assert.True(t, accounting.JournalAmount(lines).Equal(decimal.NewFromInt(100)))
}
