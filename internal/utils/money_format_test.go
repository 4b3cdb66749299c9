package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoneyBankersRounding(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"no rounding needed", "1234.50", "1234.50"},
		{"half rounds to even down", "0.125", "0.12"},
		{"half rounds to even up", "0.135", "0.14"},
		{"negative half rounds to even", "-0.125", "-0.12"},
		{"integer gets fraction digits", "100", "100.00"},
		{"full precision truncated only here", "33.333333", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatMoneyWithPrecision(t *testing.T) {
	amount := decimal.RequireFromString("7.12345")
	assert.Equal(t, "7.1234", FormatMoneyWithPrecision(amount, 4))
	assert.Equal(t, "7", FormatMoneyWithPrecision(amount, 0))
}
