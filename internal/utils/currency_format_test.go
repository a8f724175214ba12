package utils_test

import (
	"testing"

	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	table := utils.DefaultPrecisionTable()

	assert.Equal(t, "1,234.50 USD", utils.FormatAmount(decimal.RequireFromString("1234.5"), "USD", table))
	assert.Equal(t, "605 XOF", utils.FormatAmount(decimal.NewFromInt(605), "xof", table))
	assert.Equal(t, "1,000,000 XOF", utils.FormatAmount(decimal.RequireFromString("999999.6"), "XOF", table))
	assert.Equal(t, "1.65 USD", utils.FormatAmount(decimal.RequireFromString("1.6500"), "USD", table))
	assert.Equal(t, "0.00 USD", utils.FormatAmount(decimal.Zero, "USD", table))
	assert.Equal(t, "100,000 XOF", utils.FormatAmount(decimal.NewFromInt(100000), "XOF", table))
}

func TestFormatAmount_KeepsDigitsBeyondFloatRange(t *testing.T) {
	table := utils.DefaultPrecisionTable()

	assert.Equal(t, "12,345,678,901,234,567.89 USD",
		utils.FormatAmount(decimal.RequireFromString("12345678901234567.891"), "USD", table))
	assert.Equal(t, "9,007,199,254,740,993 XOF",
		utils.FormatAmount(decimal.RequireFromString("9007199254740993"), "XOF", table))
}

func TestFormatAmount_Negative(t *testing.T) {
	table := utils.DefaultPrecisionTable()

	assert.Equal(t, "-1,234.57 USD", utils.FormatAmount(decimal.RequireFromString("-1234.567"), "USD", table))
	assert.Equal(t, "-12 XOF", utils.FormatAmount(decimal.NewFromInt(-12), "XOF", table))
}
