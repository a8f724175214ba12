package utils_test

import (
	"testing"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrecisionTable(t *testing.T) {
	table := utils.DefaultPrecisionTable()

	assert.Equal(t, int32(2), table.Places("USD"))
	assert.Equal(t, int32(0), table.Places("XOF"))
	assert.Equal(t, int32(0), table.Places("kes"))
	assert.Equal(t, int32(0), table.Places("MRO"))
}

func TestPrecisionTableUnknownCodes(t *testing.T) {
	table := utils.DefaultPrecisionTable()

	// Not in the table but a known ISO unit: CLDR digits.
	assert.Equal(t, int32(0), table.Places("JPY"))
	assert.Equal(t, int32(3), table.Places("KWD"))
	// Malformed or unknown codes never panic.
	assert.Equal(t, int32(0), table.Places("ZZZ"))
	assert.Equal(t, int32(0), table.Places("US"))
	assert.Equal(t, int32(0), table.Places(""))
}

func TestParsePrecisionTable(t *testing.T) {
	table, err := utils.ParsePrecisionTable(" usd:2 , XOF:0,BTC:8,")
	require.NoError(t, err)
	assert.Equal(t, int32(2), table.Places("USD"))
	assert.Equal(t, int32(8), table.Places("BTC"))

	_, err = utils.ParsePrecisionTable("USD")
	assert.Error(t, err)
	_, err = utils.ParsePrecisionTable("USD:two")
	assert.Error(t, err)
	_, err = utils.ParsePrecisionTable("U1D:2")
	assert.Error(t, err)
}

func TestPrecisionTableRound(t *testing.T) {
	table := utils.DefaultPrecisionTable()

	assert.Equal(t, "1.65", table.Round(decimal.RequireFromString("1.6549"), "USD").String())
	assert.Equal(t, "605", table.Round(decimal.RequireFromString("604.5"), "XOF").String())
	assert.True(t, table.Round(decimal.RequireFromString("998.25"), "XOF").IsInteger())
}

func TestNilPrecisionTableFallsBackToCLDR(t *testing.T) {
	var table *utils.PrecisionTable
	assert.Equal(t, int32(2), table.Places(domain.CurrencyCode("USD")))
}
