package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultPrecisionSpec is the rounding table used when none is configured.
// USD keeps cents; XOF and its peers are handled as zero-decimal currencies.
const DefaultPrecisionSpec = "USD:2,XOF:0,EUR:0,GHS:0,NGN:0,KES:0,MRO:0"

// PrecisionTable maps currency codes to the number of decimal places amounts are rounded to.
// It is read-only after construction and safe for concurrent use.
type PrecisionTable struct {
	places map[domain.CurrencyCode]int32
}

// NewPrecisionTable builds a table from explicit entries.
func NewPrecisionTable(places map[domain.CurrencyCode]int) *PrecisionTable {
	t := &PrecisionTable{places: make(map[domain.CurrencyCode]int32, len(places))}
	for code, p := range places {
		t.places[domain.NormalizeCurrencyCode(string(code))] = int32(p)
	}
	return t
}

// DefaultPrecisionTable returns the table described by DefaultPrecisionSpec.
func DefaultPrecisionTable() *PrecisionTable {
	t, _ := ParsePrecisionTable(DefaultPrecisionSpec)
	return t
}

// ParsePrecisionTable parses "USD:2,XOF:0" style specs.
func ParsePrecisionTable(spec string) (*PrecisionTable, error) {
	places := make(map[domain.CurrencyCode]int)
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		code, digits, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("invalid precision entry %q: expected CODE:DIGITS", entry)
		}
		cc := domain.NormalizeCurrencyCode(code)
		if !cc.IsWellFormed() {
			return nil, fmt.Errorf("invalid precision entry %q: bad currency code", entry)
		}
		n, err := strconv.Atoi(strings.TrimSpace(digits))
		if err != nil || n < 0 || n > 18 {
			return nil, fmt.Errorf("invalid precision entry %q: digits must be 0-18", entry)
		}
		places[cc] = n
	}
	return NewPrecisionTable(places), nil
}

// Places returns the decimal places for code.
// Codes missing from the table use CLDR's standard digits when the code is a known
// ISO 4217 unit, and 0 otherwise.
func (t *PrecisionTable) Places(code domain.CurrencyCode) int32 {
	code = domain.NormalizeCurrencyCode(string(code))
	if t != nil {
		if p, ok := t.places[code]; ok {
			return p
		}
	}
	if !code.IsWellFormed() {
		return 0
	}
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return 0
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// Round rounds amount to the precision of code.
func (t *PrecisionTable) Round(amount decimal.Decimal, code domain.CurrencyCode) decimal.Decimal {
	return amount.Round(t.Places(code))
}
