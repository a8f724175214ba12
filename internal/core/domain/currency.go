package domain

import "strings"

// CurrencyCode identifies a currency (e.g. "XOF", "USD").
// The set of codes is data-driven; new codes need no code change.
type CurrencyCode string

// NormalizeCurrencyCode trims and upper-cases a raw code.
func NormalizeCurrencyCode(raw string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsWellFormed reports whether the code is exactly three ASCII letters.
func (c CurrencyCode) IsWellFormed() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

func (c CurrencyCode) String() string {
	return string(c)
}
