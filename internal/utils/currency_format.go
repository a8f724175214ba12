package utils

import (
	"strings"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount for display using the currency's precision and
// thousands grouping, followed by the code. Digits come straight from the decimal,
// so amounts beyond float64 range keep every digit.
// Example: 1234.5 USD -> "1,234.50 USD"; 605 XOF -> "605 XOF"
func FormatAmount(amount decimal.Decimal, code domain.CurrencyCode, table *PrecisionTable) string {
	places := table.Places(code)
	fixed := amount.Round(places).StringFixed(places)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(groupThousands(whole))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	b.WriteByte(' ')
	b.WriteString(string(domain.NormalizeCurrencyCode(string(code))))
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
