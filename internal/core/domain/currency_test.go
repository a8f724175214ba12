package domain_test

import (
	"testing"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrencyCode(t *testing.T) {
	assert.Equal(t, domain.CurrencyCode("XOF"), domain.NormalizeCurrencyCode(" xof "))
	assert.Equal(t, domain.CurrencyCode("USD"), domain.NormalizeCurrencyCode("USD"))
	assert.Equal(t, domain.CurrencyCode(""), domain.NormalizeCurrencyCode("   "))
}

func TestCurrencyCodeIsWellFormed(t *testing.T) {
	tests := []struct {
		code domain.CurrencyCode
		want bool
	}{
		{"XOF", true},
		{"usd", true},
		{"US", false},
		{"USDT", false},
		{"U$D", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.IsWellFormed())
		})
	}
}
