package dto_test

import (
	"testing"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestBalanceQueryDisplayOrder(t *testing.T) {
	q := dto.BalanceQuery{Order: " xof, USD,,eur "}
	assert.Equal(t, []domain.CurrencyCode{"XOF", "USD", "EUR"}, q.DisplayOrder())

	assert.Nil(t, dto.BalanceQuery{}.DisplayOrder())
}
