package mapping

import (
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/models"
)

// ToModelConversionRate converts a domain ConversionRate to a model ConversionRate
func ToModelConversionRate(d domain.ConversionRate) models.ConversionRate {
	return models.ConversionRate{
		ConversionRateID: d.ID,
		FromCurrency:     string(domain.NormalizeCurrencyCode(string(d.FromCurrency))),
		ToCurrency:       string(domain.NormalizeCurrencyCode(string(d.ToCurrency))),
		Rate:             d.Rate,
		InverseRate:      d.InverseRate,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainConversionRate converts a model ConversionRate to a domain ConversionRate
func ToDomainConversionRate(m models.ConversionRate) domain.ConversionRate {
	return domain.ConversionRate{
		ID:           m.ConversionRateID,
		FromCurrency: domain.NormalizeCurrencyCode(m.FromCurrency),
		ToCurrency:   domain.NormalizeCurrencyCode(m.ToCurrency),
		Rate:         m.Rate,
		InverseRate:  m.InverseRate,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainConversionRateSlice converts a slice of model rates.
func ToDomainConversionRateSlice(ms []models.ConversionRate) []domain.ConversionRate {
	if ms == nil {
		return nil
	}
	ds := make([]domain.ConversionRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConversionRate(m)
	}
	return ds
}
