package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateConversionRateRequest defines the structure for recording a new conversion rate.
type CreateConversionRateRequest struct {
	FromCurrency domain.CurrencyCode `json:"fromCurrency" binding:"required,currency_code"`
	ToCurrency   domain.CurrencyCode `json:"toCurrency" binding:"required,currency_code"`
	Rate         decimal.Decimal     `json:"rate" binding:"required"`
	// InverseRate is optional; when absent it is derived once at write time.
	InverseRate *decimal.Decimal `json:"inverseRate,omitempty"`
}

// ConversionRateResponse defines the structure for API responses containing rate details.
type ConversionRateResponse struct {
	ID           string              `json:"id"`
	FromCurrency domain.CurrencyCode `json:"fromCurrency"`
	ToCurrency   domain.CurrencyCode `json:"toCurrency"`
	Rate         decimal.Decimal     `json:"rate"`
	InverseRate  decimal.Decimal     `json:"inverseRate"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToConversionRateResponse converts a domain.ConversionRate to ConversionRateResponse DTO
func ToConversionRateResponse(rate *domain.ConversionRate) ConversionRateResponse {
	return ConversionRateResponse{
		ID:           rate.ID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate,
		InverseRate:  rate.InverseRate,
		CreatedAt:    rate.CreatedAt,
	}
}

// ToListConversionRateResponse converts a slice of rates to response DTOs.
func ToListConversionRateResponse(rates []domain.ConversionRate) []ConversionRateResponse {
	responses := make([]ConversionRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToConversionRateResponse(&rates[i])
	}
	return responses
}

// RefreshRatesResponse reports how many rates a refresh loaded.
type RefreshRatesResponse struct {
	Loaded int `json:"loaded"`
}

// ConversionQuery binds the query string of a conversion quote.
// Amount stays a string so it is parsed as an exact decimal.
type ConversionQuery struct {
	Amount string              `form:"amount" binding:"required"`
	From   domain.CurrencyCode `form:"from" binding:"required,currency_code"`
	To     domain.CurrencyCode `form:"to" binding:"required,currency_code"`
}

// ParsedAmount returns Amount as a decimal.
func (q ConversionQuery) ParsedAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(q.Amount))
}

// ToConversionResponse builds the response for a quote; formatted is the display string.
func ToConversionResponse(c *domain.Conversion, formatted string) ConversionResponse {
	return ConversionResponse{
		Amount:       c.Amount,
		FromCurrency: c.FromCurrency,
		ToCurrency:   c.ToCurrency,
		Converted:    c.Converted,
		Formatted:    formatted,
		Rate:         c.Rate,
		Tier:         c.Tier,
	}
}

// ConversionResponse is a quote with the rate and tier that produced it.
type ConversionResponse struct {
	Amount       decimal.Decimal     `json:"amount"`
	FromCurrency domain.CurrencyCode `json:"fromCurrency"`
	ToCurrency   domain.CurrencyCode `json:"toCurrency"`
	Converted    decimal.Decimal     `json:"converted"`
	Formatted    string              `json:"formatted"`
	Rate         decimal.Decimal     `json:"rate"`
	Tier         domain.RateTier     `json:"tier"`
}
