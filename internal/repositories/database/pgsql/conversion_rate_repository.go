package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	"github.com/SscSPs/merchant_payments/internal/models"
	"github.com/SscSPs/merchant_payments/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConversionRateRepository implements portsrepo.ConversionRateRepositoryFacade using pgxpool.
type PgxConversionRateRepository struct {
	BaseRepository
}

func newPgxConversionRateRepository(db *pgxpool.Pool) portsrepo.ConversionRateRepositoryFacade {
	return &PgxConversionRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveConversionRate inserts a new conversion rate. History is kept; readers use the latest per pair.
func (r *PgxConversionRateRepository) SaveConversionRate(ctx context.Context, rate domain.ConversionRate) error {
	modelRate := mapping.ToModelConversionRate(rate)
	if modelRate.FromCurrency == modelRate.ToCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO conversion_rates (
			conversion_rate_id, from_currency, to_currency, rate, inverse_rate, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		modelRate.ConversionRateID, modelRate.FromCurrency, modelRate.ToCurrency,
		modelRate.Rate, modelRate.InverseRate, modelRate.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: conversion rate %s already exists", apperrors.ErrDuplicate, modelRate.ConversionRateID)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save conversion rate", err)
	}
	return nil
}

// ListConversionRates returns the most recent rate for every pair matching the filters.
func (r *PgxConversionRateRepository) ListConversionRates(ctx context.Context, fromCurrency, toCurrency *domain.CurrencyCode) ([]domain.ConversionRate, error) {
	var (
		conditions []string
		args       []any
	)
	if fromCurrency != nil {
		args = append(args, string(domain.NormalizeCurrencyCode(string(*fromCurrency))))
		conditions = append(conditions, fmt.Sprintf("from_currency = $%d", len(args)))
	}
	if toCurrency != nil {
		args = append(args, string(domain.NormalizeCurrencyCode(string(*toCurrency))))
		conditions = append(conditions, fmt.Sprintf("to_currency = $%d", len(args)))
	}

	query := `
		SELECT DISTINCT ON (from_currency, to_currency)
			conversion_rate_id, from_currency, to_currency, rate, inverse_rate, created_at
		FROM conversion_rates`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY from_currency, to_currency, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list conversion rates", err)
	}
	defer rows.Close()

	var modelRates []models.ConversionRate
	for rows.Next() {
		var m models.ConversionRate
		if err := rows.Scan(&m.ConversionRateID, &m.FromCurrency, &m.ToCurrency, &m.Rate, &m.InverseRate, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan conversion rate", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to iterate conversion rates", err)
	}

	rates := mapping.ToDomainConversionRateSlice(modelRates)
	if rates == nil {
		rates = []domain.ConversionRate{}
	}
	return rates, nil
}
