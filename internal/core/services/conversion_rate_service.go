package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// inverseRatePrecision is the number of decimal places a derived inverse is stored with.
const inverseRatePrecision = 12

// ConversionRateService provides business logic for conversion rates.
type ConversionRateService struct {
	BaseService
	rateRepo  portsrepo.ConversionRateRepositoryFacade
	rateStore portssvc.RateStoreSvc
	converter portssvc.ConverterSvc
}

// NewConversionRateService creates a new ConversionRateService.
func NewConversionRateService(rateRepo portsrepo.ConversionRateRepositoryFacade, rateStore portssvc.RateStoreSvc, converter portssvc.ConverterSvc) *ConversionRateService {
	return &ConversionRateService{
		rateRepo:  rateRepo,
		rateStore: rateStore,
		converter: converter,
	}
}

var _ portssvc.ConversionRateSvcFacade = (*ConversionRateService)(nil)

// CreateConversionRate handles the creation of a new conversion rate. A missing inverse
// is derived once here and stored, so readers never invert at call time.
func (s *ConversionRateService) CreateConversionRate(ctx context.Context, req dto.CreateConversionRateRequest, creatorID string) (*domain.ConversionRate, error) {
	from := domain.NormalizeCurrencyCode(string(req.FromCurrency))
	to := domain.NormalizeCurrencyCode(string(req.ToCurrency))
	if !from.IsWellFormed() || !to.IsWellFormed() {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: conversion rate must be positive", apperrors.ErrValidation)
	}

	inverse := decimal.NewFromInt(1).DivRound(req.Rate, inverseRatePrecision)
	if req.InverseRate != nil {
		if !req.InverseRate.IsPositive() {
			return nil, fmt.Errorf("%w: inverse rate must be positive", apperrors.ErrValidation)
		}
		inverse = *req.InverseRate
	}

	rate := domain.ConversionRate{
		ID:           uuid.NewString(),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         req.Rate,
		InverseRate:  inverse,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.rateRepo.SaveConversionRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save conversion rate",
			slog.String("from", string(from)),
			slog.String("to", string(to)))
		return nil, fmt.Errorf("failed to create conversion rate in service: %w", err)
	}
	s.LogInfo(ctx, "Conversion rate created",
		slog.String("rate_id", rate.ID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("created_by", creatorID))

	if s.rateStore != nil {
		if _, err := s.rateStore.Refresh(ctx); err != nil {
			s.LogWarn(ctx, "Rate store refresh after create failed", slog.String("error", err.Error()))
		}
	}
	return &rate, nil
}

// ListConversionRates returns the latest rate per pair, optionally filtered.
func (s *ConversionRateService) ListConversionRates(ctx context.Context, fromCode, toCode string) ([]domain.ConversionRate, error) {
	fromFilter, err := optionalCurrency(fromCode)
	if err != nil {
		return nil, err
	}
	toFilter, err := optionalCurrency(toCode)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListConversionRates(ctx, fromFilter, toFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list conversion rates")
		return nil, fmt.Errorf("failed to list conversion rates in service: %w", err)
	}
	return rates, nil
}

// Quote converts amount with live rates when the rate source answers, otherwise through
// the cached and hardcoded tiers.
func (s *ConversionRateService) Quote(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*domain.Conversion, error) {
	from := domain.NormalizeCurrencyCode(fromCode)
	to := domain.NormalizeCurrencyCode(toCode)
	if !from.IsWellFormed() || !to.IsWellFormed() {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	var liveRates []domain.ConversionRate
	if from != to && s.rateStore != nil {
		liveRates = s.rateStore.LiveRates(ctx)
	}
	conversion := s.converter.ConvertWithDetailContext(ctx, amount, from, to, liveRates)
	return &conversion, nil
}

// RefreshRates implements portssvc.ConversionRateWriterSvc.
func (s *ConversionRateService) RefreshRates(ctx context.Context) (int, error) {
	if s.rateStore == nil {
		return 0, fmt.Errorf("rate store is not configured")
	}
	rates, err := s.rateStore.Refresh(ctx)
	if err != nil {
		s.LogError(ctx, err, "Manual conversion rate refresh failed")
		return 0, err
	}
	s.LogInfo(ctx, "Conversion rates refreshed", slog.Int("count", len(rates)))
	return len(rates), nil
}

func optionalCurrency(raw string) (*domain.CurrencyCode, error) {
	code := domain.NormalizeCurrencyCode(raw)
	if code == "" {
		return nil, nil
	}
	if !code.IsWellFormed() {
		return nil, fmt.Errorf("%w: currency code '%s' must be 3 letters", apperrors.ErrValidation, raw)
	}
	return &code, nil
}
