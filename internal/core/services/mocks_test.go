package services_test

import (
	"context"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ConversionRateRepository ---
type MockConversionRateRepository struct {
	mock.Mock
}

func (m *MockConversionRateRepository) ListConversionRates(ctx context.Context, from, to *domain.CurrencyCode) ([]domain.ConversionRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionRate), args.Error(1)
}

func (m *MockConversionRateRepository) SaveConversionRate(ctx context.Context, rate domain.ConversionRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock RateCache ---
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) Load(ctx context.Context) ([]domain.ConversionRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionRate), args.Error(1)
}

func (m *MockRateCache) Store(ctx context.Context, rates []domain.ConversionRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) ListBalanceBreakdowns(ctx context.Context, merchantID string) ([]domain.BalanceBreakdown, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceBreakdown), args.Error(1)
}

func (m *MockBalanceRepository) FindLedgerCurrency(ctx context.Context, merchantID string) (domain.CurrencyCode, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(domain.CurrencyCode), args.Error(1)
}

// --- Mock WithdrawalLedger ---
type MockWithdrawalLedger struct {
	mock.Mock
}

func (m *MockWithdrawalLedger) SubmitWithdrawal(ctx context.Context, submission domain.WithdrawalSubmission) (*domain.Withdrawal, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalLedger) FindWithdrawal(ctx context.Context, merchantID, withdrawalID string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, merchantID, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

// staticRates is a RateProvider returning a fixed list.
type staticRates []domain.ConversionRate

func (s staticRates) GetRates() []domain.ConversionRate { return s }
