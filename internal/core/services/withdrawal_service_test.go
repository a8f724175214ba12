package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WithdrawalServiceTestSuite struct {
	suite.Suite
	mockLedger      *MockWithdrawalLedger
	mockBalanceRepo *MockBalanceRepository
	mockRateRepo    *MockConversionRateRepository
	service         portssvc.WithdrawalSvc
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockWithdrawalLedger)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockRateRepo = new(MockConversionRateRepository)
	store := services.NewRateStore(suite.mockRateRepo)
	engine := services.NewConversionEngine(store)
	suite.service = services.NewWithdrawalService(suite.mockLedger, suite.mockBalanceRepo, store, engine, nil)
}

func (suite *WithdrawalServiceTestSuite) request(amount, code string) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		MerchantID:           "m-1",
		Amount:               dec(amount),
		CurrencyCode:         domain.CurrencyCode(code),
		DestinationAccountID: "ba-1",
	}
}

func (suite *WithdrawalServiceTestSuite) keyedRequest(amount, code, key string) domain.WithdrawalRequest {
	req := suite.request(amount, code)
	req.IdempotencyKey = key
	return req
}

func (suite *WithdrawalServiceTestSuite) expectLedger(ctx context.Context, currency domain.CurrencyCode, balances ...domain.BalanceBreakdown) {
	suite.mockBalanceRepo.On("FindLedgerCurrency", ctx, "m-1").Return(currency, nil).Once()
	suite.mockBalanceRepo.On("ListBalanceBreakdowns", ctx, "m-1").Return(balances, nil).Once()
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_SameCurrency() {
	ctx := context.Background()
	suite.expectLedger(ctx, "XOF", balance("XOF", "10000"))
	suite.mockLedger.On("SubmitWithdrawal", ctx, mock.MatchedBy(func(s domain.WithdrawalSubmission) bool {
		return s.Amount.Equal(dec("5000")) && s.CurrencyCode == "XOF" && s.RequestedCurrency == "XOF" && s.IdempotencyKey == "key-1"
	})).Return(&domain.Withdrawal{
		WithdrawalID: "w-1", MerchantID: "m-1", Amount: dec("5000"), CurrencyCode: "XOF",
		Status: domain.WithdrawalPending, CreatedAt: time.Now(),
	}, nil).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.keyedRequest("5000", "xof", "key-1"))

	suite.True(result.Success, result.Message)
	suite.Equal("w-1", result.WithdrawalID)
	suite.Equal(domain.CurrencyCode("XOF"), result.LedgerCurrency)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListConversionRates", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_ConvertsToLedgerCurrency() {
	ctx := context.Background()
	suite.expectLedger(ctx, "XOF", balance("XOF", "10000"))
	suite.mockRateRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).
		Return(nil, errors.New("db down")).Once()
	suite.mockLedger.On("SubmitWithdrawal", ctx, mock.MatchedBy(func(s domain.WithdrawalSubmission) bool {
		return s.Amount.Equal(dec("605")) && s.CurrencyCode == "XOF" &&
			s.RequestedAmount.Equal(dec("1")) && s.RequestedCurrency == "USD"
	})).Return(&domain.Withdrawal{WithdrawalID: "w-2", Amount: dec("605"), CurrencyCode: "XOF"}, nil).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.request("1", "USD"))

	suite.True(result.Success, result.Message)
	suite.True(dec("605").Equal(result.LedgerAmount))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_ExceedsAvailableBalance() {
	ctx := context.Background()
	suite.expectLedger(ctx, "XOF", balance("XOF", "100"))

	result := suite.service.RequestWithdrawal(ctx, suite.request("5000", "XOF"))

	suite.False(result.Success)
	suite.NotEmpty(result.Message)
	suite.Contains(result.Message, "insufficient")
	suite.mockLedger.AssertNotCalled(suite.T(), "SubmitWithdrawal", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_KeyedRetryReachesLedgerReplay() {
	ctx := context.Background()
	// The first request already moved 8000 of 10000 to pending.
	suite.mockBalanceRepo.On("FindLedgerCurrency", ctx, "m-1").Return(domain.CurrencyCode("XOF"), nil).Once()
	suite.mockLedger.On("SubmitWithdrawal", ctx, mock.MatchedBy(func(s domain.WithdrawalSubmission) bool {
		return s.IdempotencyKey == "key-1" && s.Amount.Equal(dec("8000"))
	})).Return(&domain.Withdrawal{
		WithdrawalID: "w-1", MerchantID: "m-1", Amount: dec("8000"), CurrencyCode: "XOF",
		Status: domain.WithdrawalPending,
	}, nil).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.keyedRequest("8000", "XOF", "key-1"))

	suite.True(result.Success, result.Message)
	suite.Equal("w-1", result.WithdrawalID)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "ListBalanceBreakdowns", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_KeyedRequestLeavesBalanceCheckToLedger() {
	ctx := context.Background()
	suite.mockBalanceRepo.On("FindLedgerCurrency", ctx, "m-1").Return(domain.CurrencyCode("XOF"), nil).Once()
	suite.mockLedger.On("SubmitWithdrawal", ctx, mock.Anything).
		Return(nil, fmt.Errorf("%w: available 100, requested 5000", apperrors.ErrInsufficientFunds)).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.keyedRequest("5000", "XOF", "key-2"))

	suite.False(result.Success)
	suite.Equal("insufficient available balance", result.Message)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_LedgerRejections() {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"insufficient funds", apperrors.ErrInsufficientFunds, "insufficient available balance"},
		{"invalid account", errors.Join(apperrors.ErrInvalidAccount, errors.New("ba-1")), "destination account is invalid"},
		{"idempotency conflict", apperrors.ErrIdempotencyConflict, "idempotency key was already used for a different withdrawal"},
		{"provider failure", errors.New("connection reset"), "withdrawal could not be processed, please try again later"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			suite.expectLedger(ctx, "XOF", balance("XOF", "10000"))
			suite.mockLedger.On("SubmitWithdrawal", ctx, mock.Anything).Return(nil, tt.err).Once()

			result := suite.service.RequestWithdrawal(ctx, suite.request("100", "XOF"))

			suite.False(result.Success)
			suite.Equal(tt.message, result.Message)
		})
	}
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_InvalidInput() {
	ctx := context.Background()
	bad := []domain.WithdrawalRequest{
		{MerchantID: "", Amount: dec("1"), CurrencyCode: "XOF", DestinationAccountID: "ba-1"},
		{MerchantID: "m-1", Amount: dec("0"), CurrencyCode: "XOF", DestinationAccountID: "ba-1"},
		{MerchantID: "m-1", Amount: dec("-3"), CurrencyCode: "XOF", DestinationAccountID: "ba-1"},
		{MerchantID: "m-1", Amount: dec("1"), CurrencyCode: "X0F", DestinationAccountID: "ba-1"},
		{MerchantID: "m-1", Amount: dec("1"), CurrencyCode: "XOF", DestinationAccountID: " "},
	}
	for _, req := range bad {
		result := suite.service.RequestWithdrawal(ctx, req)
		suite.False(result.Success)
		suite.NotEmpty(result.Message)
	}
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "FindLedgerCurrency", mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_UnknownMerchant() {
	ctx := context.Background()
	suite.mockBalanceRepo.On("FindLedgerCurrency", ctx, "m-1").Return(domain.CurrencyCode(""), apperrors.NewNotFoundError("merchant not found")).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.request("1", "XOF"))
	suite.False(result.Success)
	suite.Equal("merchant not found", result.Message)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_NoRateToLedgerCurrency() {
	ctx := context.Background()
	suite.mockBalanceRepo.On("FindLedgerCurrency", ctx, "m-1").Return(domain.CurrencyCode("KES"), nil).Once()
	suite.mockRateRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).
		Return([]domain.ConversionRate{}, nil).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.request("10", "EUR"))
	suite.False(result.Success)
	suite.Contains(result.Message, "no conversion rate")
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_RoundsToZero() {
	ctx := context.Background()
	suite.mockBalanceRepo.On("FindLedgerCurrency", ctx, "m-1").Return(domain.CurrencyCode("USD"), nil).Once()
	suite.mockRateRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).
		Return([]domain.ConversionRate{}, nil).Once()

	result := suite.service.RequestWithdrawal(ctx, suite.request("1", "XOF"))
	suite.False(result.Success)
	suite.Contains(result.Message, "too small")
}

func (suite *WithdrawalServiceTestSuite) TestGetWithdrawal() {
	ctx := context.Background()
	suite.mockLedger.On("FindWithdrawal", ctx, "m-1", "w-1").Return(&domain.Withdrawal{WithdrawalID: "w-1"}, nil).Once()
	suite.mockLedger.On("FindWithdrawal", ctx, "m-1", "w-2").Return(nil, apperrors.NewNotFoundError("withdrawal not found")).Once()

	w, err := suite.service.GetWithdrawal(ctx, "m-1", "w-1")
	suite.Require().NoError(err)
	suite.Equal("w-1", w.WithdrawalID)

	_, err = suite.service.GetWithdrawal(ctx, "m-1", "w-2")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetWithdrawal(ctx, "", "w-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestWithdrawalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
