package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portsrepo "github.com/SscSPs/merchant_payments/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/utils"
)

// Messages returned to callers in failed withdrawal results.
const (
	msgWithdrawalInvalidMerchant    = "merchant ID is required"
	msgWithdrawalInvalidAmount      = "withdrawal amount must be positive"
	msgWithdrawalInvalidCurrency    = "currency code is not valid"
	msgWithdrawalMissingDestination = "destination account is required"
	msgWithdrawalUnknownMerchant    = "merchant not found"
	msgWithdrawalNoRate             = "no conversion rate available for this currency"
	msgWithdrawalTooSmall           = "withdrawal amount is too small after conversion"
	msgWithdrawalInsufficientFunds  = "insufficient available balance"
	msgWithdrawalInvalidAccount     = "destination account is invalid"
	msgWithdrawalIdempotency        = "idempotency key was already used for a different withdrawal"
	msgWithdrawalUnavailable        = "withdrawal could not be processed, please try again later"
	msgWithdrawalSubmitted          = "withdrawal submitted"
)

// withdrawalService implements portssvc.WithdrawalSvc
type withdrawalService struct {
	BaseService
	ledger      portsrepo.WithdrawalLedger
	balanceRepo portsrepo.BalanceReader
	rateStore   portssvc.RateStoreSvc
	converter   portssvc.ConverterSvc
	precision   *utils.PrecisionTable
}

// NewWithdrawalService creates a new withdrawal service.
func NewWithdrawalService(ledger portsrepo.WithdrawalLedger, balanceRepo portsrepo.BalanceReader, rateStore portssvc.RateStoreSvc, converter portssvc.ConverterSvc, precision *utils.PrecisionTable) portssvc.WithdrawalSvc {
	if precision == nil {
		precision = utils.DefaultPrecisionTable()
	}
	return &withdrawalService{
		ledger:      ledger,
		balanceRepo: balanceRepo,
		rateStore:   rateStore,
		converter:   converter,
		precision:   precision,
	}
}

var _ portssvc.WithdrawalSvc = (*withdrawalService)(nil)

// RequestWithdrawal converts the request into the ledger currency when needed and
// submits it. All failures are reported in the returned result.
func (s *withdrawalService) RequestWithdrawal(ctx context.Context, req domain.WithdrawalRequest) domain.WithdrawalResult {
	req.MerchantID = strings.TrimSpace(req.MerchantID)
	req.DestinationAccountID = strings.TrimSpace(req.DestinationAccountID)
	req.CurrencyCode = domain.NormalizeCurrencyCode(string(req.CurrencyCode))

	if msg := validateWithdrawalRequest(req); msg != "" {
		return failedWithdrawal(msg)
	}

	logger := s.GetLogger(ctx).With(
		slog.String("merchant_id", req.MerchantID),
		slog.String("currency", string(req.CurrencyCode)),
		slog.String("amount", req.Amount.String()))

	ledgerCurrency, err := s.balanceRepo.FindLedgerCurrency(ctx, req.MerchantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return failedWithdrawal(msgWithdrawalUnknownMerchant)
		}
		logger.Error("Failed to resolve ledger currency", slog.String("error", err.Error()))
		return failedWithdrawal(msgWithdrawalUnavailable)
	}
	ledgerCurrency = domain.NormalizeCurrencyCode(string(ledgerCurrency))

	submission := domain.WithdrawalSubmission{
		MerchantID:           req.MerchantID,
		Amount:               req.Amount,
		CurrencyCode:         ledgerCurrency,
		RequestedAmount:      req.Amount,
		RequestedCurrency:    req.CurrencyCode,
		DestinationAccountID: req.DestinationAccountID,
		IdempotencyKey:       strings.TrimSpace(req.IdempotencyKey),
	}
	if req.CurrencyCode != ledgerCurrency {
		var liveRates []domain.ConversionRate
		if s.rateStore != nil {
			liveRates = s.rateStore.LiveRates(ctx)
		}
		conversion := s.converter.ConvertWithDetailContext(ctx, req.Amount, req.CurrencyCode, ledgerCurrency, liveRates)
		if conversion.Tier == domain.TierIdentity {
			logger.Warn("Withdrawal rejected, no rate to ledger currency", slog.String("ledger_currency", string(ledgerCurrency)))
			return failedWithdrawal(msgWithdrawalNoRate)
		}
		if !conversion.Converted.IsPositive() {
			return failedWithdrawal(msgWithdrawalTooSmall)
		}
		submission.Amount = conversion.Converted
		logger.Debug("Withdrawal amount converted to ledger currency",
			slog.String("ledger_currency", string(ledgerCurrency)),
			slog.String("ledger_amount", conversion.Converted.String()),
			slog.String("tier", string(conversion.Tier)))
	}

	// A keyed request may be a retry whose funds already moved to pending; the
	// ledger replays it or applies its own locked balance check.
	if submission.IdempotencyKey == "" {
		if msg := s.checkAvailable(ctx, logger, submission); msg != "" {
			return failedWithdrawal(msg)
		}
	}

	withdrawal, err := s.ledger.SubmitWithdrawal(ctx, submission)
	if err != nil {
		msg := withdrawalFailureMessage(err)
		if msg == msgWithdrawalUnavailable {
			logger.Error("Ledger withdrawal submission failed", slog.String("error", err.Error()))
		} else {
			logger.Info("Ledger rejected withdrawal", slog.String("reason", err.Error()))
		}
		return failedWithdrawal(msg)
	}

	logger.Info("Withdrawal submitted", slog.String("withdrawal_id", withdrawal.WithdrawalID))
	return domain.WithdrawalResult{
		Success:        true,
		Message:        msgWithdrawalSubmitted,
		WithdrawalID:   withdrawal.WithdrawalID,
		LedgerAmount:   withdrawal.Amount,
		LedgerCurrency: withdrawal.CurrencyCode,
	}
}

// GetWithdrawal implements portssvc.WithdrawalSvc.
func (s *withdrawalService) GetWithdrawal(ctx context.Context, merchantID, withdrawalID string) (*domain.Withdrawal, error) {
	merchantID = strings.TrimSpace(merchantID)
	withdrawalID = strings.TrimSpace(withdrawalID)
	if merchantID == "" || withdrawalID == "" {
		return nil, fmt.Errorf("%w: merchant ID and withdrawal ID are required", apperrors.ErrValidation)
	}
	withdrawal, err := s.ledger.FindWithdrawal(ctx, merchantID, withdrawalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to retrieve withdrawal", slog.String("withdrawal_id", withdrawalID))
		return nil, fmt.Errorf("failed to retrieve withdrawal: %w", err)
	}
	return withdrawal, nil
}

// checkAvailable rejects submissions above the available balance before they reach
// the ledger. The ledger stays authoritative; a failed lookup skips the check.
func (s *withdrawalService) checkAvailable(ctx context.Context, logger *slog.Logger, submission domain.WithdrawalSubmission) string {
	balances, err := s.balanceRepo.ListBalanceBreakdowns(ctx, submission.MerchantID)
	if err != nil {
		logger.Warn("Balance pre-check skipped", slog.String("error", err.Error()))
		return ""
	}
	for _, b := range balances {
		if domain.NormalizeCurrencyCode(string(b.CurrencyCode)) != submission.CurrencyCode {
			continue
		}
		if submission.Amount.GreaterThan(b.AvailableBalance) {
			return fmt.Sprintf("%s: requested %s, available %s", msgWithdrawalInsufficientFunds,
				utils.FormatAmount(submission.Amount, submission.CurrencyCode, s.precision),
				utils.FormatAmount(b.AvailableBalance, b.CurrencyCode, s.precision))
		}
		return ""
	}
	return msgWithdrawalInsufficientFunds
}

func validateWithdrawalRequest(req domain.WithdrawalRequest) string {
	switch {
	case req.MerchantID == "":
		return msgWithdrawalInvalidMerchant
	case !req.Amount.IsPositive():
		return msgWithdrawalInvalidAmount
	case !req.CurrencyCode.IsWellFormed():
		return msgWithdrawalInvalidCurrency
	case req.DestinationAccountID == "":
		return msgWithdrawalMissingDestination
	}
	return ""
}

func withdrawalFailureMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return msgWithdrawalInsufficientFunds
	case errors.Is(err, apperrors.ErrInvalidAccount):
		return msgWithdrawalInvalidAccount
	case errors.Is(err, apperrors.ErrIdempotencyConflict):
		return msgWithdrawalIdempotency
	case errors.Is(err, apperrors.ErrNotFound):
		return msgWithdrawalUnknownMerchant
	case errors.Is(err, apperrors.ErrValidation):
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			return appErr.Message
		}
		return msgWithdrawalUnavailable
	default:
		return msgWithdrawalUnavailable
	}
}

func failedWithdrawal(msg string) domain.WithdrawalResult {
	return domain.WithdrawalResult{Success: false, Message: msg}
}
