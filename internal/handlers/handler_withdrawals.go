package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/dto"
	"github.com/SscSPs/merchant_payments/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// IdempotencyKeyHeader lets clients retry a withdrawal safely.
const IdempotencyKeyHeader = "Idempotency-Key"

type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvc
}

// registerWithdrawalRoutes registers withdrawal routes on a merchant-scoped group.
// A nil limiter leaves submissions unthrottled.
func registerWithdrawalRoutes(merchant *gin.RouterGroup, withdrawalService portssvc.WithdrawalSvc, lim *limiter.Limiter) {
	h := &withdrawalHandler{withdrawalService: withdrawalService}

	submit := []gin.HandlerFunc{h.createWithdrawal}
	if lim != nil {
		submit = append([]gin.HandlerFunc{middleware.RateLimit(lim)}, submit...)
	}
	merchant.POST("/withdrawals", submit...)
	merchant.GET("/withdrawals/:withdrawalID", h.getWithdrawal)
}

// createWithdrawal godoc
// @Summary Request a withdrawal
// @Description Converts to the merchant's ledger currency when needed and submits to the ledger. Failures are reported in the body.
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   merchantID      path   string                      true  "Merchant ID"
// @Param   Idempotency-Key header string                      false "Idempotency key"
// @Param   withdrawal      body   dto.CreateWithdrawalRequest true  "Withdrawal"
// @Success 201 {object} dto.WithdrawalResultResponse
// @Failure 400 {object} dto.WithdrawalResultResponse "Invalid request format"
// @Failure 422 {object} dto.WithdrawalResultResponse "Withdrawal rejected"
// @Failure 429 {object} map[string]string "Too many requests"
// @Security BearerAuth
// @Router /merchants/{merchantID}/withdrawals [post]
func (h *withdrawalHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.WithdrawalResultResponse{Success: false, Message: "Invalid request format: " + err.Error()})
		return
	}

	result := h.withdrawalService.RequestWithdrawal(c.Request.Context(),
		req.ToWithdrawalRequest(c.Param("merchantID"), c.GetHeader(IdempotencyKeyHeader)))
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, dto.ToWithdrawalResultResponse(result))
		return
	}
	c.JSON(http.StatusCreated, dto.ToWithdrawalResultResponse(result))
}

// getWithdrawal godoc
// @Summary Get a withdrawal
// @Tags withdrawals
// @Produce  json
// @Param   merchantID   path string true "Merchant ID"
// @Param   withdrawalID path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 404 {object} map[string]string "Withdrawal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve withdrawal"
// @Security BearerAuth
// @Router /merchants/{merchantID}/withdrawals/{withdrawalID} [get]
func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	withdrawal, err := h.withdrawalService.GetWithdrawal(c.Request.Context(), c.Param("merchantID"), c.Param("withdrawalID"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to retrieve withdrawal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve withdrawal"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}
