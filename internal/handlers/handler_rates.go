package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/dto"
	"github.com/SscSPs/merchant_payments/internal/middleware"
	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/gin-gonic/gin"
)

// conversionRateHandler handles HTTP requests related to conversion rates and quotes.
type conversionRateHandler struct {
	rateService portssvc.ConversionRateSvcFacade
	precision   *utils.PrecisionTable
}

func newConversionRateHandler(rs portssvc.ConversionRateSvcFacade, precision *utils.PrecisionTable) *conversionRateHandler {
	return &conversionRateHandler{
		rateService: rs,
		precision:   precision,
	}
}

// registerConversionRateRoutes registers routes related to conversion rates.
func registerConversionRateRoutes(rg *gin.RouterGroup, rateService portssvc.ConversionRateSvcFacade, precision *utils.PrecisionTable, adminIDs []string) {
	h := newConversionRateHandler(rateService, precision)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listConversionRates)
		rates.POST("", middleware.RequireSubjects(adminIDs), h.createConversionRate)
		rates.POST("/refresh", middleware.RequireSubjects(adminIDs), h.refreshConversionRates)
	}
	rg.GET("/conversions", h.convert)
}

// createConversionRate godoc
// @Summary Record a conversion rate
// @Description Stores a rate between two currencies. The inverse is derived when omitted.
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateConversionRateRequest true "Conversion rate"
// @Success 201 {object} dto.ConversionRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create conversion rate"
// @Security BearerAuth
// @Router /rates [post]
func (h *conversionRateHandler) createConversionRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateConversionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConversionRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.rateService.CreateConversionRate(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating conversion rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create conversion rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversion rate"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToConversionRateResponse(created))
}

// listConversionRates godoc
// @Summary List conversion rates
// @Description Returns the latest rate per currency pair, optionally filtered
// @Tags rates
// @Produce  json
// @Param   from query string false "From currency code"
// @Param   to   query string false "To currency code"
// @Success 200 {array} dto.ConversionRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 500 {object} map[string]string "Failed to list conversion rates"
// @Security BearerAuth
// @Router /rates [get]
func (h *conversionRateHandler) listConversionRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListConversionRates(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list conversion rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversion rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListConversionRateResponse(rates))
}

// refreshConversionRates godoc
// @Summary Refresh the rate store
// @Description Reloads rates from the database into the in-process store and the persistent cache
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RefreshRatesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 503 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *conversionRateHandler) refreshConversionRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	n, err := h.rateService.RefreshRates(c.Request.Context())
	if err != nil {
		logger.Error("Conversion rate refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate source unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.RefreshRatesResponse{Loaded: n})
}

// convert godoc
// @Summary Convert an amount
// @Description Converts with live rates when available, falling back to cached, then hardcoded rates
// @Tags rates
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from   query string true "From currency code"
// @Param   to     query string true "To currency code"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /conversions [get]
func (h *conversionRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConversionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind conversion query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	amount, err := q.ParsedAmount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a decimal number"})
		return
	}

	conversion, err := h.rateService.Quote(c.Request.Context(), amount, string(q.From), string(q.To))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to quote conversion", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(conversion, utils.FormatAmount(conversion.Converted, conversion.ToCurrency, h.precision)))
}
