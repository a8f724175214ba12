package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/SscSPs/merchant_payments/internal/core/domain"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/dto"
	"github.com/SscSPs/merchant_payments/internal/middleware"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

// registerBalanceRoutes registers the balance overview route on a merchant-scoped group.
func registerBalanceRoutes(merchant *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := &balanceHandler{balanceService: balanceService}
	merchant.GET("/balances", h.getBalances)
}

// getBalances godoc
// @Summary Get merchant balances
// @Description Balances per currency in display order, with equivalents in the default currency
// @Tags balances
// @Produce  json
// @Param   merchantID path  string true  "Merchant ID"
// @Param   default    query string false "Default currency code"
// @Param   order      query string false "Preferred display order, comma separated (e.g. XOF,USD)"
// @Success 200 {object} dto.BalanceOverviewResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Merchant not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balances"
// @Security BearerAuth
// @Router /merchants/{merchantID}/balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchantID")

	var q dto.BalanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	overview, err := h.balanceService.GetBalanceOverview(c.Request.Context(), merchantID, domain.NormalizeCurrencyCode(q.Default), q.DisplayOrder())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Merchant not found"})
		default:
			logger.Error("Failed to build balance overview", slog.String("merchant_id", merchantID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceOverviewResponse(overview))
}
