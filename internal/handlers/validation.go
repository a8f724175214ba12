package handlers

import (
	"sync"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by request DTOs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		}
	})
}

// validateCurrencyCode accepts three ASCII letters in any case.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return domain.NormalizeCurrencyCode(fl.Field().String()).IsWellFormed()
}
