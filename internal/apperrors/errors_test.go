package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/merchant_payments/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("lookup failed: %w", apperrors.NewNotFoundError("withdrawal w-1 not found"))

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "withdrawal w-1 not found")

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := apperrors.NewValidationError("rate must be positive")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := apperrors.NewAppError(http.StatusInternalServerError, "boom", nil)
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
