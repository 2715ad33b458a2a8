package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/trendprints/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *appErrors.AppError
		code   string
		status int
	}{
		{"Validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"Unauthorized", appErrors.UnauthorizedError("login"), appErrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Forbidden", appErrors.ForbiddenError("no"), appErrors.ErrCodeForbidden, http.StatusForbidden},
		{"NotFound", appErrors.NotFoundError("gone"), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"Database", appErrors.DatabaseError("db"), appErrors.ErrCodeDatabaseError, http.StatusInternalServerError},
		{"Duplicate", appErrors.DuplicateEntryError("dup"), appErrors.ErrCodeDuplicateEntry, http.StatusConflict},
		{"TooManyRequests", appErrors.TooManyRequestsError("slow"), appErrors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode)
		})
	}
}

func TestIsAppError(t *testing.T) {
	t.Run("Success - Wrapped AppError", func(t *testing.T) {
		// Arrange
		cause := errors.New("connection reset")
		err := fmt.Errorf("placing order: %w", appErrors.DatabaseError("Failed to place order").WithError(cause))

		// Act
		appErr, ok := appErrors.IsAppError(err)

		// Assert
		require.True(t, ok)
		assert.Equal(t, "Failed to place order", appErr.Error())
		assert.ErrorIs(t, err, cause)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})

	t.Run("Failure - Plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(errors.New("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
		assert.False(t, appErrors.HasCode(errors.New("plain"), appErrors.ErrCodeNotFound))
	})
}
