package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jewelry-store/internal/entity"
)

// statusFor maps the shared error taxonomy to HTTP status codes. Anything
// outside the taxonomy is an unexpected persistence or internal failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrAccountDeactivated):
		return http.StatusPaymentRequired
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		msg = "An unexpected error occurred"
	}
	return c.JSON(status, map[string]string{"error": msg})
}
