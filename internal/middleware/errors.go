package middleware

import (
	"github.com/labstack/echo/v4"

	apperrors "famledger/internal/errors"
)

// AsHTTPError maps a service error to an echo error carrying an ErrorResponse body.
// Unmapped errors become a generic 500 that keeps the cause for the error handler to log.
func AsHTTPError(err error) *echo.HTTPError {
	mapped := apperrors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	if !apperrors.IsDomain(err) {
		he.Internal = err
	}
	return he
}

func reject(status int, message, code string) *echo.HTTPError {
	return echo.NewHTTPError(status, apperrors.ErrorResponse{Error: message, Code: code})
}
