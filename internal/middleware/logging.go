package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"famledger/internal/logging"
)

// RequestLogger logs one line per request. Bodies and headers are never logged.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logging.Component(logger, logging.ComponentHTTP)
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				logging.FieldMethod, v.Method,
				logging.FieldRoute, v.RoutePath,
				logging.FieldStatusCode, v.Status,
				logging.FieldDuration, v.Latency.Milliseconds(),
				logging.FieldRequestID, v.RequestID,
				logging.FieldClientIP, v.RemoteIP,
			}
			if user := CurrentUser(c); user != nil {
				attrs = append(attrs, logging.FieldUserID, user.ID)
			}

			level := slog.LevelInfo
			switch {
			case v.Status >= 500:
				level = slog.LevelError
			case v.Status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
