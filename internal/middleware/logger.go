package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Logger tags every request with a generated id, exposes it on the
// X-Request-ID response header, and emits one completion line per request.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := uuid.NewString()

		reqLogger := log.With().Str("request_id", requestID).Logger()
		c.SetRequest(c.Request().WithContext(reqLogger.WithContext(c.Request().Context())))
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		err := next(c)

		req := c.Request()
		res := c.Response()

		reqLogger.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("remote_ip", c.RealIP()).
			Int("status", res.Status).
			Int64("bytes_out", res.Size).
			Dur("took", time.Since(start)).
			Msg("request completed")

		return err
	}
}
