package api

import (
	"time"

	"github.com/labstack/echo/v4"
)

// LoggingMiddleware logs every request with latency and status.
func (c *Controller) LoggingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			if c.Settings != nil && !c.Settings.Server.Debug {
				return err
			}
			c.logger.Debug("request",
				"method", ctx.Request().Method,
				"path", ctx.Request().URL.Path,
				"status", ctx.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", ctx.RealIP(),
			)
			return err
		}
	}
}
