package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jingxi/marketplace/pkg/logger"
)

// RequestLogging writes one structured log line per completed request.
// The level tracks the response status so 5xx lines stand out.
func RequestLogging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		log := logger.WithContext(c.UserContext())
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		event.
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("request_id", c.Get("X-Request-Id")).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("bytes", len(c.Response().Body())).
			Msg("Gateway request completed")

		return err
	}
}
