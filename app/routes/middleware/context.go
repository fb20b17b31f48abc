package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/ctxlog"
)

// RequestLogger puts a logger tagged with the request id into the request's
// user context. It must run after the requestid middleware.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := base
		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			logger = base.With(slog.String("request_id", id))
		}
		c.SetUserContext(ctxlog.WithLogger(c.UserContext(), logger))
		return c.Next()
	}
}

// Limit returns a per-client limiter for rule, or a pass-through handler when
// rate limiting is disabled.
func Limit(enabled bool, rule config.LimitRule) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        rule.Max,
		Expiration: rule.Window,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Rate limit exceeded, retry after "+rule.Window.Round(time.Second).String())
		},
	})
}
