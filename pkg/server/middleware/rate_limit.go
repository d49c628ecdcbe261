package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sirupsen/logrus"
)

type rateLimitMiddleware struct {
	logger *logrus.Logger
	name   string
	limit  int
	window time.Duration
}

// NewRateLimitMiddleware allows limit requests per window and client IP. A limit
// of zero or less lets every request through.
func NewRateLimitMiddleware(logger *logrus.Logger, name string, limit int, window time.Duration) Middleware {
	return &rateLimitMiddleware{
		logger: logger,
		name:   name,
		limit:  limit,
		window: window,
	}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	if m.limit <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	return limiter.New(limiter.Config{
		Max:        m.limit,
		Expiration: m.window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return m.name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			m.logger.WithFields(logrus.Fields{
				"route":      m.name,
				"ip":         c.IP(),
				"request_id": RequestID(c),
			}).Warn("rate limit exceeded")
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(m.window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded, try again later",
			})
		},
	})
}
