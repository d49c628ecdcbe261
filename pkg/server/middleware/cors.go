package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type corsMiddleware struct {
	allowOrigins []string
	allowMethods []string
	maxAge       string
}

func NewCORSMiddleware(allowOrigins []string, allowMethods []string, maxAge string) Middleware {
	return &corsMiddleware{
		allowOrigins: allowOrigins,
		allowMethods: allowMethods,
		maxAge:       maxAge,
	}
}

func (m *corsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" || !m.allowed(origin) {
			return c.Next()
		}

		c.Set("Vary", "Origin")
		if hasStar(m.allowOrigins) {
			c.Set("Access-Control-Allow-Origin", "*")
		} else {
			c.Set("Access-Control-Allow-Origin", origin)
		}
		c.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Method() != fiber.MethodOptions || c.Get("Access-Control-Request-Method") == "" {
			return c.Next()
		}

		c.Set("Access-Control-Allow-Methods", strings.Join(m.allowMethods, ", "))
		if reqHeaders := c.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			c.Set("Access-Control-Allow-Headers", reqHeaders)
		} else {
			c.Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if m.maxAge != "" {
			c.Set("Access-Control-Max-Age", m.maxAge)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (m *corsMiddleware) allowed(origin string) bool {
	for _, o := range m.allowOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func hasStar(arr []string) bool {
	for _, v := range arr {
		if v == "*" {
			return true
		}
	}
	return false
}
