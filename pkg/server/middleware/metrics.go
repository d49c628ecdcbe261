package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/TrustScan/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		method := c.Method()
		prometheus.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.HTTPRequestLatency.WithLabelValues(method, route).
				Observe(float64(time.Since(start).Microseconds()) / 1000)
		}
		return err
	}
}
