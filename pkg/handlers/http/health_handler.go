package http

import (
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/handlers/http/response"
	"github.com/NeuralTrust/TrustScan/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type healthHandler struct {
	logger   *logrus.Logger
	selector scoring.Selector
}

func NewHealthHandler(logger *logrus.Logger, selector scoring.Selector) Handler {
	return &healthHandler{
		logger:   logger,
		selector: selector,
	}
}

// Handle @Summary Health check
// @Description Reports degraded when a configured model is not serving. The service keeps answering from rules either way.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Health
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	status := h.selector.Status()
	body := response.Health{
		Status:      response.StatusHealthy,
		ModelLoaded: status.ModelLoaded,
		Mode:        string(status.Mode),
		Version:     version.Version,
		Time:        response.Now(),
	}
	if status.Degraded {
		body.Status = response.StatusDegraded
	}
	if status.ModelLoaded && status.Metadata != nil {
		body.ModelName = status.Metadata.Name
	}
	return c.Status(fiber.StatusOK).JSON(body)
}
