package http

import (
	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type featuresHandler struct {
	logger       *logrus.Logger
	scanner      scan.Scanner
	maxURLLength int
}

func NewFeaturesHandler(logger *logrus.Logger, scanner scan.Scanner, maxURLLength int) Handler {
	return &featuresHandler{
		logger:       logger,
		scanner:      scanner,
		maxURLLength: maxURLLength,
	}
}

// Handle @Summary Extract URL features
// @Description Returns the full feature vector without scoring it
// @Tags Features
// @Produce json
// @Param url query string true "URL to analyse"
// @Param include_domain_features query bool false "Run WHOIS and TLS enrichment"
// @Success 200 {object} scan.FeatureReport
// @Failure 422 {object} map[string]interface{} "Invalid URL"
// @Router /api/v1/features [get]
func (h *featuresHandler) Handle(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if err := request.ValidateFeaturesQuery(rawURL, h.maxURLLength); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.scanner.Features(c.Context(), rawURL, scan.Options{
		IncludeDomain: c.QueryBool("include_domain_features", false),
	})
	if err != nil {
		if domain.IsInputError(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("url", rawURL).Error("failed to extract features")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error while extracting features"})
	}
	return c.Status(fiber.StatusOK).JSON(report)
}
