package http

import (
	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type predictHandler struct {
	logger       *logrus.Logger
	scanner      scan.Scanner
	maxURLLength int
}

func NewPredictHandler(logger *logrus.Logger, scanner scan.Scanner, maxURLLength int) Handler {
	return &predictHandler{
		logger:       logger,
		scanner:      scanner,
		maxURLLength: maxURLLength,
	}
}

// Handle @Summary Score a single URL
// @Description Returns the phishing verdict for one URL
// @Tags Predict
// @Accept json
// @Produce json
// @Param request body request.PredictRequest true "URL to scan"
// @Success 200 {object} verdict.Verdict
// @Failure 400 {object} map[string]interface{} "Malformed body"
// @Failure 422 {object} map[string]interface{} "Invalid URL"
// @Router /api/v1/predict [post]
func (h *predictHandler) Handle(c *fiber.Ctx) error {
	var req request.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to parse predict request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(h.maxURLLength); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	v, err := h.scanner.Scan(c.Context(), req.URL, scan.Options{IncludeDomain: req.IncludeDomainFeatures})
	if err != nil {
		if domain.IsInputError(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("url", req.URL).Error("failed to scan url")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error while scanning url"})
	}
	return c.Status(fiber.StatusOK).JSON(v)
}
