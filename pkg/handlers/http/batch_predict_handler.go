package http

import (
	"errors"

	"github.com/NeuralTrust/TrustScan/pkg/app/batch"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type batchPredictHandler struct {
	logger       *logrus.Logger
	orchestrator batch.Orchestrator
}

func NewBatchPredictHandler(logger *logrus.Logger, orchestrator batch.Orchestrator) Handler {
	return &batchPredictHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

// Handle @Summary Score a list of URLs
// @Description Scans every URL independently. Lists above the configured cap are truncated.
// @Tags Predict
// @Accept json
// @Produce json
// @Param request body request.BatchPredictRequest true "URLs to scan"
// @Success 200 {object} verdict.BatchResult
// @Failure 400 {object} map[string]interface{} "Malformed body"
// @Failure 422 {object} map[string]interface{} "Empty list"
// @Router /api/v1/predict/batch [post]
func (h *batchPredictHandler) Handle(c *fiber.Ctx) error {
	var req request.BatchPredictRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to parse batch request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := h.orchestrator.Run(c.Context(), req.URLs, batch.Options{IncludeDomain: req.IncludeDomainFeatures})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyBatch) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("count", len(req.URLs)).Error("batch scan failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error while scanning batch"})
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
