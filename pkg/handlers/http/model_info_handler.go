package http

import (
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/NeuralTrust/TrustScan/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type modelInfoHandler struct {
	logger   *logrus.Logger
	selector scoring.Selector
}

func NewModelInfoHandler(logger *logrus.Logger, selector scoring.Selector) Handler {
	return &modelInfoHandler{
		logger:   logger,
		selector: selector,
	}
}

// Handle @Summary Describe the active scorer
// @Description Returns the loaded model metadata and training metrics, or the rule-based fallback
// @Tags Model
// @Produce json
// @Success 200 {object} response.ModelInfo
// @Router /api/v1/model/info [get]
func (h *modelInfoHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(NewModelInfo(h.selector.Status()))
}

// NewModelInfo reports metadata only while the model is serving.
func NewModelInfo(status scoring.Status) response.ModelInfo {
	info := response.ModelInfo{
		Loaded:       status.ModelLoaded,
		Mode:         string(status.Mode),
		Degraded:     status.Degraded,
		ModelName:    verdict.RuleBasedModel,
		FeatureNames: []string{},
		Reason:       status.Reason,
	}
	if !status.ModelLoaded || status.Metadata == nil {
		return info
	}
	meta := status.Metadata
	f1, acc, auc := meta.Metrics.F1, meta.Metrics.Accuracy, meta.Metrics.AUC
	info.ModelName = meta.Name
	info.Version = meta.Version
	info.Kind = string(meta.Kind)
	info.F1Score = &f1
	info.Accuracy = &acc
	info.AUC = &auc
	info.TrainedOn = meta.TrainedOn
	info.NFeatures = len(meta.FeatureNames)
	info.FeatureNames = append(info.FeatureNames, meta.FeatureNames...)
	return info
}
