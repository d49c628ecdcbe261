package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	scoringMocks "github.com/NeuralTrust/TrustScan/pkg/app/scoring/mocks"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
	"github.com/NeuralTrust/TrustScan/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, app *fiber.App, path string) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func servingStatus() scoring.Status {
	return scoring.Status{
		Mode:            scoring.ModeModel,
		ModelConfigured: true,
		ModelLoaded:     true,
		Metadata: &model.Metadata{
			Name:         "logistic_regression",
			Version:      "2024.06",
			Kind:         model.KindLinear,
			FeatureNames: []string{"url_length", "has_ip_address"},
			Metrics:      model.Metrics{F1: 0.912, Accuracy: 0.924, AUC: 0.968},
			TrainedOn:    "2024-06-01",
		},
	}
}

func TestHealthHandler(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	t.Run("healthy with model", func(t *testing.T) {
		selector := scoringMocks.NewSelector(t)
		selector.On("Status").Return(servingStatus()).Once()
		app := fiber.New()
		app.Get("/health", NewHealthHandler(logger, selector).Handle)

		body := getJSON(t, app, "/health")
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, true, body["model_loaded"])
		assert.Equal(t, "logistic_regression", body["model_name"])
		assert.Equal(t, version.Version, body["version"])
		assert.NotEmpty(t, body["time"])
	})

	t.Run("healthy without configured model", func(t *testing.T) {
		selector := scoring.NewSelector(logger, rules.DefaultSet())
		app := fiber.New()
		app.Get("/health", NewHealthHandler(logger, selector).Handle)

		body := getJSON(t, app, "/health")
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, false, body["model_loaded"])
		assert.Equal(t, "rules", body["mode"])
	})

	t.Run("degraded when configured model failed to load", func(t *testing.T) {
		selector := scoring.NewSelector(logger, rules.DefaultSet(), scoring.WithLoadError(errors.New("artifact missing")))
		app := fiber.New()
		app.Get("/health", NewHealthHandler(logger, selector).Handle)

		body := getJSON(t, app, "/health")
		assert.Equal(t, "degraded", body["status"])
		assert.Nil(t, body["model_name"])
	})
}

func TestModelInfoHandler(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	selector := scoringMocks.NewSelector(t)
	selector.On("Status").Return(servingStatus()).Once()
	app := fiber.New()
	app.Get("/api/v1/model/info", NewModelInfoHandler(logger, selector).Handle)

	body := getJSON(t, app, "/api/v1/model/info")
	assert.Equal(t, true, body["loaded"])
	assert.Equal(t, "model", body["mode"])
	assert.Equal(t, "logistic_regression", body["model_name"])
	assert.Equal(t, 0.912, body["f1_score"])
	assert.Equal(t, float64(2), body["n_features"])
	assert.Equal(t, []interface{}{"url_length", "has_ip_address"}, body["feature_names"])
}

func TestNewModelInfo_RuleFallback(t *testing.T) {
	info := NewModelInfo(scoring.Status{Mode: scoring.ModeRules, ModelConfigured: true, Degraded: true, Reason: "scorer fault"})

	assert.False(t, info.Loaded)
	assert.Equal(t, "rule-based", info.ModelName)
	assert.Nil(t, info.F1Score)
	assert.Empty(t, info.FeatureNames)
	assert.NotNil(t, info.FeatureNames)
	assert.Equal(t, "scorer fault", info.Reason)
}

func TestGetVersionHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/version", NewGetVersionHandler(logrus.New()).Handle)

	body := getJSON(t, app, "/version")
	assert.Equal(t, "TrustScan", body["app_name"])
	assert.Equal(t, version.Version, body["version"])
}
