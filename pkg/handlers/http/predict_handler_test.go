package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	scanMocks "github.com/NeuralTrust/TrustScan/pkg/app/scan/mocks"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPredictApp(t *testing.T, scanner *scanMocks.Scanner) *fiber.App {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	app := fiber.New()
	app.Post("/api/v1/predict", NewPredictHandler(logger, scanner, 2000).Handle)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestPredictHandler_Success(t *testing.T) {
	scanner := scanMocks.NewScanner(t)
	scanner.On("Scan", mock.Anything, "http://paypal-secure-login.xyz/verify", scan.Options{IncludeDomain: true}).
		Return(&verdict.Verdict{
			URL:          "http://paypal-secure-login.xyz/verify",
			Prediction:   verdict.LabelPhishing,
			RiskLevel:    verdict.LabelPhishing,
			RiskScore:    90,
			Confidence:   90,
			Explanations: []string{"Uses a TLD commonly abused for phishing"},
			ModelUsed:    verdict.RuleBasedModel,
		}, nil).Once()

	status, body := postJSON(t, newPredictApp(t, scanner), "/api/v1/predict", map[string]interface{}{
		"url":                     "http://paypal-secure-login.xyz/verify",
		"include_domain_features": true,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "phishing", body["prediction"])
	assert.Equal(t, float64(90), body["risk_score"])
	assert.Equal(t, "rule-based", body["model_used"])
}

func TestPredictHandler_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{name: "invalid json", body: `{"url":`, status: fiber.StatusBadRequest},
		{name: "missing url", body: map[string]string{}, status: fiber.StatusUnprocessableEntity},
		{name: "blank url", body: map[string]string{"url": "   "}, status: fiber.StatusUnprocessableEntity},
		{name: "too long", body: map[string]string{"url": "http://a.com/" + strings.Repeat("a", 2000)}, status: fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := scanMocks.NewScanner(t)
			status, body := postJSON(t, newPredictApp(t, scanner), "/api/v1/predict", tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPredictHandler_ScannerErrors(t *testing.T) {
	t.Run("input error maps to 422", func(t *testing.T) {
		scanner := scanMocks.NewScanner(t)
		scanner.On("Scan", mock.Anything, "http://", mock.Anything).
			Return(nil, domain.NewInputError("http://", "url could not be parsed")).Once()

		status, body := postJSON(t, newPredictApp(t, scanner), "/api/v1/predict", map[string]string{"url": "http://"})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Contains(t, body["error"], "could not be parsed")
	})

	t.Run("unexpected error maps to 500", func(t *testing.T) {
		scanner := scanMocks.NewScanner(t)
		scanner.On("Scan", mock.Anything, "example.com", mock.Anything).
			Return(nil, errors.New("boom")).Once()

		status, body := postJSON(t, newPredictApp(t, scanner), "/api/v1/predict", map[string]string{"url": "example.com"})
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "internal error while scanning url", body["error"])
	})
}
