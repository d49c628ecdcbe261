package model_test

import (
	"math"
	"os"
	"testing"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	domainModel "github.com/NeuralTrust/TrustScan/pkg/domain/model"
	"github.com/NeuralTrust/TrustScan/pkg/infra/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func assertAdditive(t *testing.T, pred *domainModel.Prediction) {
	t.Helper()
	sum := pred.Baseline
	for _, c := range pred.Contributions {
		sum += c
	}
	assert.InDelta(t, pred.Raw, sum, 1e-9)
}

func TestFileLoader_Linear(t *testing.T) {
	artifact, err := model.NewFileLoader(newLogger()).Load("testdata/linear.json")
	require.NoError(t, err)

	meta := artifact.Metadata()
	assert.Equal(t, "logistic_regression", meta.Name)
	assert.Equal(t, domainModel.KindLinear, meta.Kind)
	assert.Equal(t, 0.91, meta.Metrics.F1)

	pred, err := artifact.Predict([]float64{1, 0, 80})
	require.NoError(t, err)
	assertAdditive(t, pred)

	assert.InDelta(t, 2.0*(1-0.1)/0.3, pred.Contributions[0], 1e-9)
	assert.InDelta(t, -1.5*(0-0.6)/0.5, pred.Contributions[1], 1e-9)
	assert.InDelta(t, 1/(1+math.Exp(-pred.Raw)), pred.Probability, 1e-12)
	assert.Greater(t, pred.Probability, 0.9)
}

func TestFileLoader_Forest(t *testing.T) {
	artifact, err := model.NewFileLoader(newLogger()).Load("testdata/forest.json")
	require.NoError(t, err)

	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"ip without https", []float64{1, 0}, (0.9 + 0.8) / 2},
		{"domain with https", []float64{0, 1}, (0.2 + 0.1) / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := artifact.Predict(tt.x)
			require.NoError(t, err)
			assertAdditive(t, pred)
			assert.InDelta(t, tt.want, pred.Probability, 1e-9)
			assert.InDelta(t, (0.4+0.5)/2, pred.Baseline, 1e-9)
		})
	}
}

func TestParse_LogitEnsemble(t *testing.T) {
	artifact, err := model.Parse([]byte(`{
		"name": "xgboost", "kind": "tree_ensemble", "feature_names": ["url_length"],
		"params": {"base_score": -1, "trees": [{"nodes": [
			{"feature": 0, "threshold": 75, "left": 1, "right": 2, "value": 0.1},
			{"leaf": true, "value": -0.5},
			{"leaf": true, "value": 1.5}
		]}]}
	}`))
	require.NoError(t, err)

	pred, err := artifact.Predict([]float64{120})
	require.NoError(t, err)
	assertAdditive(t, pred)
	assert.InDelta(t, 0.5, pred.Raw, 1e-9)
	assert.InDelta(t, 1.4, pred.Contributions[0], 1e-9)
	assert.InDelta(t, 1/(1+math.Exp(-0.5)), pred.Probability, 1e-12)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"corrupt json", `{"name":`, domain.ErrModelUnavailable},
		{"missing name", `{"kind":"linear","feature_names":["url_length"]}`, domain.ErrIncompatibleArtifact},
		{"unknown feature", `{"name":"m","kind":"linear","feature_names":["page_rank"]}`, domain.ErrIncompatibleArtifact},
		{"duplicate feature", `{"name":"m","kind":"linear","feature_names":["url_length","url_length"]}`, domain.ErrIncompatibleArtifact},
		{"unknown kind", `{"name":"m","kind":"svm","feature_names":["url_length"]}`, domain.ErrIncompatibleArtifact},
		{"coefficient mismatch", `{"name":"m","kind":"linear","feature_names":["url_length"],"params":{"coefficients":[1,2]}}`, domain.ErrIncompatibleArtifact},
		{"unused param", `{"name":"m","kind":"linear","feature_names":["url_length"],"params":{"coefficients":[1],"bias":2}}`, domain.ErrIncompatibleArtifact},
		{"zero scale", `{"name":"m","kind":"linear","feature_names":["url_length"],"params":{"coefficients":[1],"scales":[0]}}`, domain.ErrIncompatibleArtifact},
		{"cyclic tree", `{"name":"m","kind":"tree_ensemble","feature_names":["url_length"],"params":{"trees":[{"nodes":[{"feature":0,"left":0,"right":0}]}]}}`, domain.ErrIncompatibleArtifact},
		{"no trees", `{"name":"m","kind":"tree_ensemble","feature_names":["url_length"],"params":{}}`, domain.ErrIncompatibleArtifact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.Parse([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFileLoader_MissingFile(t *testing.T) {
	_, err := model.NewFileLoader(newLogger()).Load("testdata/does-not-exist.json")
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPredict_InputLength(t *testing.T) {
	artifact, err := model.NewFileLoader(newLogger()).Load("testdata/linear.json")
	require.NoError(t, err)

	_, err = artifact.Predict([]float64{1})
	assert.Error(t, err)
}
