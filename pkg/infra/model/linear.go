package model

import (
	"fmt"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
)

type linearParams struct {
	Intercept    float64   `mapstructure:"intercept"`
	Coefficients []float64 `mapstructure:"coefficients"`
	Means        []float64 `mapstructure:"means"`
	Scales       []float64 `mapstructure:"scales"`
}

// linear is a standardised logistic regression. Its attributions are exact
// Shapley values relative to the training means.
type linear struct {
	meta   model.Metadata
	params linearParams
}

func newLinear(meta model.Metadata, raw map[string]interface{}) (model.Artifact, error) {
	var p linearParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	n := len(meta.FeatureNames)
	if len(p.Coefficients) != n {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", domain.ErrIncompatibleArtifact, len(p.Coefficients), n)
	}
	if p.Means == nil {
		p.Means = make([]float64, n)
	}
	if p.Scales == nil {
		p.Scales = make([]float64, n)
		for i := range p.Scales {
			p.Scales[i] = 1
		}
	}
	if len(p.Means) != n || len(p.Scales) != n {
		return nil, fmt.Errorf("%w: means and scales must match the feature count", domain.ErrIncompatibleArtifact)
	}
	for i, s := range p.Scales {
		if s == 0 {
			return nil, fmt.Errorf("%w: zero scale for feature %q", domain.ErrIncompatibleArtifact, meta.FeatureNames[i])
		}
	}
	return &linear{meta: meta, params: p}, nil
}

func (m *linear) Metadata() model.Metadata {
	return m.meta
}

func (m *linear) Predict(x []float64) (*model.Prediction, error) {
	if len(x) != len(m.params.Coefficients) {
		return nil, fmt.Errorf("expected %d inputs, got %d", len(m.params.Coefficients), len(x))
	}
	contributions := make([]float64, len(x))
	z := m.params.Intercept
	for i, v := range x {
		c := m.params.Coefficients[i] * (v - m.params.Means[i]) / m.params.Scales[i]
		contributions[i] = c
		z += c
	}
	return &model.Prediction{
		Raw:           z,
		Baseline:      m.params.Intercept,
		Contributions: contributions,
		Probability:   sigmoid(z),
	}, nil
}
