package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
)

const additivityTolerance = 1e-6

type modelScorer struct {
	artifact model.Artifact
}

func NewModelScorer(artifact model.Artifact) Scorer {
	return &modelScorer{artifact: artifact}
}

func (s *modelScorer) Score(_ context.Context, vec feature.Vector) (assessment *Assessment, err error) {
	if s.artifact == nil {
		return nil, domain.ErrModelUnavailable
	}
	meta := s.artifact.Metadata()

	x, err := vec.Floats(meta.FeatureNames)
	if err != nil {
		return nil, domain.NewScorerFault(meta.Name, err)
	}

	defer func() {
		if r := recover(); r != nil {
			assessment = nil
			err = domain.NewScorerFault(meta.Name, fmt.Errorf("panic recovered: %v", r))
		}
	}()

	pred, err := s.artifact.Predict(x)
	if err != nil {
		return nil, domain.NewScorerFault(meta.Name, err)
	}
	if err := checkPrediction(pred, len(x)); err != nil {
		return nil, domain.NewScorerFault(meta.Name, err)
	}

	attributions := make([]verdict.Attribution, len(x))
	for i, name := range meta.FeatureNames {
		c := pred.Contributions[i]
		attributions[i] = verdict.Attribution{
			Name:         name,
			Label:        feature.Label(name),
			Value:        vec.Value(name),
			Contribution: c,
			Direction:    verdict.DirectionOf(c),
		}
	}

	return &Assessment{
		Mode:         ModeModel,
		Probability:  pred.Probability,
		Attributions: attributions,
		ModelName:    meta.Name,
	}, nil
}

func checkPrediction(pred *model.Prediction, n int) error {
	if pred == nil {
		return errors.New("empty prediction")
	}
	if !finite(pred.Probability) || pred.Probability < 0 || pred.Probability > 1 {
		return fmt.Errorf("probability %v outside [0,1]", pred.Probability)
	}
	if len(pred.Contributions) != n {
		return fmt.Errorf("%d contributions for %d features", len(pred.Contributions), n)
	}
	sum := pred.Baseline
	for _, c := range pred.Contributions {
		if !finite(c) {
			return errors.New("non-finite contribution")
		}
		sum += c
	}
	if math.Abs(sum-pred.Raw) > additivityTolerance*math.Max(1, math.Abs(pred.Raw)) {
		return fmt.Errorf("attributions do not add up: baseline+sum=%v raw=%v", sum, pred.Raw)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
