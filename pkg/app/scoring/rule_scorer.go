package scoring

import (
	"context"

	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
)

type ruleScorer struct {
	set *rules.Set
}

func NewRuleScorer(set *rules.Set) Scorer {
	if set == nil {
		set = rules.DefaultSet()
	}
	return &ruleScorer{set: set}
}

func (s *ruleScorer) Score(_ context.Context, vec feature.Vector) (*Assessment, error) {
	outcome := s.set.Score(vec)
	return &Assessment{
		Mode:        ModeRules,
		Probability: float64(outcome.Risk) / 100,
		ModelName:   verdict.RuleBasedModel,
		Rules:       &outcome,
	}, nil
}
