package scoring

import (
	"context"

	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
)

type Mode string

const (
	ModeModel Mode = "model"
	ModeRules Mode = "rules"
)

// Assessment is the raw scorer output before aggregation. Attributions is nil
// in rule mode; Rules is nil in model mode.
type Assessment struct {
	Mode         Mode
	Probability  float64
	Attributions []verdict.Attribution
	ModelName    string
	Rules        *rules.Outcome
}

//go:generate mockery --name=Scorer --dir=. --output=./mocks --filename=scorer_mock.go --case=underscore --with-expecter
type Scorer interface {
	Score(ctx context.Context, vec feature.Vector) (*Assessment, error)
}
