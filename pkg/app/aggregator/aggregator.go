package aggregator

import (
	"math"
	"time"

	"github.com/NeuralTrust/TrustScan/pkg/app/explainer"
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
)

const DefaultTopFeatures = 5

// uiFeatures is the subset of the vector rendered by clients next to a verdict.
var uiFeatures = []string{
	feature.HasHTTPS,
	feature.HasIPAddress,
	feature.HasAtSymbol,
	feature.IsURLShortened,
	feature.IsSuspiciousTLD,
	feature.HasSuspiciousKeyword,
	feature.BrandInSubdomain,
	feature.BrandInDomain,
	feature.HasPunycode,
	feature.SubdomainCount,
	feature.URLLength,
	feature.HostnameEntropy,
	feature.IsMalformed,
	feature.DomainAgeDays,
	feature.HasSSLCertificate,
	feature.EnrichmentSkipped,
}

type Config struct {
	TopFeatures    int
	NoiseThreshold float64
}

type Input struct {
	URL           string
	NormalizedURL string
	Assessment    *scoring.Assessment
	Explanations  []string
	Vector        feature.Vector
	StartedAt     time.Time
	Elapsed       time.Duration
}

//go:generate mockery --name=Aggregator --dir=. --output=./mocks --filename=aggregator_mock.go --case=underscore --with-expecter
type Aggregator interface {
	RiskScore(a *scoring.Assessment) int
	Aggregate(in Input) *verdict.Verdict
}

type aggregator struct {
	cfg      Config
	describe func(verdict.Attribution) string
}

func NewAggregator(cfg Config, describe func(verdict.Attribution) string) Aggregator {
	if cfg.TopFeatures <= 0 {
		cfg.TopFeatures = DefaultTopFeatures
	}
	if cfg.NoiseThreshold < 0 {
		cfg.NoiseThreshold = 0
	}
	return &aggregator{cfg: cfg, describe: describe}
}

// RiskScore is round(p*100) for model scores and the capped rule weight sum otherwise.
func (g *aggregator) RiskScore(a *scoring.Assessment) int {
	if a == nil {
		return 0
	}
	if a.Mode == scoring.ModeRules && a.Rules != nil {
		return clampInt(a.Rules.Risk)
	}
	return clampInt(int(math.Round(a.Probability * 100)))
}

func (g *aggregator) Aggregate(in Input) *verdict.Verdict {
	risk := g.RiskScore(in.Assessment)
	label := verdict.LabelFor(risk)

	modelName := verdict.RuleBasedModel
	var probability float64
	var attributions []verdict.Attribution
	if in.Assessment != nil {
		if in.Assessment.ModelName != "" {
			modelName = in.Assessment.ModelName
		}
		probability = clamp(in.Assessment.Probability, 0, 1)
		attributions = in.Assessment.Attributions
	}

	explanations := in.Explanations
	if explanations == nil {
		explanations = []string{}
	}

	return &verdict.Verdict{
		URL:                 in.URL,
		NormalizedURL:       in.NormalizedURL,
		Prediction:          label,
		PhishingProbability: round(probability, 4),
		Confidence:          g.confidence(in.Assessment, label),
		RiskScore:           risk,
		RiskLevel:           label,
		Explanations:        explanations,
		TopFeatures:         g.topFeatures(attributions, label),
		Features:            in.Vector.Subset(uiFeatures...),
		ModelUsed:           modelName,
		LatencyMs:           round(float64(in.Elapsed.Microseconds())/1000, 2),
		Timestamp:           in.StartedAt.UTC(),
	}
}

// confidence is the distance from the decision midpoint in model mode. In rule
// mode r, the share of evaluated rules that are triggered high-weight rules,
// moves it from 50 toward 100 in the direction of the label.
func (g *aggregator) confidence(a *scoring.Assessment, label verdict.Label) float64 {
	if a == nil {
		return 50
	}
	if a.Mode == scoring.ModeRules && a.Rules != nil {
		if a.Rules.Evaluated == 0 {
			return 50
		}
		r := clamp(float64(a.Rules.HighTriggered)/float64(a.Rules.Evaluated), 0, 1)
		if !label.IsThreat() {
			r = 1 - r
		}
		return clamp(round(50+50*r, 1), 0, 100)
	}
	p := clamp(a.Probability, 0, 1)
	return clamp(round(math.Max(p, 1-p)*100, 1), 0, 100)
}

func (g *aggregator) topFeatures(attributions []verdict.Attribution, label verdict.Label) []verdict.Attribution {
	if len(attributions) == 0 {
		return []verdict.Attribution{}
	}
	sorted := explainer.Significant(attributions, g.cfg.NoiseThreshold)
	explainer.SortByMagnitude(sorted, label)
	if len(sorted) > g.cfg.TopFeatures {
		sorted = sorted[:g.cfg.TopFeatures]
	}
	for i := range sorted {
		sorted[i].Contribution = round(sorted[i].Contribution, 4)
		if g.describe != nil {
			sorted[i].Description = g.describe(sorted[i])
		}
	}
	return sorted
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
