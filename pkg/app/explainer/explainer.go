package explainer

import (
	"math"
	"sort"

	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
)

const (
	DefaultTopN            = 5
	DefaultNoiseThreshold  = 0.01
	DefaultMaxExplanations = 6
)

type Config struct {
	TopN            int
	NoiseThreshold  float64
	MaxExplanations int
}

func (c Config) withDefaults() Config {
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.NoiseThreshold < 0 {
		c.NoiseThreshold = 0
	}
	if c.MaxExplanations <= 0 {
		c.MaxExplanations = DefaultMaxExplanations
	}
	return c
}

//go:generate mockery --name=Explainer --dir=. --output=./mocks --filename=explainer_mock.go --case=underscore --with-expecter
type Explainer interface {
	// Explain renders attributions, or the triggered rules when attributions is nil.
	Explain(attributions []verdict.Attribution, vec feature.Vector, label verdict.Label) []string
	// Describe returns the sentence for a single attribution.
	Describe(a verdict.Attribution) string
}

type explainer struct {
	cfg   Config
	rules *rules.Set
}

func NewExplainer(cfg Config, ruleSet *rules.Set) Explainer {
	if ruleSet == nil {
		ruleSet = rules.DefaultSet()
	}
	return &explainer{cfg: cfg.withDefaults(), rules: ruleSet}
}

func (e *explainer) Explain(attributions []verdict.Attribution, vec feature.Vector, label verdict.Label) []string {
	var sentences []string
	if attributions == nil {
		sentences = e.fromRules(vec)
	} else {
		sentences = e.fromAttributions(attributions, label)
	}
	return e.finish(sentences)
}

func (e *explainer) Describe(a verdict.Attribution) string {
	p, ok := templates[a.Name]
	if !ok {
		return a.Label
	}
	if a.Direction == verdict.TowardPhishing {
		return p.phishing
	}
	return p.legitimate
}

func (e *explainer) fromAttributions(attributions []verdict.Attribution, label verdict.Label) []string {
	significant := Significant(attributions, e.cfg.NoiseThreshold)
	SortByMagnitude(significant, label)
	if len(significant) > e.cfg.TopN {
		significant = significant[:e.cfg.TopN]
	}

	out := make([]string, 0, len(significant))
	for _, a := range significant {
		if _, ok := templates[a.Name]; !ok {
			continue
		}
		out = append(out, e.Describe(a))
	}
	return out
}

func (e *explainer) fromRules(vec feature.Vector) []string {
	hits := e.rules.Triggered(vec)
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.Rule.Message)
	}
	return out
}

func (e *explainer) finish(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	seen := make(map[string]struct{}, len(sentences))
	for _, s := range sentences {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == e.cfg.MaxExplanations {
			break
		}
	}
	return out
}

// Significant drops contributions below threshold and attributions of
// unobserved values. The input slice is not modified.
func Significant(attributions []verdict.Attribution, threshold float64) []verdict.Attribution {
	out := make([]verdict.Attribution, 0, len(attributions))
	for _, a := range attributions {
		if a.Value.IsUnknown() || a.Contribution == 0 || math.Abs(a.Contribution) < threshold {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SortByMagnitude orders attributions by absolute contribution, largest first.
// Ties put the direction agreeing with label first, then sort by name.
func SortByMagnitude(attributions []verdict.Attribution, label verdict.Label) {
	agrees := func(a verdict.Attribution) bool {
		return (a.Direction == verdict.TowardPhishing) == label.IsThreat()
	}
	sort.SliceStable(attributions, func(i, j int) bool {
		ai, aj := math.Abs(attributions[i].Contribution), math.Abs(attributions[j].Contribution)
		if ai != aj {
			return ai > aj
		}
		if agrees(attributions[i]) != agrees(attributions[j]) {
			return agrees(attributions[i])
		}
		return attributions[i].Name < attributions[j].Name
	})
}
