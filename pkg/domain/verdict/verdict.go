package verdict

import (
	"time"

	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
)

type Label string

const (
	LabelLegitimate Label = "legitimate"
	LabelSuspicious Label = "suspicious"
	LabelPhishing   Label = "phishing"
)

const (
	PhishingThreshold   = 70
	SuspiciousThreshold = 40
)

// LabelFor maps a risk score in [0,100] to its label.
func LabelFor(risk int) Label {
	switch {
	case risk >= PhishingThreshold:
		return LabelPhishing
	case risk >= SuspiciousThreshold:
		return LabelSuspicious
	default:
		return LabelLegitimate
	}
}

func (l Label) Valid() bool {
	return l == LabelLegitimate || l == LabelSuspicious || l == LabelPhishing
}

// IsThreat reports whether the label counts towards a batch threat count.
func (l Label) IsThreat() bool {
	return l == LabelPhishing || l == LabelSuspicious
}

type Direction string

const (
	TowardPhishing   Direction = "phishing"
	TowardLegitimate Direction = "legitimate"
)

func DirectionOf(contribution float64) Direction {
	if contribution > 0 {
		return TowardPhishing
	}
	return TowardLegitimate
}

// Attribution is the signed contribution of one feature to a model score.
type Attribution struct {
	Name         string        `json:"name"`
	Label        string        `json:"label"`
	Value        feature.Value `json:"value"`
	Contribution float64       `json:"shap_value"`
	Direction    Direction     `json:"direction"`
	Description  string        `json:"description"`
}

const RuleBasedModel = "rule-based"

type Verdict struct {
	URL                 string                `json:"url"`
	NormalizedURL       string                `json:"normalized_url"`
	Prediction          Label                 `json:"prediction"`
	PhishingProbability float64               `json:"phishing_probability"`
	Confidence          float64               `json:"confidence"`
	RiskScore           int                   `json:"risk_score"`
	RiskLevel           Label                 `json:"risk_level"`
	Explanations        []string              `json:"explanations"`
	TopFeatures         []Attribution         `json:"top_features"`
	Features            feature.OrderedValues `json:"features"`
	ModelUsed           string                `json:"model_used"`
	LatencyMs           float64               `json:"latency_ms"`
	Timestamp           time.Time             `json:"timestamp"`
}
