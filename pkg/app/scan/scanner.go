package scan

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NeuralTrust/TrustScan/pkg/app/aggregator"
	"github.com/NeuralTrust/TrustScan/pkg/app/explainer"
	"github.com/NeuralTrust/TrustScan/pkg/app/extractor"
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/NeuralTrust/TrustScan/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxURLLength      = 2000
	DefaultEnrichmentTimeout = 5 * time.Second
)

type Config struct {
	MaxURLLength      int
	EnrichmentTimeout time.Duration
}

// Options are per request.
type Options struct {
	// IncludeDomain asks for WHOIS and TLS facts. Ignored without a provider.
	IncludeDomain bool
	// Strict rejects malformed URLs instead of scoring them.
	Strict bool
}

// FeatureReport is the extracted vector without any scoring.
type FeatureReport struct {
	URL           string         `json:"url"`
	NormalizedURL string         `json:"normalized_url"`
	Features      feature.Vector `json:"features"`
}

//go:generate mockery --name=Scanner --dir=. --output=./mocks --filename=scanner_mock.go --case=underscore --with-expecter
type Scanner interface {
	Scan(ctx context.Context, rawURL string, opts Options) (*verdict.Verdict, error)
	Features(ctx context.Context, rawURL string, opts Options) (*FeatureReport, error)
}

type scanner struct {
	logger     *logrus.Logger
	cfg        Config
	extractor  extractor.Extractor
	selector   scoring.Selector
	explainer  explainer.Explainer
	aggregator aggregator.Aggregator
	provider   enrichment.Provider
}

// NewScanner wires the single URL pipeline. provider may be nil.
func NewScanner(
	logger *logrus.Logger,
	cfg Config,
	extractor extractor.Extractor,
	selector scoring.Selector,
	explainer explainer.Explainer,
	aggregator aggregator.Aggregator,
	provider enrichment.Provider,
) Scanner {
	if cfg.MaxURLLength <= 0 {
		cfg.MaxURLLength = DefaultMaxURLLength
	}
	if cfg.EnrichmentTimeout <= 0 {
		cfg.EnrichmentTimeout = DefaultEnrichmentTimeout
	}
	return &scanner{
		logger:     logger,
		cfg:        cfg,
		extractor:  extractor,
		selector:   selector,
		explainer:  explainer,
		aggregator: aggregator,
		provider:   provider,
	}
}

func (s *scanner) Scan(ctx context.Context, rawURL string, opts Options) (*verdict.Verdict, error) {
	started := time.Now()

	normalized, vec, err := s.prepare(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	assessment, err := s.selector.Score(ctx, vec)
	if err != nil {
		return nil, err
	}

	risk := s.aggregator.RiskScore(assessment)
	label := verdict.LabelFor(risk)
	explanations := s.explainer.Explain(assessment.Attributions, vec, label)

	elapsed := time.Since(started)
	v := s.aggregator.Aggregate(aggregator.Input{
		URL:           rawURL,
		NormalizedURL: normalized,
		Assessment:    assessment,
		Explanations:  explanations,
		Vector:        vec,
		StartedAt:     started,
		Elapsed:       elapsed,
	})

	prometheus.ScansTotal.WithLabelValues(string(v.Prediction), string(assessment.Mode)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.ScanLatency.WithLabelValues(string(assessment.Mode)).Observe(float64(elapsed.Milliseconds()))
	}
	s.logger.WithFields(logrus.Fields{
		"url":        normalized,
		"prediction": v.Prediction,
		"risk_score": v.RiskScore,
		"model":      v.ModelUsed,
	}).Debug("url scanned")
	return v, nil
}

func (s *scanner) Features(ctx context.Context, rawURL string, opts Options) (*FeatureReport, error) {
	normalized, vec, err := s.prepare(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}
	return &FeatureReport{URL: rawURL, NormalizedURL: normalized, Features: vec}, nil
}

func (s *scanner) prepare(ctx context.Context, rawURL string, opts Options) (string, feature.Vector, error) {
	if err := s.validate(rawURL); err != nil {
		return "", feature.Vector{}, err
	}
	normalized := extractor.Normalize(rawURL)
	vec := s.extractor.Extract(normalized, s.enrich(ctx, normalized, opts))
	if opts.Strict && vec.Bool(feature.IsMalformed) {
		prometheus.ScanErrorsTotal.WithLabelValues("malformed").Inc()
		return "", feature.Vector{}, domain.NewInputError(rawURL, "url could not be parsed")
	}
	return normalized, vec, nil
}

func (s *scanner) validate(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		prometheus.ScanErrorsTotal.WithLabelValues("empty").Inc()
		return domain.NewInputError("", "url is required")
	}
	if utf8.RuneCountInString(trimmed) > s.cfg.MaxURLLength {
		prometheus.ScanErrorsTotal.WithLabelValues("too_long").Inc()
		return domain.NewInputError("", "url exceeds the maximum length")
	}
	return nil
}

// enrich never fails the scan: any problem leaves the enrichment features unknown.
func (s *scanner) enrich(ctx context.Context, normalized string, opts Options) *enrichment.Result {
	if !opts.IncludeDomain || s.provider == nil {
		return nil
	}
	target, ok := extractor.EnrichmentTarget(normalized)
	if !ok {
		prometheus.EnrichmentTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.EnrichmentTimeout)
	defer cancel()
	res, err := s.provider.Lookup(ctx, target)
	if err != nil {
		s.logger.WithError(err).WithField("domain", target).Debug("domain enrichment unavailable")
		return nil
	}
	return res
}
