package scan_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/NeuralTrust/TrustScan/pkg/app/aggregator"
	"github.com/NeuralTrust/TrustScan/pkg/app/explainer"
	"github.com/NeuralTrust/TrustScan/pkg/app/extractor"
	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment"
	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment/mocks"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newScanner(provider enrichment.Provider) scan.Scanner {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	ruleSet := rules.DefaultSet()
	exp := explainer.NewExplainer(explainer.Config{}, ruleSet)
	return scan.NewScanner(
		logger,
		scan.Config{},
		extractor.NewExtractor(),
		scoring.NewSelector(logger, ruleSet),
		exp,
		aggregator.NewAggregator(aggregator.Config{}, exp.Describe),
		provider,
	)
}

func TestScan_RuleFallbackScenarios(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantRisk  int
		wantLabel verdict.Label
		wantFirst string
	}{
		{
			name:      "brand lookalike on suspicious tld",
			url:       "http://paypal-secure-login.xyz/verify",
			wantRisk:  90,
			wantLabel: verdict.LabelPhishing,
			wantFirst: "No HTTPS: connection is not encrypted",
		},
		{
			name:      "ip literal login page",
			url:       "http://192.168.1.1/login",
			wantRisk:  90,
			wantLabel: verdict.LabelPhishing,
			wantFirst: "IP address used instead of domain name",
		},
		{
			name:      "plain https site",
			url:       "https://example.com/",
			wantRisk:  0,
			wantLabel: verdict.LabelLegitimate,
		},
	}

	s := newScanner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := s.Scan(context.Background(), tt.url, scan.Options{})
			require.NoError(t, err)

			assert.Equal(t, tt.wantRisk, v.RiskScore)
			assert.Equal(t, tt.wantLabel, v.Prediction)
			assert.Equal(t, verdict.RuleBasedModel, v.ModelUsed)
			assert.Equal(t, tt.url, v.URL)
			assert.NotNil(t, v.Explanations)
			assert.Empty(t, v.TopFeatures)
			if tt.wantFirst == "" {
				assert.Empty(t, v.Explanations)
			} else {
				require.NotEmpty(t, v.Explanations)
				assert.Equal(t, tt.wantFirst, v.Explanations[0])
			}
		})
	}
}

func TestScan_NormalizesInput(t *testing.T) {
	v, err := newScanner(nil).Scan(context.Background(), "  PayPal-Secure-Login.XYZ/verify ", scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://paypal-secure-login.xyz/verify", v.NormalizedURL)
	assert.Equal(t, 90, v.RiskScore)
}

func TestScan_Deterministic(t *testing.T) {
	s := newScanner(nil)
	first, err := s.Scan(context.Background(), "http://secure.paypal.com.account-update.tk/login?id=1", scan.Options{})
	require.NoError(t, err)
	second, err := s.Scan(context.Background(), "http://secure.paypal.com.account-update.tk/login?id=1", scan.Options{})
	require.NoError(t, err)

	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.Explanations, second.Explanations)
	assert.Equal(t, first.Features, second.Features)
}

func TestScan_InvalidInput(t *testing.T) {
	s := newScanner(nil)
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "whitespace", url: "   \t"},
		{name: "too long", url: "http://example.com/" + strings.Repeat("a", 2000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := s.Scan(context.Background(), tt.url, scan.Options{})
			assert.Nil(t, v)
			require.Error(t, err)
			assert.True(t, domain.IsInputError(err))
		})
	}
}

func TestScan_Malformed(t *testing.T) {
	s := newScanner(nil)

	v, err := s.Scan(context.Background(), "http://", scan.Options{})
	require.NoError(t, err)
	assert.Equal(t, 50, v.RiskScore)
	assert.Equal(t, verdict.LabelSuspicious, v.Prediction)
	assert.Equal(t, []string{"URL could not be parsed"}, v.Explanations)

	_, err = s.Scan(context.Background(), "http://", scan.Options{Strict: true})
	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))
}

func TestScan_WithEnrichment(t *testing.T) {
	provider := new(mocks.Provider)
	age, cert := 3, true
	provider.On("Lookup", mock.Anything, "example.com").
		Return(&enrichment.Result{DomainAgeDays: &age, HasCertificate: &cert}, nil).Once()

	v, err := newScanner(provider).Scan(context.Background(), "https://www.example.com/a", scan.Options{IncludeDomain: true})
	require.NoError(t, err)

	assert.Equal(t, 25, v.RiskScore)
	assert.Equal(t, []string{"Domain was registered very recently"}, v.Explanations)
	provider.AssertExpectations(t)
}

func TestScan_EnrichmentFailureIsNotFatal(t *testing.T) {
	provider := new(mocks.Provider)
	provider.On("Lookup", mock.Anything, "example.com").
		Return(nil, errors.Join(domain.ErrEnrichmentUnavailable, context.DeadlineExceeded))

	report, err := newScanner(provider).Features(context.Background(), "https://example.com", scan.Options{IncludeDomain: true})
	require.NoError(t, err)

	assert.True(t, report.Features.Bool(feature.EnrichmentSkipped))
	assert.True(t, report.Features.Value(feature.DomainAgeDays).IsUnknown())
	provider.AssertExpectations(t)
}

func TestScan_EnrichmentSkippedForIPHosts(t *testing.T) {
	provider := new(mocks.Provider)

	_, err := newScanner(provider).Scan(context.Background(), "http://10.0.0.1/", scan.Options{IncludeDomain: true})
	require.NoError(t, err)
	provider.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestFeatures(t *testing.T) {
	report, err := newScanner(nil).Features(context.Background(), "http://192.168.1.1/login", scan.Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://192.168.1.1/login", report.NormalizedURL)
	assert.Equal(t, feature.Len(), report.Features.Len())
	assert.True(t, report.Features.Bool(feature.HasIPAddress))
	assert.True(t, report.Features.Bool(feature.EnrichmentSkipped))

	_, err = newScanner(nil).Features(context.Background(), "", scan.Options{})
	assert.True(t, domain.IsInputError(err))
}
