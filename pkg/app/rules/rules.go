package rules

import (
	"fmt"
	"math"
	"sort"

	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
)

const (
	IPLiteralHost        = "ip_literal_host"
	MissingHTTPS         = "missing_https"
	SuspiciousTLD        = "suspicious_tld"
	BrandImpersonation   = "brand_impersonation"
	LookalikeDomain      = "lookalike_domain"
	ShortenedURL         = "shortened_url"
	ExcessiveSubdomains  = "excessive_subdomains"
	SuspiciousKeyword    = "suspicious_keyword"
	LongURL              = "long_url"
	AtSymbol             = "at_symbol"
	Punycode             = "punycode"
	DoubleSlashRedirect  = "double_slash_redirect"
	NewDomain            = "new_domain"
	NoSSLCertificate     = "no_ssl_certificate"
	PercentObfuscation   = "percent_obfuscation"
	MalformedURL         = "malformed_url"
	DefaultHighWeightCut = 25.0
)

const (
	longURLThreshold     = 75
	subdomainThreshold   = 2
	newDomainMaxAgeDays  = 30
	percentEncodingLimit = 3
)

// check reports whether the rule fired and whether its inputs were observable.
type check func(vec feature.Vector) (triggered, evaluated bool)

type Rule struct {
	Name    string
	Weight  float64
	Message string
	check   check
}

type Hit struct {
	Rule      Rule
	Triggered bool
	Evaluated bool
}

func flag(name string) check {
	return func(vec feature.Vector) (bool, bool) {
		return vec.Bool(name), true
	}
}

func above(name string, limit float64) check {
	return func(vec feature.Vector) (bool, bool) {
		return vec.Float(name) > limit, true
	}
}

// catalog is ordered by severity; explanations follow this order.
var catalog = []Rule{
	{IPLiteralHost, 45, "IP address used instead of domain name", flag(feature.HasIPAddress)},
	{MissingHTTPS, 25, "No HTTPS: connection is not encrypted", func(vec feature.Vector) (bool, bool) {
		return !vec.Bool(feature.HasHTTPS), true
	}},
	{SuspiciousTLD, 25, "Suspicious top-level domain (TLD) detected", flag(feature.IsSuspiciousTLD)},
	{BrandImpersonation, 35, "Brand name impersonation detected in subdomain", flag(feature.BrandInSubdomain)},
	{LookalikeDomain, 20, "Brand name embedded in an unrelated domain", flag(feature.BrandInDomain)},
	{ShortenedURL, 20, "URL shortener detected: it hides the true destination", flag(feature.IsURLShortened)},
	{ExcessiveSubdomains, 15, "Excessive number of subdomains", above(feature.SubdomainCount, subdomainThreshold)},
	{SuspiciousKeyword, 20, "Phishing keyword detected in URL (e.g. login, verify, account)", flag(feature.HasSuspiciousKeyword)},
	{LongURL, 10, "URL is unusually long", above(feature.URLLength, longURLThreshold)},
	{AtSymbol, 30, "'@' symbol in URL: the browser ignores everything before it", flag(feature.HasAtSymbol)},
	{Punycode, 30, "Internationalised (punycode) domain that may imitate a known site", flag(feature.HasPunycode)},
	{DoubleSlashRedirect, 15, "Double-slash redirect found in URL path", flag(feature.HasDoubleSlashRedirect)},
	{NewDomain, 25, "Domain was registered very recently", func(vec feature.Vector) (bool, bool) {
		age := vec.Value(feature.DomainAgeDays)
		if age.IsUnknown() {
			return false, false
		}
		return age.Float() >= 0 && age.Float() <= newDomainMaxAgeDays, true
	}},
	{NoSSLCertificate, 10, "No valid SSL certificate found", func(vec feature.Vector) (bool, bool) {
		cert := vec.Value(feature.HasSSLCertificate)
		if cert.IsUnknown() {
			return false, false
		}
		return !cert.Bool(), true
	}},
	{PercentObfuscation, 10, "Heavy URL encoding may hide the real address", above(feature.PercentCount, percentEncodingLimit)},
	{MalformedURL, 50, "URL could not be parsed", flag(feature.IsMalformed)},
}

// Names returns every rule name in severity order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, r := range catalog {
		out[i] = r.Name
	}
	return out
}

// DefaultWeights returns a copy of the built-in weights.
func DefaultWeights() map[string]float64 {
	out := make(map[string]float64, len(catalog))
	for _, r := range catalog {
		out[r.Name] = r.Weight
	}
	return out
}

type Set struct {
	rules      []Rule
	highWeight float64
}

// NewSet overrides the default weights with the given ones. Names outside the
// catalog and negative weights are rejected.
func NewSet(weights map[string]float64, highWeightCutoff float64) (*Set, error) {
	known := DefaultWeights()
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w := weights[name]
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("rule %q: weight must be a non-negative number", name)
		}
	}
	if highWeightCutoff <= 0 {
		highWeightCutoff = DefaultHighWeightCut
	}

	rules := make([]Rule, len(catalog))
	copy(rules, catalog)
	for i := range rules {
		if w, ok := weights[rules[i].Name]; ok {
			rules[i].Weight = w
		}
	}
	return &Set{rules: rules, highWeight: highWeightCutoff}, nil
}

func DefaultSet() *Set {
	set, _ := NewSet(nil, DefaultHighWeightCut) //nolint:errcheck
	return set
}

func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Evaluate runs every rule in severity order. A malformed vector only evaluates
// the malformed rule.
func (s *Set) Evaluate(vec feature.Vector) []Hit {
	malformed := vec.Bool(feature.IsMalformed)
	hits := make([]Hit, 0, len(s.rules))
	for _, r := range s.rules {
		if malformed && r.Name != MalformedURL {
			hits = append(hits, Hit{Rule: r})
			continue
		}
		triggered, evaluated := r.check(vec)
		hits = append(hits, Hit{Rule: r, Triggered: triggered && evaluated, Evaluated: evaluated})
	}
	return hits
}

// Triggered returns only the rules that fired, in severity order.
func (s *Set) Triggered(vec feature.Vector) []Hit {
	var out []Hit
	for _, h := range s.Evaluate(vec) {
		if h.Triggered {
			out = append(out, h)
		}
	}
	return out
}

type Outcome struct {
	Risk          int
	Hits          []Hit
	Evaluated     int
	HighEvaluated int
	HighTriggered int
}

// Score sums the weights of triggered rules, capped at 100.
func (s *Set) Score(vec feature.Vector) Outcome {
	hits := s.Evaluate(vec)
	out := Outcome{Hits: hits}
	var sum float64
	for _, h := range hits {
		if h.Triggered {
			sum += h.Rule.Weight
		}
		if h.Evaluated {
			out.Evaluated++
		}
		if h.Evaluated && h.Rule.Weight >= s.highWeight {
			out.HighEvaluated++
			if h.Triggered {
				out.HighTriggered++
			}
		}
	}
	out.Risk = int(math.Round(math.Min(100, math.Max(0, sum))))
	return out
}
