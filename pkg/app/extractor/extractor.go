package extractor

import (
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
)

//go:generate mockery --name=Extractor --dir=. --output=./mocks --filename=extractor_mock.go --case=underscore --with-expecter
type Extractor interface {
	// Extract never fails: unparsable input yields catalog defaults with is_malformed set.
	Extract(rawURL string, enr *enrichment.Result) feature.Vector
}

type extractor struct{}

func NewExtractor() Extractor {
	return &extractor{}
}

type parsedURL struct {
	normalized string
	scheme     string
	rest       string
	host       hostParts
	path       string
	query      string
	userinfo   bool
}

// Normalize trims the input, adds a missing http scheme and lower-cases scheme and host.
// It does not percent-decode.
func Normalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "http://" + s
	}
	sep := strings.Index(s, "://")
	scheme, rest := strings.ToLower(s[:sep]), s[sep+3:]

	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	authority := rest[:end]
	at := strings.LastIndexByte(authority, '@')
	authority = authority[:at+1] + strings.ToLower(authority[at+1:])

	return scheme + "://" + authority + rest[end:]
}

// EnrichmentTarget returns the registrable domain worth a WHOIS/TLS lookup.
func EnrichmentTarget(rawURL string) (string, bool) {
	p, ok := parse(rawURL)
	if !ok || p.host.isIP || p.host.registrable == "" {
		return "", false
	}
	return p.host.registrable, true
}

func parse(rawURL string) (*parsedURL, bool) {
	normalized := Normalize(rawURL)
	if normalized == "" {
		return nil, false
	}
	u, err := url.Parse(normalized)
	if err != nil || u.Hostname() == "" {
		return nil, false
	}
	host, ok := splitHost(strings.ToLower(u.Hostname()))
	if !ok {
		return nil, false
	}
	sep := strings.Index(normalized, "://")
	return &parsedURL{
		normalized: normalized,
		scheme:     u.Scheme,
		rest:       normalized[sep+3:],
		host:       host,
		path:       u.EscapedPath(),
		query:      u.RawQuery,
		userinfo:   u.User != nil,
	}, true
}

func (e *extractor) Extract(rawURL string, enr *enrichment.Result) feature.Vector {
	b := feature.NewBuilder()
	applyEnrichment(b, enr)

	p, ok := parse(rawURL)
	if !ok {
		b.Set(feature.IsMalformed, feature.Bool(true))
		return b.Build()
	}

	lexical(b, p)
	security(b, p)
	return b.Build()
}

func lexical(b *feature.Builder, p *parsedURL) {
	u := p.normalized
	length := utf8.RuneCountInString(u)
	digits := 0
	for _, r := range u {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	ratio := 0.0
	if length > 0 {
		ratio = round4(float64(digits) / float64(length))
	}
	domainLength := 0
	if !p.host.isIP {
		domainLength = utf8.RuneCountInString(p.host.label)
	}

	b.Set(feature.URLLength, feature.Int(length)).
		Set(feature.DomainLength, feature.Int(domainLength)).
		Set(feature.PathLength, feature.Int(len(p.path))).
		Set(feature.DotCount, feature.Int(strings.Count(u, "."))).
		Set(feature.HyphenCount, feature.Int(strings.Count(u, "-"))).
		Set(feature.AtCount, feature.Int(strings.Count(u, "@"))).
		Set(feature.QuestionMarkCount, feature.Int(strings.Count(u, "?"))).
		Set(feature.AndCount, feature.Int(strings.Count(u, "&"))).
		Set(feature.EqualCount, feature.Int(strings.Count(u, "="))).
		Set(feature.UnderscoreCount, feature.Int(strings.Count(u, "_"))).
		Set(feature.SlashCount, feature.Int(strings.Count(u, "/"))).
		Set(feature.DoubleSlashCount, feature.Int(strings.Count(p.rest, "//"))).
		Set(feature.PercentCount, feature.Int(strings.Count(u, "%"))).
		Set(feature.DigitCount, feature.Int(digits)).
		Set(feature.DigitRatio, feature.Number(ratio)).
		Set(feature.HostnameEntropy, feature.Number(round4(entropy(p.host.host)))).
		Set(feature.HostnameDotCount, feature.Int(strings.Count(p.host.host, "."))).
		Set(feature.SubdomainCount, feature.Int(p.host.subdomainCount())).
		Set(feature.HasIPAddress, feature.Bool(p.host.isIP)).
		Set(feature.HasPunycode, feature.Bool(p.host.unicode || p.host.punycode))
}

func security(b *feature.Builder, p *parsedURL) {
	path := strings.ToLower(unescape(p.path))
	target := path
	if p.query != "" {
		target += "?" + strings.ToLower(unescape(p.query))
	}

	keywords := 0
	for _, kw := range suspiciousKeywords {
		if strings.Contains(target, kw) {
			keywords++
		}
	}

	var inSubdomain, inDomain, inPath bool
	for _, brand := range brandNames {
		if p.host.subdomain != "" && strings.Contains(p.host.subdomain, brand) {
			inSubdomain = true
		}
		if !p.host.isIP && p.host.label != brand && strings.Contains(p.host.label, brand) {
			inDomain = true
		}
		if strings.Contains(path, brand) {
			inPath = true
		}
	}

	shortened := !p.host.isIP && (Shortener(p.host.registrable) || Shortener(p.host.ascii))

	b.Set(feature.HasHTTPS, feature.Bool(p.scheme == "https")).
		Set(feature.HasAtSymbol, feature.Bool(p.userinfo)).
		Set(feature.HasDoubleSlashRedirect, feature.Bool(strings.Contains(p.path, "//"))).
		Set(feature.HasHyphenInDomain, feature.Bool(!p.host.isIP && strings.Contains(p.host.label, "-"))).
		Set(feature.IsURLShortened, feature.Bool(shortened)).
		Set(feature.IsSuspiciousTLD, feature.Bool(SuspiciousTLD(p.host.tld()))).
		Set(feature.SuspiciousKeywordCount, feature.Int(keywords)).
		Set(feature.HasSuspiciousKeyword, feature.Bool(keywords > 0)).
		Set(feature.BrandInSubdomain, feature.Bool(inSubdomain)).
		Set(feature.BrandInDomain, feature.Bool(inDomain)).
		Set(feature.BrandInPath, feature.Bool(inPath))
}

func applyEnrichment(b *feature.Builder, enr *enrichment.Result) {
	if enr.Empty() {
		b.Set(feature.EnrichmentSkipped, feature.Bool(true))
		return
	}
	b.Set(feature.DomainAgeDays, intValue(enr.DomainAgeDays)).
		Set(feature.DomainExpiryDays, intValue(enr.DomainExpiryDays)).
		Set(feature.HasSSLCertificate, boolValue(enr.HasCertificate)).
		Set(feature.SSLAgeDays, intValue(enr.CertAgeDays)).
		Set(feature.RegistrarKnown, boolValue(enr.RegistrarKnown)).
		Set(feature.DomainRegistered, boolValue(enr.Registered)).
		Set(feature.EnrichmentSkipped, feature.Bool(false))
}

func intValue(v *int) feature.Value {
	if v == nil {
		return feature.Unknown()
	}
	return feature.Int(*v)
}

func boolValue(v *bool) feature.Value {
	if v == nil {
		return feature.Unknown()
	}
	return feature.Bool(*v)
}

func unescape(s string) string {
	if out, err := url.QueryUnescape(s); err == nil {
		return out
	}
	return s
}

// entropy is the Shannon entropy in bits per rune.
func entropy(s string) float64 {
	if s == "" {
		return 0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
