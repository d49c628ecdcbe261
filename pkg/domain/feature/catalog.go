package feature

import "strings"

// Lexical features.
const (
	URLLength         = "url_length"
	DomainLength      = "domain_length"
	PathLength        = "path_length"
	DotCount          = "dot_count"
	HyphenCount       = "hyphen_count"
	AtCount           = "at_count"
	QuestionMarkCount = "question_mark_count"
	AndCount          = "and_count"
	EqualCount        = "equal_count"
	UnderscoreCount   = "underscore_count"
	SlashCount        = "slash_count"
	DoubleSlashCount  = "double_slash_count"
	PercentCount      = "percent_count"
	DigitCount        = "digit_count"
	DigitRatio        = "digit_ratio"
	HostnameEntropy   = "hostname_entropy"
	HostnameDotCount  = "hostname_dot_count"
	SubdomainCount    = "subdomain_count"
	HasIPAddress      = "has_ip_address"
	HasPunycode       = "has_punycode"
)

// Security and brand features.
const (
	HasHTTPS               = "has_https"
	HasAtSymbol            = "has_at_symbol"
	HasDoubleSlashRedirect = "has_double_slash_redirect"
	HasHyphenInDomain      = "has_hyphen_in_domain"
	IsURLShortened         = "is_url_shortened"
	IsSuspiciousTLD        = "is_suspicious_tld"
	SuspiciousKeywordCount = "suspicious_keyword_count"
	HasSuspiciousKeyword   = "has_suspicious_keyword"
	BrandInSubdomain       = "brand_in_subdomain"
	BrandInDomain          = "brand_in_domain"
	BrandInPath            = "brand_in_path"
	IsMalformed            = "is_malformed"
)

// Enrichment features.
const (
	DomainAgeDays     = "domain_age_days"
	DomainExpiryDays  = "domain_expiry_days"
	HasSSLCertificate = "has_ssl_certificate"
	SSLAgeDays        = "ssl_age_days"
	RegistrarKnown    = "registrar_known"
	DomainRegistered  = "domain_registered"
	EnrichmentSkipped = "enrichment_skipped"
)

type Group string

const (
	GroupLexical    Group = "lexical"
	GroupSecurity   Group = "security"
	GroupEnrichment Group = "enrichment"
)

// Definition describes one catalog entry.
type Definition struct {
	Name  string
	Kind  Kind
	Group Group
}

// Default is the neutral value used when the feature cannot be computed.
func (d Definition) Default() Value {
	switch {
	case d.Group == GroupEnrichment && d.Name != EnrichmentSkipped:
		return Unknown()
	case d.Kind == KindBool:
		return Bool(false)
	default:
		return Int(0)
	}
}

// Label returns the human readable name, e.g. "Has Ip Address".
func (d Definition) Label() string {
	return Label(d.Name)
}

var catalog = []Definition{
	{URLLength, KindNumber, GroupLexical},
	{DomainLength, KindNumber, GroupLexical},
	{PathLength, KindNumber, GroupLexical},
	{DotCount, KindNumber, GroupLexical},
	{HyphenCount, KindNumber, GroupLexical},
	{AtCount, KindNumber, GroupLexical},
	{QuestionMarkCount, KindNumber, GroupLexical},
	{AndCount, KindNumber, GroupLexical},
	{EqualCount, KindNumber, GroupLexical},
	{UnderscoreCount, KindNumber, GroupLexical},
	{SlashCount, KindNumber, GroupLexical},
	{DoubleSlashCount, KindNumber, GroupLexical},
	{PercentCount, KindNumber, GroupLexical},
	{DigitCount, KindNumber, GroupLexical},
	{DigitRatio, KindNumber, GroupLexical},
	{HostnameEntropy, KindNumber, GroupLexical},
	{HostnameDotCount, KindNumber, GroupLexical},
	{SubdomainCount, KindNumber, GroupLexical},
	{HasIPAddress, KindBool, GroupLexical},
	{HasPunycode, KindBool, GroupLexical},

	{HasHTTPS, KindBool, GroupSecurity},
	{HasAtSymbol, KindBool, GroupSecurity},
	{HasDoubleSlashRedirect, KindBool, GroupSecurity},
	{HasHyphenInDomain, KindBool, GroupSecurity},
	{IsURLShortened, KindBool, GroupSecurity},
	{IsSuspiciousTLD, KindBool, GroupSecurity},
	{SuspiciousKeywordCount, KindNumber, GroupSecurity},
	{HasSuspiciousKeyword, KindBool, GroupSecurity},
	{BrandInSubdomain, KindBool, GroupSecurity},
	{BrandInDomain, KindBool, GroupSecurity},
	{BrandInPath, KindBool, GroupSecurity},
	{IsMalformed, KindBool, GroupSecurity},

	{DomainAgeDays, KindNumber, GroupEnrichment},
	{DomainExpiryDays, KindNumber, GroupEnrichment},
	{HasSSLCertificate, KindBool, GroupEnrichment},
	{SSLAgeDays, KindNumber, GroupEnrichment},
	{RegistrarKnown, KindBool, GroupEnrichment},
	{DomainRegistered, KindBool, GroupEnrichment},
	{EnrichmentSkipped, KindBool, GroupEnrichment},
}

var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, d := range catalog {
		m[d.Name] = i
	}
	return m
}()

// Catalog returns a copy of the canonical feature ordering.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the canonical feature names in catalog order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, d := range catalog {
		out[i] = d.Name
	}
	return out
}

func Lookup(name string) (Definition, bool) {
	i, ok := index[name]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

func Len() int {
	return len(catalog)
}

func Label(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
