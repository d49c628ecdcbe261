package explainer

import "github.com/NeuralTrust/TrustScan/pkg/domain/feature"

// phrase holds the sentence used when a feature pushes the score toward
// phishing and the one used when it pushes toward legitimate.
type phrase struct {
	phishing   string
	legitimate string
}

var templates = map[string]phrase{
	feature.URLLength:              {"URL is unusually long", "URL length is normal"},
	feature.DomainLength:           {"Domain name is unusually long", "Domain name length is normal"},
	feature.PathLength:             {"URL path is unusually long", "URL path length is normal"},
	feature.DotCount:               {"Many dots in URL", "Normal number of dots in URL"},
	feature.HyphenCount:            {"Many hyphens in URL", "Few hyphens in URL"},
	feature.AtCount:                {"'@' characters found in URL", "No '@' characters in URL"},
	feature.QuestionMarkCount:      {"Unusual number of query separators", "Normal query string"},
	feature.AndCount:               {"Many query parameters", "Few query parameters"},
	feature.EqualCount:             {"Many parameter assignments in URL", "Few parameter assignments in URL"},
	feature.UnderscoreCount:        {"Many underscores in URL", "Few underscores in URL"},
	feature.SlashCount:             {"Deeply nested URL path", "Shallow URL path"},
	feature.DoubleSlashCount:       {"Repeated '//' sequences in URL", "No repeated '//' sequences"},
	feature.PercentCount:           {"Heavy URL encoding may hide the real address", "Little or no URL encoding"},
	feature.DigitCount:             {"Many digits in URL", "Few digits in URL"},
	feature.DigitRatio:             {"High proportion of digits in URL", "Low proportion of digits in URL"},
	feature.HostnameEntropy:        {"Hostname looks randomly generated", "Hostname looks like ordinary words"},
	feature.HostnameDotCount:       {"Hostname has many labels", "Hostname has few labels"},
	feature.SubdomainCount:         {"Excessive number of subdomains", "Normal subdomain structure"},
	feature.HasIPAddress:           {"IP address used instead of domain name", "Uses a domain name rather than an IP address"},
	feature.HasPunycode:            {"Internationalised (punycode) domain that may imitate a known site", "Plain ASCII domain name"},
	feature.HasHTTPS:               {"No HTTPS: connection is not encrypted", "HTTPS connection is used"},
	feature.HasAtSymbol:            {"'@' symbol in URL: the browser ignores everything before it", "No '@' redirection trick"},
	feature.HasDoubleSlashRedirect: {"Double-slash redirect found in URL path", "No embedded redirect in path"},
	feature.HasHyphenInDomain:      {"Hyphenated domain name, common in look-alike domains", "Domain name has no hyphens"},
	feature.IsURLShortened:         {"URL shortener detected: it hides the true destination", "Destination is not hidden by a shortener"},
	feature.IsSuspiciousTLD:        {"Suspicious top-level domain (TLD) detected", "Top-level domain has a good reputation"},
	feature.SuspiciousKeywordCount: {"Several phishing keywords found in URL", "Few phishing keywords in URL"},
	feature.HasSuspiciousKeyword:   {"Phishing keyword detected in URL (e.g. login, verify, account)", "No phishing keywords in URL"},
	feature.BrandInSubdomain:       {"Brand name impersonation detected in subdomain", "No brand name in subdomain"},
	feature.BrandInDomain:          {"Brand name embedded in an unrelated domain", "No brand name look-alike in domain"},
	feature.BrandInPath:            {"Brand name found in URL path", "No brand name in URL path"},
	feature.IsMalformed:            {"URL could not be parsed", "URL is well formed"},
	feature.DomainAgeDays:          {"Domain was registered very recently", "Domain has been registered for a long time"},
	feature.DomainExpiryDays:       {"Domain registration expires soon", "Domain registration is long lived"},
	feature.HasSSLCertificate:      {"No valid SSL certificate found", "Valid SSL certificate found"},
	feature.SSLAgeDays:             {"SSL certificate was issued very recently", "SSL certificate has been in place for a while"},
	feature.RegistrarKnown:         {"Domain registrar could not be identified", "Domain registrar is known"},
	feature.DomainRegistered:       {"Domain does not appear to be registered", "Domain is registered"},
	feature.EnrichmentSkipped:      {"Domain reputation could not be verified", "Domain reputation was verified"},
}
