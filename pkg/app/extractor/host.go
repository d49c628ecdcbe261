package extractor

import (
	"net"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

type hostParts struct {
	host        string
	ascii       string
	isIP        bool
	unicode     bool
	punycode    bool
	registrable string
	label       string
	suffix      string
	subdomain   string
}

// splitHost breaks a lower-cased hostname into its public-suffix aware parts.
func splitHost(host string) (hostParts, bool) {
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return hostParts{}, false
	}
	parts := hostParts{host: host, ascii: host}

	if isIPLiteral(host) {
		parts.isIP = true
		return parts, true
	}

	if !validHostname(host) {
		return hostParts{}, false
	}

	for _, r := range host {
		if r >= utf8.RuneSelf {
			parts.unicode = true
			break
		}
	}
	if parts.unicode {
		ascii, err := idna.Lookup.ToASCII(host)
		if err == nil {
			parts.ascii = ascii
		}
	}
	for _, l := range strings.Split(parts.ascii, ".") {
		if strings.HasPrefix(l, "xn--") {
			parts.punycode = true
			break
		}
	}

	suffix, _ := publicsuffix.PublicSuffix(parts.ascii)
	parts.suffix = suffix
	registrable, err := publicsuffix.EffectiveTLDPlusOne(parts.ascii)
	if err != nil {
		registrable = parts.ascii
	}
	parts.registrable = registrable
	parts.label = strings.TrimSuffix(strings.TrimSuffix(registrable, suffix), ".")
	if parts.label == "" {
		parts.label = registrable
	}
	parts.subdomain = strings.TrimSuffix(strings.TrimSuffix(parts.ascii, registrable), ".")
	return parts, true
}

func (h hostParts) subdomainCount() int {
	if h.subdomain == "" {
		return 0
	}
	return len(strings.Split(h.subdomain, "."))
}

// tld is the right-most label of the public suffix.
func (h hostParts) tld() string {
	if h.isIP || h.suffix == "" {
		return ""
	}
	if i := strings.LastIndexByte(h.suffix, '.'); i >= 0 {
		return h.suffix[i+1:]
	}
	return h.suffix
}

func validHostname(host string) bool {
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 253 {
			return false
		}
		for _, r := range label {
			if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
			return false
		}
	}
	return true
}

// isIPLiteral accepts every form a resolver treats as an address: dotted quads,
// IPv6, and the inet_aton shorthands with hex, octal or fewer than four parts.
// Every part but the last is a single byte; the last fills the remaining bytes.
func isIPLiteral(host string) bool {
	if net.ParseIP(strings.Trim(host, "[]")) != nil {
		return true
	}
	parts := strings.Split(host, ".")
	if len(parts) > 4 {
		return false
	}
	for i, p := range parts {
		n, ok := numericPart(p)
		if !ok {
			return false
		}
		limit := uint64(0xff)
		if i == len(parts)-1 {
			limit = 1<<(8*uint(5-len(parts))) - 1
		}
		if n > limit {
			return false
		}
	}
	return true
}

func numericPart(p string) (uint64, bool) {
	base := 10
	digits := p
	switch {
	case len(p) > 2 && (p[:2] == "0x" || p[:2] == "0X"):
		base, digits = 16, p[2:]
	case len(p) > 1 && p[0] == '0':
		base, digits = 8, p[1:]
	}
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}
