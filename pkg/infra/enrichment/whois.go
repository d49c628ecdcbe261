package enrichment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

//go:generate mockery --name=WhoisClient --dir=. --output=./mocks --filename=whois_client_mock.go --case=underscore --with-expecter
type WhoisClient interface {
	Query(ctx context.Context, domain string) (string, error)
}

type whoisClient struct {
	client *whois.Client
}

func NewWhoisClient(timeout time.Duration) WhoisClient {
	c := whois.NewClient()
	c.SetTimeout(timeout)
	return &whoisClient{client: c}
}

// Query returns as soon as ctx is done; the underlying lookup is left to hit its own timeout.
func (w *whoisClient) Query(ctx context.Context, domain string) (string, error) {
	type answer struct {
		raw string
		err error
	}
	done := make(chan answer, 1)
	go func() {
		raw, err := w.client.Whois(domain)
		done <- answer{raw: raw, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-done:
		return a.raw, a.err
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.0Z",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type whoisFacts struct {
	created    *time.Time
	expires    *time.Time
	registrar  *bool
	registered *bool
}

// parseWhois extracts registration facts from a raw WHOIS answer. An
// unregistered domain is a fact, not an error.
func parseWhois(raw string) (whoisFacts, error) {
	var facts whoisFacts
	info, err := whoisparser.Parse(raw)
	if errors.Is(err, whoisparser.ErrNotFoundDomain) {
		facts.registered = boolPtr(false)
		return facts, nil
	}
	if err != nil {
		return facts, err
	}
	if info.Domain == nil {
		return facts, whoisparser.ErrDomainDataInvalid
	}

	facts.registered = boolPtr(true)
	facts.registrar = boolPtr(info.Registrar != nil && strings.TrimSpace(info.Registrar.Name) != "")
	if t, ok := parseDate(info.Domain.CreatedDate); ok {
		facts.created = &t
	}
	if t, ok := parseDate(info.Domain.ExpirationDate); ok {
		facts.expires = &t
	}
	return facts, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func days(d time.Duration) int {
	return int(d.Hours() / 24)
}
