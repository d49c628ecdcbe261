package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/infra/cache"
	"github.com/NeuralTrust/TrustScan/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustScan/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Timeout            time.Duration
	CacheTTL           time.Duration
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	TLSPort            string
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 24 * time.Hour
	}
	if c.BreakerMaxFailures == 0 {
		c.BreakerMaxFailures = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
	return c
}

type Option func(*provider)

func WithWhoisClient(c WhoisClient) Option {
	return func(p *provider) { p.whois = c }
}

func WithCertProber(c CertProber) Option {
	return func(p *provider) { p.certs = c }
}

// WithBreakers replaces the per-source circuit breakers.
func WithBreakers(whois, tls httpx.CircuitBreaker) Option {
	return func(p *provider) {
		p.whoisBreaker = whois
		p.tlsBreaker = tls
	}
}

// WithClock fixes the reference time for day counts.
func WithClock(now func() time.Time) Option {
	return func(p *provider) { p.now = now }
}

type provider struct {
	logger       *logrus.Logger
	cfg          Config
	cache        cache.Client
	whois        WhoisClient
	certs        CertProber
	whoisBreaker httpx.CircuitBreaker
	tlsBreaker   httpx.CircuitBreaker
	now          func() time.Time
}

// NewProvider looks domains up over WHOIS and a TLS handshake. cacheClient may be nil.
func NewProvider(logger *logrus.Logger, cfg Config, cacheClient cache.Client, opts ...Option) enrichment.Provider {
	cfg = cfg.withDefaults()
	p := &provider{
		logger:       logger,
		cfg:          cfg,
		cache:        cacheClient,
		whois:        NewWhoisClient(cfg.Timeout),
		certs:        NewTLSProber(cfg.TLSPort, cfg.Timeout),
		whoisBreaker: httpx.NewCircuitBreaker("whois", cfg.BreakerTimeout, cfg.BreakerMaxFailures),
		tlsBreaker:   httpx.NewCircuitBreaker("tls-probe", cfg.BreakerTimeout, cfg.BreakerMaxFailures),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *provider) Lookup(ctx context.Context, name string) (*enrichment.Result, error) {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "" {
		return nil, fmt.Errorf("%w: empty domain", domain.ErrEnrichmentUnavailable)
	}

	if res, ok := p.cached(ctx, name); ok {
		p.count("hit")
		return res, nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	var (
		facts whoisFacts
		res   enrichment.Result
		g     errgroup.Group
	)
	now := p.now()

	g.Go(func() error {
		return p.whoisBreaker.Execute(func() error {
			raw, err := p.whois.Query(ctx, name)
			if err != nil {
				return err
			}
			facts, err = parseWhois(raw)
			if err != nil {
				p.logger.WithError(err).WithField("domain", name).Debug("unparsable whois answer")
			}
			return nil
		})
	})
	g.Go(func() error {
		return p.tlsBreaker.Execute(func() error {
			cert, err := p.certs.Probe(ctx, name)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				// a handshake that fails for any other reason means no usable certificate
				res.HasCertificate = boolPtr(false)
				return nil
			}
			res.HasCertificate = boolPtr(true)
			res.CertAgeDays = intPtr(max(0, days(now.Sub(cert.NotBefore))))
			return nil
		})
	})
	err := g.Wait()

	res.Registered = facts.registered
	res.RegistrarKnown = facts.registrar
	if facts.created != nil {
		res.DomainAgeDays = intPtr(max(0, days(now.Sub(*facts.created))))
	}
	if facts.expires != nil {
		res.DomainExpiryDays = intPtr(days(facts.expires.Sub(now)))
	}
	p.observe(start)

	if res.Empty() {
		p.count("unavailable")
		if err == nil {
			err = errors.New("no domain facts observed")
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrEnrichmentUnavailable, name, err)
	}

	if err != nil {
		p.logger.WithError(err).WithField("domain", name).Warn("partial domain enrichment")
	} else {
		p.store(ctx, name, &res)
	}
	p.count("fetched")
	return &res, nil
}

func (p *provider) cached(ctx context.Context, name string) (*enrichment.Result, bool) {
	if p.cache == nil {
		return nil, false
	}
	raw, err := p.cache.Get(ctx, fmt.Sprintf(cache.EnrichmentKeyPattern, name))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.WithError(err).Warn("failed to read enrichment cache")
		}
		return nil, false
	}
	var res enrichment.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		p.logger.WithError(err).WithField("domain", name).Warn("corrupt enrichment cache entry")
		return nil, false
	}
	return &res, true
}

func (p *provider) store(ctx context.Context, name string, res *enrichment.Result) {
	if p.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, fmt.Sprintf(cache.EnrichmentKeyPattern, name), string(raw), p.cfg.CacheTTL); err != nil {
		p.logger.WithError(err).WithField("domain", name).Warn("failed to write enrichment cache")
	}
}

func (p *provider) count(outcome string) {
	if prometheus.Config.EnableEnrichment {
		prometheus.EnrichmentTotal.WithLabelValues(outcome).Inc()
	}
}

func (p *provider) observe(start time.Time) {
	if prometheus.Config.EnableLatency {
		prometheus.EnrichmentLatency.Observe(float64(time.Since(start).Milliseconds()))
	}
}
