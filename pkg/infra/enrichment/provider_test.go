package enrichment_test

import (
	"context"
	"crypto/x509"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/infra/cache"
	"github.com/NeuralTrust/TrustScan/pkg/infra/enrichment"
	"github.com/NeuralTrust/TrustScan/pkg/infra/httpx/mocks"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const registeredAnswer = `Domain Name: EXAMPLE.COM
Registry Domain ID: 2336799_DOMAIN_COM-VRSN
Registrar WHOIS Server: whois.iana.org
Registrar URL: http://res-dom.iana.org
Updated Date: 2023-08-14T07:01:38Z
Creation Date: 1995-08-14T04:00:00Z
Registry Expiry Date: 2024-08-13T04:00:00Z
Registrar: RESERVED-Internet Assigned Numbers Authority
Registrar IANA ID: 376
Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
Name Server: A.IANA-SERVERS.NET
Name Server: B.IANA-SERVERS.NET
DNSSEC: signedDelegation
`

const notFoundAnswer = `No match for domain "PAYPAL-SECURE-LOGIN-UNREGISTERED.COM".
>>> Last update of whois database: 2024-01-01T00:00:00Z <<<
`

type stubWhois struct {
	raw   string
	err   error
	calls atomic.Int32
}

func (s *stubWhois) Query(ctx context.Context, domain string) (string, error) {
	s.calls.Add(1)
	return s.raw, s.err
}

type stubProber struct {
	cert *x509.Certificate
	err  error
}

func (s *stubProber) Probe(ctx context.Context, host string) (*x509.Certificate, error) {
	return s.cert, s.err
}

var refTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestLookup_RegisteredDomain(t *testing.T) {
	whois := &stubWhois{raw: registeredAnswer}
	prober := &stubProber{cert: &x509.Certificate{NotBefore: refTime.Add(-10 * 24 * time.Hour)}}
	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second}, nil,
		enrichment.WithWhoisClient(whois),
		enrichment.WithCertProber(prober),
		enrichment.WithClock(func() time.Time { return refTime }),
	)

	res, err := p.Lookup(context.Background(), "Example.com.")
	require.NoError(t, err)

	created := time.Date(1995, 8, 14, 4, 0, 0, 0, time.UTC)
	expires := time.Date(2024, 8, 13, 4, 0, 0, 0, time.UTC)
	require.NotNil(t, res.DomainAgeDays)
	assert.Equal(t, int(refTime.Sub(created).Hours()/24), *res.DomainAgeDays)
	require.NotNil(t, res.DomainExpiryDays)
	assert.Equal(t, int(expires.Sub(refTime).Hours()/24), *res.DomainExpiryDays)
	require.NotNil(t, res.Registered)
	assert.True(t, *res.Registered)
	require.NotNil(t, res.RegistrarKnown)
	assert.True(t, *res.RegistrarKnown)
	require.NotNil(t, res.HasCertificate)
	assert.True(t, *res.HasCertificate)
	require.NotNil(t, res.CertAgeDays)
	assert.Equal(t, 10, *res.CertAgeDays)
}

func TestLookup_UnregisteredDomain(t *testing.T) {
	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second}, nil,
		enrichment.WithWhoisClient(&stubWhois{raw: notFoundAnswer}),
		enrichment.WithCertProber(&stubProber{err: errors.New("connection refused")}),
	)

	res, err := p.Lookup(context.Background(), "paypal-secure-login-unregistered.com")
	require.NoError(t, err)
	require.NotNil(t, res.Registered)
	assert.False(t, *res.Registered)
	assert.Nil(t, res.DomainAgeDays)
	require.NotNil(t, res.HasCertificate)
	assert.False(t, *res.HasCertificate)
	assert.Nil(t, res.CertAgeDays)
}

func TestLookup_NothingObserved(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second}, nil,
		enrichment.WithWhoisClient(&stubWhois{err: errors.New("whois server unreachable")}),
		enrichment.WithCertProber(&stubProber{err: context.Canceled}),
	)

	res, err := p.Lookup(ctx, "example.org")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)
}

func TestLookup_EmptyDomain(t *testing.T) {
	p := enrichment.NewProvider(newLogger(), enrichment.Config{}, nil)

	_, err := p.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)
}

func TestLookup_CachesCompleteResults(t *testing.T) {
	whois := &stubWhois{raw: registeredAnswer}
	c := cache.NewMemoryClient(time.Hour)
	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second, CacheTTL: time.Hour}, c,
		enrichment.WithWhoisClient(whois),
		enrichment.WithCertProber(&stubProber{cert: &x509.Certificate{NotBefore: refTime}}),
		enrichment.WithClock(func() time.Time { return refTime }),
	)

	first, err := p.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	second, err := p.Lookup(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, int32(1), whois.calls.Load())
	assert.Equal(t, first, second)

	raw, err := c.Get(context.Background(), "trustscan:enrichment:example.com")
	require.NoError(t, err)
	assert.Contains(t, raw, `"domain_registered":true`)
}

func TestLookup_PartialResultsAreNotCached(t *testing.T) {
	whois := &stubWhois{err: errors.New("rate limited")}
	c := cache.NewMemoryClient(time.Hour)
	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second}, c,
		enrichment.WithWhoisClient(whois),
		enrichment.WithCertProber(&stubProber{cert: &x509.Certificate{NotBefore: refTime}}),
		enrichment.WithClock(func() time.Time { return refTime }),
	)

	res, err := p.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Nil(t, res.Registered)
	require.NotNil(t, res.HasCertificate)
	assert.True(t, *res.HasCertificate)

	_, err = c.Get(context.Background(), "trustscan:enrichment:example.com")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestLookup_BreakerOpensOnRepeatedWhoisFailures(t *testing.T) {
	whois := &stubWhois{err: errors.New("timeout")}
	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second, BreakerMaxFailures: 2, BreakerTimeout: time.Minute}, nil,
		enrichment.WithWhoisClient(whois),
		enrichment.WithCertProber(&stubProber{cert: &x509.Certificate{NotBefore: refTime}}),
	)

	for i := 0; i < 4; i++ {
		_, err := p.Lookup(context.Background(), "example.com")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), whois.calls.Load())
}

func TestLookup_OpenBreakersSkipLookups(t *testing.T) {
	whoisBreaker := mocks.NewCircuitBreaker(t)
	tlsBreaker := mocks.NewCircuitBreaker(t)
	whoisBreaker.On("Execute", mock.Anything).Return(gobreaker.ErrOpenState).Once()
	tlsBreaker.On("Execute", mock.Anything).Return(gobreaker.ErrOpenState).Once()

	whois := &stubWhois{raw: registeredAnswer}
	p := enrichment.NewProvider(newLogger(), enrichment.Config{Timeout: time.Second}, nil,
		enrichment.WithWhoisClient(whois),
		enrichment.WithCertProber(&stubProber{cert: &x509.Certificate{NotBefore: refTime}}),
		enrichment.WithBreakers(whoisBreaker, tlsBreaker),
	)

	res, err := p.Lookup(context.Background(), "example.com")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Zero(t, whois.calls.Load())
}
