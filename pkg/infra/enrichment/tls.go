package enrichment

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"time"
)

var errNoPeerCertificate = errors.New("no peer certificate presented")

//go:generate mockery --name=CertProber --dir=. --output=./mocks --filename=cert_prober_mock.go --case=underscore --with-expecter
type CertProber interface {
	// Probe returns the leaf certificate served for host.
	Probe(ctx context.Context, host string) (*x509.Certificate, error)
}

type tlsProber struct {
	port    string
	timeout time.Duration
}

func NewTLSProber(port string, timeout time.Duration) CertProber {
	if port == "" {
		port = "443"
	}
	return &tlsProber{port: port, timeout: timeout}
}

func (p *tlsProber) Probe(ctx context.Context, host string) (*x509.Certificate, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: p.timeout},
		Config:    &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, p.port))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return nil, errNoPeerCertificate
	}
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil, errNoPeerCertificate
	}
	return certs[0], nil
}
