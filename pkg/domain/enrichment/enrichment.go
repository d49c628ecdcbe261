package enrichment

import "context"

// Result holds the domain facts a provider could observe. A nil field was not observed.
type Result struct {
	DomainAgeDays    *int  `json:"domain_age_days,omitempty"`
	DomainExpiryDays *int  `json:"domain_expiry_days,omitempty"`
	HasCertificate   *bool `json:"has_ssl_certificate,omitempty"`
	CertAgeDays      *int  `json:"ssl_age_days,omitempty"`
	RegistrarKnown   *bool `json:"registrar_known,omitempty"`
	Registered       *bool `json:"domain_registered,omitempty"`
}

// Empty reports whether nothing was observed.
func (r *Result) Empty() bool {
	return r == nil || (r.DomainAgeDays == nil && r.DomainExpiryDays == nil && r.HasCertificate == nil &&
		r.CertAgeDays == nil && r.RegistrarKnown == nil && r.Registered == nil)
}

//go:generate mockery --name=Provider --dir=. --output=./mocks --filename=provider_mock.go --case=underscore --with-expecter
type Provider interface {
	// Lookup returns ErrEnrichmentUnavailable (wrapped) when nothing could be observed.
	Lookup(ctx context.Context, domain string) (*Result, error)
}
