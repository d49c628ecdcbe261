package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustScan/pkg/domain/enrichment"
	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) Lookup(ctx context.Context, domain string) (*enrichment.Result, error) {
	args := m.Called(ctx, domain)
	res, _ := args.Get(0).(*enrichment.Result) //nolint:errcheck
	return res, args.Error(1)
}
