package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustScan/pkg/app/scan"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/stretchr/testify/mock"
)

// Scanner is a mock type for the Scanner type
type Scanner struct {
	mock.Mock
}

// Scan provides a mock function with given fields: ctx, rawURL, opts
func (_m *Scanner) Scan(ctx context.Context, rawURL string, opts scan.Options) (*verdict.Verdict, error) {
	ret := _m.Called(ctx, rawURL, opts)

	if rf, ok := ret.Get(0).(func(context.Context, string, scan.Options) (*verdict.Verdict, error)); ok {
		return rf(ctx, rawURL, opts)
	}
	v, _ := ret.Get(0).(*verdict.Verdict) //nolint:errcheck
	return v, ret.Error(1)
}

// Features provides a mock function with given fields: ctx, rawURL, opts
func (_m *Scanner) Features(ctx context.Context, rawURL string, opts scan.Options) (*scan.FeatureReport, error) {
	ret := _m.Called(ctx, rawURL, opts)

	if rf, ok := ret.Get(0).(func(context.Context, string, scan.Options) (*scan.FeatureReport, error)); ok {
		return rf(ctx, rawURL, opts)
	}
	r, _ := ret.Get(0).(*scan.FeatureReport) //nolint:errcheck
	return r, ret.Error(1)
}

// NewScanner creates a new instance of Scanner. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewScanner(t interface {
	mock.TestingT
	Cleanup(func())
}) *Scanner {
	m := &Scanner{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
