package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustScan/pkg/app/batch"
	"github.com/NeuralTrust/TrustScan/pkg/domain/verdict"
	"github.com/stretchr/testify/mock"
)

// Orchestrator is a mock type for the Orchestrator type
type Orchestrator struct {
	mock.Mock
}

// Run provides a mock function with given fields: ctx, urls, opts
func (_m *Orchestrator) Run(ctx context.Context, urls []string, opts batch.Options) (*verdict.BatchResult, error) {
	ret := _m.Called(ctx, urls, opts)

	if rf, ok := ret.Get(0).(func(context.Context, []string, batch.Options) (*verdict.BatchResult, error)); ok {
		return rf(ctx, urls, opts)
	}
	r, _ := ret.Get(0).(*verdict.BatchResult) //nolint:errcheck
	return r, ret.Error(1)
}

// NewOrchestrator creates a new instance of Orchestrator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrchestrator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Orchestrator {
	m := &Orchestrator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
