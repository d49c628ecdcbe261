package mocks

import (
	"context"

	"github.com/NeuralTrust/TrustScan/pkg/app/scoring"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/stretchr/testify/mock"
)

// Selector is a mock type for the Selector type
type Selector struct {
	mock.Mock
}

// Score provides a mock function with given fields: ctx, vec
func (_m *Selector) Score(ctx context.Context, vec feature.Vector) (*scoring.Assessment, error) {
	ret := _m.Called(ctx, vec)

	a, _ := ret.Get(0).(*scoring.Assessment) //nolint:errcheck
	return a, ret.Error(1)
}

// Status provides a mock function with no fields
func (_m *Selector) Status() scoring.Status {
	ret := _m.Called()

	s, _ := ret.Get(0).(scoring.Status) //nolint:errcheck
	return s
}

// NewSelector creates a new instance of Selector. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSelector(t interface {
	mock.TestingT
	Cleanup(func())
}) *Selector {
	m := &Selector{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
