package mocks

import (
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/mock"
)

// CircuitBreaker is a mock type for the CircuitBreaker type
type CircuitBreaker struct {
	mock.Mock
}

// Execute provides a mock function with given fields: fn
func (_m *CircuitBreaker) Execute(fn func() error) error {
	ret := _m.Called(fn)

	var r0 error
	if rf, ok := ret.Get(0).(func(func() error) error); ok {
		r0 = rf(fn)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// State provides a mock function with given fields:
func (_m *CircuitBreaker) State() gobreaker.State {
	ret := _m.Called()

	var r0 gobreaker.State
	if rf, ok := ret.Get(0).(func() gobreaker.State); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(gobreaker.State)
	}
	return r0
}

// NewCircuitBreaker creates a new instance of CircuitBreaker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCircuitBreaker(t interface {
	mock.TestingT
	Cleanup(func())
}) *CircuitBreaker {
	m := &CircuitBreaker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
