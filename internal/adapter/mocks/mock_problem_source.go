// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	m "github.com/synnheal/stepcalc/internal/model"
)

// MockProblemSource is a mock of adapter.ProblemSource.
type MockProblemSource struct {
	mock.Mock
}

// NewMockProblemSource creates a MockProblemSource that asserts its
// expectations when the test ends.
func NewMockProblemSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProblemSource {
	mockSource := &MockProblemSource{}
	mockSource.Mock.Test(t)

	t.Cleanup(func() { mockSource.AssertExpectations(t) })

	return mockSource
}

// Get provides a mock function.
func (_m *MockProblemSource) Get(paths []m.Path) ([]m.Problem, error) {
	ret := _m.Called(paths)

	var problems []m.Problem
	if fn, ok := ret.Get(0).(func([]m.Path) []m.Problem); ok {
		problems = fn(paths)
	} else if ret.Get(0) != nil {
		problems = ret.Get(0).([]m.Problem)
	}

	return problems, ret.Error(1)
}
