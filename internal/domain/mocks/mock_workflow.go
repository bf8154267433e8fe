// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/synnheal/stepcalc/internal/domain"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow that asserts its expectations when
// the test ends.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Mock.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

// Solve provides a mock function.
func (_m *MockWorkflow) Solve(ctx context.Context, args domain.SolveArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// Validate provides a mock function.
func (_m *MockWorkflow) Validate(ctx context.Context, args domain.ValidateArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// Batch provides a mock function.
func (_m *MockWorkflow) Batch(ctx context.Context, args domain.BatchArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// View provides a mock function.
func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// Merge provides a mock function.
func (_m *MockWorkflow) Merge(ctx context.Context, args domain.MergeArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// Operations provides a mock function.
func (_m *MockWorkflow) Operations(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}
