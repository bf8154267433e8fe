// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "github.com/synnheal/stepcalc/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI that asserts its expectations when the test ends.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// DisplaySolution provides a mock function.
func (_m *MockUI) DisplaySolution(ctx context.Context, input string, kind m.OperationKind, solution m.Solution) error {
	ret := _m.Called(ctx, input, kind, solution)
	return ret.Error(0)
}

// DisplayValidation provides a mock function.
func (_m *MockUI) DisplayValidation(ctx context.Context, input string, kind m.OperationKind, err error) error {
	ret := _m.Called(ctx, input, kind, err)
	return ret.Error(0)
}

// DisplayOperations provides a mock function.
func (_m *MockUI) DisplayOperations(ctx context.Context, kinds []m.OperationKind) error {
	ret := _m.Called(ctx, kinds)
	return ret.Error(0)
}

// DisplayBatchInfo provides a mock function.
func (_m *MockUI) DisplayBatchInfo(ctx context.Context, problems int, threads int, shardIndex int, shardCount int) {
	_m.Called(ctx, problems, threads, shardIndex, shardCount)
}

// DisplayReports provides a mock function.
func (_m *MockUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	ret := _m.Called(ctx, reports)
	return ret.Error(0)
}

// DisplayScore provides a mock function.
func (_m *MockUI) DisplayScore(ctx context.Context, score float64) {
	_m.Called(ctx, score)
}
