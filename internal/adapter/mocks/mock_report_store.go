package mocks

import (
	"github.com/stretchr/testify/mock"

	m "github.com/synnheal/stepcalc/internal/model"
)

// MockReportStore is a mock of adapter.ReportStore.
type MockReportStore struct {
	mock.Mock
}

// NewMockReportStore creates a MockReportStore that asserts its expectations
// when the test ends.
func NewMockReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportStore {
	mockStore := &MockReportStore{}
	mockStore.Mock.Test(t)

	t.Cleanup(func() { mockStore.AssertExpectations(t) })

	return mockStore
}

// SaveReports provides a mock function.
func (_m *MockReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	ret := _m.Called(dir, reports)
	return ret.Error(0)
}

// LoadReports provides a mock function.
func (_m *MockReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	ret := _m.Called(dir)

	var reports []m.Report
	if ret.Get(0) != nil {
		reports = ret.Get(0).([]m.Report)
	}

	return reports, ret.Error(1)
}

// ShardDirs provides a mock function.
func (_m *MockReportStore) ShardDirs(dir m.Path) ([]m.Path, error) {
	ret := _m.Called(dir)

	var shards []m.Path
	if ret.Get(0) != nil {
		shards = ret.Get(0).([]m.Path)
	}

	return shards, ret.Error(1)
}
