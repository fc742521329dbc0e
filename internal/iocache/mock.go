package iocache

import (
	"time"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetStateStore implements the StoreManager interface.
func (m *MockStoreManager) GetStateStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Delete implements the CacheStore interface.
func (m *MockCacheStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(runTime time.Time, optionCount, criterionCount int, fragment string) (int64, error) {
	args := m.Called(runTime, optionCount, criterionCount, fragment)
	return args.Get(0).(int64), args.Error(1)
}

// RecordResult implements the HistoryStore interface.
func (m *MockHistoryStore) RecordResult(runID int64, result schema.RankedResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.CalculationRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.CalculationRunRecord)
	return runs, args.Error(1)
}

// GetAllResults implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllResults() ([]schema.OptionResultRecord, error) {
	args := m.Called()
	results, _ := args.Get(0).([]schema.OptionResultRecord)
	return results, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
