package testutils

import (
	"sync"

	"github.com/evdnx/gosb/types"
)

// MockStore is an in-memory history.Store.
type MockStore struct {
	mu      sync.Mutex
	records []types.TradeRecord
	saves   int

	LoadErr error
	SaveErr error
}

func NewMockStore(seed []types.TradeRecord) *MockStore {
	return &MockStore{records: append([]types.TradeRecord(nil), seed...)}
}

func (m *MockStore) Load() ([]types.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]types.TradeRecord(nil), m.records...), nil
}

func (m *MockStore) Save(records []types.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = append([]types.TradeRecord(nil), records...)
	m.saves++
	return nil
}

func (m *MockStore) Close() error { return nil }

// Saves returns how many times Save was called.
func (m *MockStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
