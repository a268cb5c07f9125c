package testutils

import (
	"sync"

	"go.uber.org/zap"
)

// MockLogger records messages so tests can assert on what was logged.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Info(msg string, fields ...zap.Field)  { m.record(msg) }
func (m *MockLogger) Warn(msg string, fields ...zap.Field)  { m.record(msg) }
func (m *MockLogger) Error(msg string, fields ...zap.Field) { m.record(msg) }

func (m *MockLogger) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// LastMessage returns the most recently recorded message, empty if none.
func (m *MockLogger) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1]
}

// Messages returns a copy of everything recorded.
func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}
