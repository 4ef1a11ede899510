package llm

import (
	"context"
	"sync"
)

// MockCompletion is a canned answer for the MockBackend.
type MockCompletion struct {
	Text string
	Err  error
}

// MockBackend is a deterministic Backend for testing. It returns canned
// completions in FIFO order and records all prompts. The mutex also makes
// it the reference shape for wrapping runtimes that cannot take concurrent
// calls: hold the lock only around the single call path.
type MockBackend struct {
	mu          sync.Mutex
	completions []MockCompletion
	Prompts     []string
}

// NewMockBackend creates a MockBackend with the given canned completions.
func NewMockBackend(completions ...MockCompletion) *MockBackend {
	return &MockBackend{completions: completions}
}

// Complete returns the next canned completion or ErrBackendUnavailable if
// the queue is empty.
func (m *MockBackend) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if len(m.completions) == 0 {
		return "", &ErrBackendUnavailable{Err: nil}
	}

	c := m.completions[0]
	m.completions = m.completions[1:]

	if c.Err != nil {
		return "", c.Err
	}
	return c.Text, nil
}

// ModelID returns "mock".
func (m *MockBackend) ModelID() string {
	return "mock"
}

// AddCompletion appends a canned completion to the queue.
func (m *MockBackend) AddCompletion(c MockCompletion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completions = append(m.completions, c)
}

// CallCount returns the number of Complete calls made.
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
