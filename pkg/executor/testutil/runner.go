// Package testutil provides a mock process runner for executor and
// pipeline tests.
package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock implementing executor.Runner
type MockRunner struct {
	mock.Mock

	mu       sync.Mutex
	commands []string
}

// NewMockRunner creates a MockRunner with no expectations. Any call to Run
// without a matching expectation fails the test.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

func (m *MockRunner) Run(command string) ([]byte, error) {
	m.mu.Lock()
	m.commands = append(m.commands, command)
	m.mu.Unlock()

	args := m.Called(command)
	var out []byte
	if b := args.Get(0); b != nil {
		out = b.([]byte)
	}
	return out, args.Error(1)
}

// Commands returns every command passed to Run, in call order
func (m *MockRunner) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.commands...)
}
