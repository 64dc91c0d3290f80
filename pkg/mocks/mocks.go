// Package mocks provides mock implementations of interfaces for testing.
// These follow Go best practices for test doubles.
package mocks

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/texforge/texforge/pkg/interfaces"
)

// ScriptedRun describes the result of one mock engine invocation
type ScriptedRun struct {
	ExitCode int
	Stdout   string
	// StdoutReader overrides Stdout when set, letting tests inject
	// readers that fail mid-scan
	StdoutReader io.Reader
	// Err is returned instead of a result, simulating a spawn failure
	Err error
}

// MockRunner is a mock implementation of ProcessRunner for testing.
// It replays a script of results and records every invocation.
type MockRunner struct {
	mu          sync.Mutex
	script      []ScriptedRun
	invocations []interfaces.Invocation
}

// NewMockRunner creates a new mock runner
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Enqueue appends a scripted result. When the script is exhausted the
// last entry repeats, so a single entry acts as a constant response.
func (m *MockRunner) Enqueue(run ScriptedRun) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.script = append(m.script, run)
	return m
}

// Run records the invocation and replays the next scripted result
func (m *MockRunner) Run(ctx context.Context, inv interfaces.Invocation) (*interfaces.ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.invocations)
	m.invocations = append(m.invocations, inv)

	if len(m.script) == 0 {
		return &interfaces.ExecResult{ExitCode: 0, Stdout: strings.NewReader("")}, nil
	}
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}

	run := m.script[idx]
	if run.Err != nil {
		return nil, run.Err
	}

	stdout := run.StdoutReader
	if stdout == nil {
		stdout = strings.NewReader(run.Stdout)
	}

	return &interfaces.ExecResult{ExitCode: run.ExitCode, Stdout: stdout}, nil
}

// RunCount returns the number of times Run was called
func (m *MockRunner) RunCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.invocations)
}

// Invocations returns a copy of the recorded invocations
func (m *MockRunner) Invocations() []interfaces.Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]interfaces.Invocation, len(m.invocations))
	copy(out, m.invocations)
	return out
}

// LastInvocation returns the most recent invocation, or nil
func (m *MockRunner) LastInvocation() *interfaces.Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.invocations) == 0 {
		return nil
	}
	inv := m.invocations[len(m.invocations)-1]
	return &inv
}

// MockNotifier is a mock implementation of CompileNotifier for testing
type MockNotifier struct {
	mu        sync.Mutex
	starts    []string
	successes []string
	failures  []string
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// NotifyCompileStart records a start notification
func (m *MockNotifier) NotifyCompileStart(job string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts = append(m.starts, job)
}

// NotifyCompileSuccess records a success notification
func (m *MockNotifier) NotifyCompileSuccess(job string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, job)
}

// NotifyCompileFailure records a failure notification
func (m *MockNotifier) NotifyCompileFailure(job string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, job)
}

// Starts returns the jobs that were notified as started
func (m *MockNotifier) Starts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.starts))
	copy(out, m.starts)
	return out
}

// Successes returns the jobs that were notified as succeeded
func (m *MockNotifier) Successes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.successes))
	copy(out, m.successes)
	return out
}

// Failures returns the jobs that were notified as failed
func (m *MockNotifier) Failures() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.failures))
	copy(out, m.failures)
	return out
}
