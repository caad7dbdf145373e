package git

import (
	"context"
	"strings"
)

// MockRunner is a Runner for tests. It records every command and answers
// from RunFn, from Responses keyed by the argument line (without "git"), or
// with an empty successful Result.
type MockRunner struct {
	RunFn     func(ctx context.Context, cmd Command) (Result, error)
	Responses map[string]Result
	Calls     []Command
}

var _ Runner = (*MockRunner)(nil)

// NewMockRunner returns a MockRunner with no canned responses.
func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]Result)}
}

// On registers the result returned for a git argument line such as
// "status --porcelain".
func (m *MockRunner) On(args string, res Result) *MockRunner {
	if m.Responses == nil {
		m.Responses = make(map[string]Result)
	}
	m.Responses[args] = res
	return m
}

// Run implements Runner.
func (m *MockRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	m.Calls = append(m.Calls, cmd)
	if m.RunFn != nil {
		return m.RunFn(ctx, cmd)
	}
	if res, ok := m.Responses[strings.Join(cmd.Args, " ")]; ok {
		return res, nil
	}
	return Result{}, nil
}

// CallLines returns the recorded argument lines, without the binary name.
func (m *MockRunner) CallLines() []string {
	lines := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		lines = append(lines, strings.Join(c.Args, " "))
	}
	return lines
}
