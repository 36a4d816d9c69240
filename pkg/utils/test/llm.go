package testutils

import (
	"context"
	"fmt"
	"strings"
)

// MockCompleter is a test completer that echoes a marker plus the prompt tail.
type MockCompleter struct {
	// Response, when set, is returned for every prompt.
	Response string

	// FailOn causes Complete to error when the prompt contains the substring.
	FailOn string

	// Prompts records every prompt in order.
	Prompts []string
}

func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

func (m *MockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if m.FailOn != "" && strings.Contains(prompt, m.FailOn) {
		return "", fmt.Errorf("mock completion failure")
	}

	m.Prompts = append(m.Prompts, prompt)

	if m.Response != "" {
		return m.Response, nil
	}

	return "completion: " + lastLine(prompt), nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
