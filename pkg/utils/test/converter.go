package testutils

import "fmt"

// MockConverter is a test document converter returning fixed markdown.
type MockConverter struct {
	Markdown string
	Fail     bool
}

func NewMockConverter(markdown string) *MockConverter {
	return &MockConverter{Markdown: markdown}
}

func (m *MockConverter) ToMarkdown(path string) (string, error) {
	if m.Fail {
		return "", fmt.Errorf("mock conversion failure for: %s", path)
	}
	return m.Markdown, nil
}
