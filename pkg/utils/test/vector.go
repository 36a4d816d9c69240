package testutils

import (
	"context"
	"fmt"

	"github.com/docfold/docqa/pkg/vector"
)

// MockVectorDriver is a test vector driver
type MockVectorDriver struct {
	Documents []vector.Document
	Results   []vector.QueryResult

	// EnsureCalls counts Ensure invocations
	EnsureCalls int

	// FailEnsure, FailAdd, and FailQuery force the matching call to error
	FailEnsure bool
	FailAdd    bool
	FailQuery  bool
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		Documents: make([]vector.Document, 0),
		Results:   make([]vector.QueryResult, 0),
	}
}

func (m *MockVectorDriver) Ensure(_ context.Context) error {
	if m.FailEnsure {
		return fmt.Errorf("%w: mock ensure failure", vector.ErrConnection)
	}
	m.EnsureCalls++
	return nil
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	if m.FailAdd {
		return fmt.Errorf("%w: mock add failure", vector.ErrConnection)
	}
	m.Documents = append(m.Documents, docs...)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	if m.FailQuery {
		return nil, fmt.Errorf("%w: mock query failure", vector.ErrConnection)
	}
	if len(m.Results) < topK {
		return m.Results, nil
	}
	return m.Results[:topK], nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}
