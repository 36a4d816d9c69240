// Package workflow runs the retrieve-then-generate pipeline that answers a
// single question over the stored chunks.
package workflow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/llm"
	"github.com/docfold/docqa/pkg/vector"
)

// Node names of the linear graph. Start and End are virtual.
const (
	Start        = "START"
	End          = "END"
	NodeRetrieve = "retrieve"
	NodeGenerate = "generate"
)

// generatePrompt is the fixed RAG template. The "say you don't know"
// instruction keeps the model from fabricating facts when retrieval misses.
const generatePrompt = `You are an assistant for question-answering tasks. Use the following pieces of retrieved context
to answer the question. If you don't know the answer, just say that you don't know.
Question: %s
Context: %s
Answer:`

// Retriever searches the stored chunks for the question.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]vector.QueryResult, error)
}

// State is the transient per-question record threaded through the graph.
// A fresh State is created for every question; nothing survives between calls.
type State struct {
	Question   string
	Documents  []vector.QueryResult
	Generation string
}

// NodeFunc mutates the state in place and returns an error to abort the run.
type NodeFunc func(ctx context.Context, state *State) error

// Graph is a directed pipeline of named nodes with single outgoing edges.
type Graph struct {
	nodes map[string]NodeFunc
	edges map[string]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]NodeFunc),
		edges: make(map[string]string),
	}
}

// AddNode registers a named step.
func (g *Graph) AddNode(name string, fn NodeFunc) {
	g.nodes[name] = fn
}

// AddEdge links from's completion to to's execution.
func (g *Graph) AddEdge(from, to string) {
	g.edges[from] = to
}

// Run executes the graph from Start to End in a single synchronous pass.
// Any node failure aborts the run and propagates as one error.
func (g *Graph) Run(ctx context.Context, state *State) error {
	current := g.edges[Start]
	steps := 0
	for current != "" && current != End {
		// Guard against wiring mistakes producing a cycle.
		if steps++; steps > len(g.nodes) {
			return fmt.Errorf("workflow exceeded %d steps, cycle in graph", len(g.nodes))
		}

		fn, ok := g.nodes[current]
		if !ok {
			return fmt.Errorf("workflow edge points to unknown node %q", current)
		}

		if err := fn(ctx, state); err != nil {
			return fmt.Errorf("workflow step %q: %w", current, err)
		}

		current = g.edges[current]
	}
	return nil
}

// Workflow is the compiled retrieve -> generate pipeline.
type Workflow struct {
	graph  *Graph
	logger *zap.Logger
}

// New compiles the two-node pipeline over the given retriever and completer.
func New(retriever Retriever, completer llm.Completer, topK int, logger *zap.Logger) *Workflow {
	g := NewGraph()

	g.AddNode(NodeRetrieve, func(ctx context.Context, state *State) error {
		documents, err := retriever.Search(ctx, state.Question, topK)
		if err != nil {
			return err
		}
		state.Documents = documents
		return nil
	})

	g.AddNode(NodeGenerate, func(ctx context.Context, state *State) error {
		prompt := fmt.Sprintf(generatePrompt, state.Question, formatContext(state.Documents))
		generation, err := completer.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		state.Generation = generation
		return nil
	})

	g.AddEdge(Start, NodeRetrieve)
	g.AddEdge(NodeRetrieve, NodeGenerate)
	g.AddEdge(NodeGenerate, End)

	return &Workflow{graph: g, logger: logger}
}

// Answer runs the pipeline once for the question and returns the generation.
func (w *Workflow) Answer(ctx context.Context, question string) (string, error) {
	state := &State{Question: question}

	if err := w.graph.Run(ctx, state); err != nil {
		return "", err
	}

	w.logger.Debug("answered question",
		zap.Int("documents", len(state.Documents)),
		zap.Int("generation_len", len(state.Generation)),
	)

	return state.Generation, nil
}

// formatContext renders retrieved chunks for the generation prompt, headers
// first so the model can attribute content to its section.
func formatContext(documents []vector.QueryResult) string {
	if len(documents) == 0 {
		return "(no relevant context found)"
	}

	var b strings.Builder
	for i, doc := range documents {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		for _, label := range []string{"Header 1", "Header 2", "Header 3"} {
			if title, ok := doc.Payload.Header[label]; ok {
				fmt.Fprintf(&b, "%s: %s\n", label, title)
			}
		}
		b.WriteString(doc.Payload.PageContent)
	}
	return b.String()
}
