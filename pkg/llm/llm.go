// Package llm defines the completion interface used for summarization and
// answer generation.
package llm

import "context"

// Completer sends a single-turn prompt to a language model and returns the
// generated text.
type Completer interface {
	// Complete sends the prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)
}
