// Package groq implements pkg/llm's Completer against Groq's
// OpenAI-compatible Chat Completions API.
package groq

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docfold/docqa/pkg/llm"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// defaultTemperature keeps generation mildly creative without drifting
	// from the retrieved context.
	defaultTemperature = 0.5
)

// Completer wraps the Groq chat completions API.
type Completer struct {
	client *openai.Client
	model  string
}

// Config holds configuration for the Groq completer.
type Config struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// Model is the chat model identifier. Required.
	Model string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL if empty.
	BaseURL string
}

// NewCompleter creates a new Groq-backed completer.
func NewCompleter(cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("groq model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultBaseURL
	}

	return &Completer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: defaultTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq completion: empty choices")
	}

	return resp.Choices[0].Message.Content, nil
}

var _ llm.Completer = (*Completer)(nil)
