// Package chunker converts source documents into summarized markdown sections.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/llm"
)

// summaryPrompt instructs the model to strip markdown from plain text and to
// condense tables into prose while keeping their key data points.
const summaryPrompt = `You are an assistant tasked with processing text and tables.

- For **plain text** input: return the text exactly as it is, but remove all markdown formatting (no headers, bold, italics, code blocks, or lists). Preserve the original wording and meaning.
- For **tables**: generate a concise summary that preserves all key details, important headers, and critical data points from the table.

Respond only with the requested output, without any additional comments or introductions.
Do not start your message with phrases like "Here is" or "Summary:".
Just provide the plain text or table summary as requested.

Input chunk:
%s`

// Chunker converts documents to markdown sections and summarizes them.
type Chunker struct {
	converter Converter
	completer llm.Completer
	logger    *zap.Logger
}

// New creates a Chunker from an injected converter and completer.
func New(converter Converter, completer llm.Completer, logger *zap.Logger) *Chunker {
	return &Chunker{
		converter: converter,
		completer: completer,
		logger:    logger,
	}
}

// Sections converts the document at path to markdown and splits it into
// header-delimited sections, in document order.
func (c *Chunker) Sections(path string) ([]Section, error) {
	markdown, err := c.converter.ToMarkdown(path)
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}

	sections := SplitByHeaders([]byte(markdown))

	c.logger.Debug("split document",
		zap.String("path", path),
		zap.Int("sections", len(sections)),
	)

	return sections, nil
}

// Summarize produces one summary per body, order preserving, with one model
// call per input. The first failure aborts the whole batch: callers never see
// a partial summary list.
func (c *Chunker) Summarize(ctx context.Context, bodies []string) ([]string, error) {
	summaries := make([]string, 0, len(bodies))
	for i, body := range bodies {
		summary, err := c.completer.Complete(ctx, fmt.Sprintf(summaryPrompt, body))
		if err != nil {
			return nil, fmt.Errorf("summarizing section %d of %d: %w", i+1, len(bodies), err)
		}
		summaries = append(summaries, strings.TrimSpace(summary))
	}
	return summaries, nil
}
