// Package store glues the embedder and the vector driver into the chunk
// storage and retrieval adapter.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/embeddings"
	"github.com/docfold/docqa/pkg/vector"
)

// DefaultTopK is the number of hits returned when the caller passes zero.
const DefaultTopK = 3

// Store embeds summaries and upserts them into the vector collection, and
// answers similarity queries. The same embedder must be used for storage and
// querying or retrieval quality is undefined.
type Store struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	logger   *zap.Logger
}

// New creates a Store from an injected embedder and vector driver.
func New(embedder embeddings.Embedder, driver vector.Driver, logger *zap.Logger) *Store {
	return &Store{
		embedder: embedder,
		driver:   driver,
		logger:   logger,
	}
}

// Ensure creates the backing collection if absent. Idempotent.
func (s *Store) Ensure(ctx context.Context) error {
	return s.driver.Ensure(ctx)
}

// Upsert embeds each summary and stores one record per (summary, section)
// pair: a fresh uuid, the summary's embedding, and a payload carrying the
// section's header metadata and original body text. The summary itself is
// not stored. Mismatched input lengths fail with vector.ErrMismatch rather
// than truncating.
func (s *Store) Upsert(ctx context.Context, summaries []string, sections []vector.Payload) error {
	if len(summaries) != len(sections) {
		return fmt.Errorf("%w: %d summaries, %d sections", vector.ErrMismatch, len(summaries), len(sections))
	}

	docs := make([]vector.Document, len(summaries))
	for i, summary := range summaries {
		embedding, err := s.embedder.Embed(ctx, summary)
		if err != nil {
			return fmt.Errorf("embedding summary %d of %d: %w", i+1, len(summaries), err)
		}

		docs[i] = vector.Document{
			ID:        uuid.NewString(),
			Embedding: embedding,
			Payload:   sections[i],
		}
	}

	if err := s.driver.Add(ctx, docs); err != nil {
		return fmt.Errorf("storing %d chunks: %w", len(docs), err)
	}

	s.logger.Info("upserted chunks", zap.Int("count", len(docs)))

	return nil
}

// Search embeds the query with the storage embedder and returns the topK
// nearest chunks, ordered by descending similarity.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.driver.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}

	s.logger.Debug("searched chunks",
		zap.Int("topK", topK),
		zap.Int("results", len(results)),
	)

	return results, nil
}
