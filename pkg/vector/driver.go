// Package vector provides interfaces and types for vector storage of document chunks.
package vector

import "context"

// Payload is the metadata stored alongside each embedding and returned on search.
// It carries the originating section's header metadata and the original body
// text. The summary that produced the embedding is not stored.
type Payload struct {
	// Header maps heading labels ("Header 1".."Header 3") to heading text.
	Header map[string]string `json:"header"`

	// PageContent is the original markdown section body, headers included.
	PageContent string `json:"page_content"`
}

// Document represents a stored item with its embedding and payload.
type Document struct {
	// ID is a unique identifier, generated at upsert time.
	ID string

	// Embedding is the vector representation of the document's summary.
	Embedding []float32

	// Payload is the metadata returned on search.
	Payload Payload
}

// QueryResult represents a search hit with its similarity score.
type QueryResult struct {
	Payload Payload

	// Score is the cosine similarity (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings in a single
// named collection.
type Driver interface {
	// Ensure creates the collection if it does not exist. It is idempotent:
	// a second call against an existing collection is a no-op.
	Ensure(ctx context.Context) error

	// Add stores documents with their embeddings. Documents with an existing
	// ID are overwritten.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// ordered by descending score.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Close releases any resources held by the driver.
	Close() error
}
