package vector

import "errors"

var (
	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrConnection is returned when the vector store connection fails.
	ErrConnection = errors.New("vector store connection failed")

	// ErrMismatch is returned when paired sequences differ in length.
	ErrMismatch = errors.New("summaries and sections length mismatch")
)
