// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Required environment variables. Absence of any of these prevents startup;
// there are no defaults for model identifiers, keys, or the store URL.
const (
	keyGroqModel             = "GROQ_MODEL"
	keyGroqAPIKey            = "GROQ_API_KEY"
	keyGoogleAPIKey          = "GOOGLE_API_KEY"
	keyGoogleEmbeddingsModel = "GOOGLE_EMBEDDINGS_MODEL"
	keyQdrantURL             = "QDRANT_URL"
)

// Optional environment variables with defaults.
const (
	keyListenAddr       = "LISTEN_ADDR"
	keyQdrantCollection = "QDRANT_COLLECTION"
	keyEmbeddingDims    = "EMBEDDING_DIMENSIONS"
	keySearchTopK       = "SEARCH_TOP_K"

	defaultListenAddr       = ":8000"
	defaultQdrantCollection = "documents"
	defaultEmbeddingDims    = 3072
	defaultSearchTopK       = 3
)

var requiredKeys = []string{
	keyGroqModel,
	keyGroqAPIKey,
	keyGoogleAPIKey,
	keyGoogleEmbeddingsModel,
	keyQdrantURL,
}

// Config holds the full service configuration.
type Config struct {
	// GroqModel and GroqAPIKey select and authenticate the chat model used
	// for summarization and answer generation.
	GroqModel  string
	GroqAPIKey string

	// GoogleAPIKey and GoogleEmbeddingsModel select and authenticate the
	// embedding model. The same model must serve storage and querying.
	GoogleAPIKey          string
	GoogleEmbeddingsModel string

	// QdrantURL is the vector database connection URL.
	QdrantURL string

	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// QdrantCollection is the name of the vector collection.
	QdrantCollection string

	// EmbeddingDimensions is the vector size shared by the embedding model
	// and the collection.
	EmbeddingDimensions uint64

	// SearchTopK is the number of chunks retrieved per question.
	SearchTopK int
}

// Load reads configuration from the environment. It returns an error naming
// every missing required variable so startup fails fast rather than lazily.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(keyListenAddr, defaultListenAddr)
	v.SetDefault(keyQdrantCollection, defaultQdrantCollection)
	v.SetDefault(keyEmbeddingDims, defaultEmbeddingDims)
	v.SetDefault(keySearchTopK, defaultSearchTopK)

	var missing []string
	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return &Config{
		GroqModel:             v.GetString(keyGroqModel),
		GroqAPIKey:            v.GetString(keyGroqAPIKey),
		GoogleAPIKey:          v.GetString(keyGoogleAPIKey),
		GoogleEmbeddingsModel: v.GetString(keyGoogleEmbeddingsModel),
		QdrantURL:             v.GetString(keyQdrantURL),
		ListenAddr:            v.GetString(keyListenAddr),
		QdrantCollection:      v.GetString(keyQdrantCollection),
		EmbeddingDimensions:   v.GetUint64(keyEmbeddingDims),
		SearchTopK:            v.GetInt(keySearchTopK),
	}, nil
}
