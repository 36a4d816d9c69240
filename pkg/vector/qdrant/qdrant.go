// Package qdrant provides a Qdrant vector database driver implementation.
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/vector"
)

const (
	// DefaultCollectionName is the default collection for storing document chunks.
	DefaultCollectionName = "documents"

	// DefaultDimensions matches the embedding model's output size.
	DefaultDimensions = 3072

	defaultGRPCPort = 6334
)

// Driver implements vector.Driver using Qdrant's gRPC API.
type Driver struct {
	client         *qdrant.Client
	collectionName string
	dimensions     uint64
	logger         *zap.Logger
}

// Config holds configuration for the Qdrant driver.
type Config struct {
	// URL is the Qdrant server URL (e.g., "http://localhost:6334").
	URL string

	// CollectionName is the collection to use.
	// Defaults to DefaultCollectionName if empty.
	CollectionName string

	// Dimensions is the vector size the collection is created with.
	// Defaults to DefaultDimensions if zero.
	Dimensions uint64
}

// NewDriver creates a new Qdrant vector driver. The collection is not touched
// until Ensure is called.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("qdrant URL is required")
	}

	host, port, err := splitHostPort(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing qdrant URL %q: %w", c.URL, err)
	}

	collectionName := c.CollectionName
	if collectionName == "" {
		collectionName = DefaultCollectionName
	}

	dimensions := c.Dimensions
	if dimensions == 0 {
		dimensions = DefaultDimensions
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating qdrant client: %v", vector.ErrConnection, err)
	}

	return &Driver{
		client:         client,
		collectionName: collectionName,
		dimensions:     dimensions,
		logger:         logger,
	}, nil
}

// Ensure creates the collection with cosine distance if it does not exist.
// Only the "does not exist" case is recovered; connectivity failures propagate.
func (d *Driver) Ensure(ctx context.Context) error {
	exists, err := d.client.CollectionExists(ctx, d.collectionName)
	if err != nil {
		return fmt.Errorf("%w: checking collection %q: %v", vector.ErrConnection, d.collectionName, err)
	}
	if exists {
		return nil
	}

	err = d.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: d.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     d.dimensions,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: creating collection %q: %v", vector.ErrConnection, d.collectionName, err)
	}

	d.logger.Info("created qdrant collection",
		zap.String("collection", d.collectionName),
		zap.Uint64("dimensions", d.dimensions),
	)

	return nil
}

// Add upserts documents into the collection. Qdrant rejects vectors whose
// dimensionality differs from the collection's declared size.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		header := make(map[string]any, len(doc.Payload.Header))
		for k, v := range doc.Payload.Header {
			header[k] = v
		}

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(doc.ID),
			Vectors: qdrant.NewVectors(doc.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"header":       header,
				"page_content": doc.Payload.PageContent,
			}),
		}
	}

	_, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("%w: upserting %d points: %v", vector.ErrConnection, len(points), err)
	}

	d.logger.Debug("upserted points",
		zap.String("collection", d.collectionName),
		zap.Int("count", len(points)),
	)

	return nil
}

// Query returns the topK nearest points by cosine similarity, payloads included.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 3
	}

	points, err := d.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: d.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: querying collection %q: %v", vector.ErrConnection, d.collectionName, err)
	}

	results := make([]vector.QueryResult, 0, len(points))
	for _, p := range points {
		results = append(results, vector.QueryResult{
			Payload: payloadFromQdrant(p.Payload),
			Score:   p.Score,
		})
	}

	d.logger.Debug("queried collection",
		zap.String("collection", d.collectionName),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Close releases the underlying gRPC connection.
func (d *Driver) Close() error {
	return d.client.Close()
}

func payloadFromQdrant(fields map[string]*qdrant.Value) vector.Payload {
	payload := vector.Payload{
		Header: map[string]string{},
	}

	if v, ok := fields["page_content"]; ok {
		payload.PageContent = v.GetStringValue()
	}

	if v, ok := fields["header"]; ok {
		if s := v.GetStructValue(); s != nil {
			for k, hv := range s.GetFields() {
				payload.Header[k] = hv.GetStringValue()
			}
		}
	}

	return payload
}

// splitHostPort extracts the gRPC host and port from a URL-ish target.
// Bare "host:port" and full "scheme://host:port" forms are both accepted.
func splitHostPort(raw string) (string, int, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		// Try again assuming a missing scheme.
		u, err = url.Parse("http://" + raw)
		if err != nil {
			return "", 0, err
		}
	}

	host := u.Hostname()
	if host == "" {
		return "", 0, fmt.Errorf("no host in %q", raw)
	}

	port := defaultGRPCPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return "", 0, fmt.Errorf("invalid port %q", p)
		}
	}

	return host, port, nil
}

var _ vector.Driver = (*Driver)(nil)
