package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/chunker"
	"github.com/docfold/docqa/pkg/vector"
)

// Chunker converts an uploaded document into markdown sections and summaries.
type Chunker interface {
	Sections(path string) ([]chunker.Section, error)
	Summarize(ctx context.Context, bodies []string) ([]string, error)
}

// Uploader stores summarized sections in the vector collection.
type Uploader interface {
	Upsert(ctx context.Context, summaries []string, sections []vector.Payload) error
}

// Answerer runs the retrieve-then-generate workflow for one question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Server is the HTTP API server for the question-answering pipeline.
type Server struct {
	config   Config
	chunker  Chunker
	uploader Uploader
	answerer Answerer
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server. Collaborators are injected so tests can
// substitute fakes without process-wide state.
func NewServer(config Config, chunker Chunker, uploader Uploader, answerer Answerer, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		chunker:  chunker,
		uploader: uploader,
		answerer: answerer,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/chunkpdf", s.handleChunkPDF)
	app.Post("/uploadchunk", s.handleUploadChunk)
	app.Post("/chat", s.handleChat)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
