// Package servecmder provides the serve command that runs the API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docfold/docqa/api"
	"github.com/docfold/docqa/pkg/chunker"
	"github.com/docfold/docqa/pkg/config"
	"github.com/docfold/docqa/pkg/llm/groq"
	"github.com/docfold/docqa/pkg/logger"
	"github.com/docfold/docqa/pkg/store"
	"github.com/docfold/docqa/pkg/vector/qdrant"
	"github.com/docfold/docqa/pkg/workflow"

	geminiembed "github.com/docfold/docqa/pkg/embeddings/gemini"
)

type serveCommander struct {
	listen string
	debug  bool
	logger *zap.Logger
}

const serveLongDesc string = `Run the docqa API server.

Requires GROQ_MODEL, GROQ_API_KEY, GOOGLE_API_KEY, GOOGLE_EMBEDDINGS_MODEL,
and QDRANT_URL in the environment. The server refuses to start when any of
them is missing.`

const serveShortDesc string = "Run the docqa API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (overrides LISTEN_ADDR)")

	return cmd
}

func (c *serveCommander) run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.listen != "" {
		cfg.ListenAddr = c.listen
	}

	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	embedder, err := geminiembed.NewEmbedder(geminiembed.EmbedderConfig{
		APIKey:     cfg.GoogleAPIKey,
		Model:      cfg.GoogleEmbeddingsModel,
		Dimensions: int(cfg.EmbeddingDimensions),
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	driver, err := qdrant.NewDriver(qdrant.Config{
		URL:            cfg.QdrantURL,
		CollectionName: cfg.QdrantCollection,
		Dimensions:     cfg.EmbeddingDimensions,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("creating vector driver: %w", err)
	}
	defer driver.Close()

	ensureCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := driver.Ensure(ensureCtx); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	completer, err := groq.NewCompleter(groq.Config{
		APIKey: cfg.GroqAPIKey,
		Model:  cfg.GroqModel,
	})
	if err != nil {
		return fmt.Errorf("creating completer: %w", err)
	}

	chunks := store.New(embedder, driver, c.logger)
	flow := workflow.New(chunks, completer, cfg.SearchTopK, c.logger)
	docs := chunker.New(chunker.NewPDFConverter(), completer, c.logger)

	server := api.NewServer(api.Config{ListenAddr: cfg.ListenAddr}, docs, chunks, flow, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
