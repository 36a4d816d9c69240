package api

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/vector"
)

// Fixed external error messages. Internal detail is logged, never returned:
// clients cannot distinguish a bad upload from a downstream outage.
const (
	msgChunkPDFFailed    = "Error processing PDF"
	msgUploadChunkFailed = "Error uploading chunks"
	msgChatFailed        = "Error generating chat response"
)

// ErrorResponse is the body returned on every failure path.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ChunkPDFResponse is the body returned by POST /chunkpdf.
type ChunkPDFResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	MarkdownChunks []string `json:"markdown_chunks"`
	Summaries      []string `json:"summaries"`
}

// UploadChunkRequest is the body accepted by POST /uploadchunk. The metadata
// entries are the section objects returned by /chunkpdf, aligned positionally
// with the summaries.
type UploadChunkRequest struct {
	Summaries []string         `json:"summaries"`
	Metadata  []vector.Payload `json:"metadata"`
}

// UploadChunkResponse is the body returned by POST /uploadchunk.
type UploadChunkResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleChunkPDF saves the uploaded file to a scratch location, splits it into
// markdown sections, and summarizes each section. Nothing is stored in the
// vector collection; that is a separate, explicit /uploadchunk call.
func (s *Server) handleChunkPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "file field is required",
		})
	}

	// Scratch path keyed by original filename. Concurrent uploads of
	// same-named files collide; see DESIGN.md.
	path := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, path); err != nil {
		s.logger.Error("saving uploaded file",
			zap.String("path", path),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: msgChunkPDFFailed})
	}

	sections, err := s.chunker.Sections(path)
	if err != nil {
		s.logger.Error("chunking document",
			zap.String("path", path),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: msgChunkPDFFailed})
	}

	bodies := make([]string, len(sections))
	for i, section := range sections {
		bodies[i] = section.Body
	}

	summaries, err := s.chunker.Summarize(c.Context(), bodies)
	if err != nil {
		s.logger.Error("summarizing sections",
			zap.Int("sections", len(sections)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: msgChunkPDFFailed})
	}

	return c.Status(fiber.StatusCreated).JSON(ChunkPDFResponse{
		Success:        true,
		Message:        "PDF processed successfully.",
		MarkdownChunks: bodies,
		Summaries:      summaries,
	})
}

// handleUploadChunk embeds the given summaries and stores them with their
// section payloads in the vector collection.
func (s *Server) handleUploadChunk(c *fiber.Ctx) error {
	var req UploadChunkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "invalid request body",
		})
	}

	if err := s.uploader.Upsert(c.Context(), req.Summaries, req.Metadata); err != nil {
		if errors.Is(err, vector.ErrMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Detail: "summaries and metadata length mismatch",
			})
		}

		s.logger.Error("uploading chunks",
			zap.Int("count", len(req.Summaries)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: msgUploadChunkFailed})
	}

	return c.Status(fiber.StatusCreated).JSON(UploadChunkResponse{
		Success: true,
		Message: "Chunks uploaded successfully.",
	})
}

// handleChat runs the workflow once for the given question.
func (s *Server) handleChat(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "query parameter is required",
		})
	}

	generation, err := s.answerer.Answer(c.Context(), query)
	if err != nil {
		s.logger.Error("generating chat response",
			zap.String("query", query),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: msgChatFailed})
	}

	return c.JSON(ChatResponse{
		Success:  true,
		Message:  "Chat response generated successfully.",
		Response: generation,
	})
}
