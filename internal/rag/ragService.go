package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
	"github.com/cwsplatform/ecom-assist/internal/metrics"
	"github.com/cwsplatform/ecom-assist/internal/rag/chunker"
	"github.com/cwsplatform/ecom-assist/internal/rag/embedding"
	"github.com/cwsplatform/ecom-assist/internal/rag/extract"
	"github.com/cwsplatform/ecom-assist/internal/rag/llm"
	"github.com/cwsplatform/ecom-assist/internal/rag/vectorDB"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
)

// Input errors the handlers map to 400. Everything else is internal.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document contains no extractable text")
)

// Service is the public contract; handlers and MCP tools only ever see this.
type Service interface {
	Chat(ctx context.Context, sessionID string, message string) (string, error)
	IngestDocument(ctx context.Context, path string, filename string) (commonModels.IngestReport, error)
	DeleteDocument(ctx context.Context, filename string) error
	ListDocuments(ctx context.Context) ([]commonModels.DocumentInfo, error)
	SearchChunks(ctx context.Context, query string, limit uint64) ([]commonModels.SearchMatch, error)
}

type service struct {
	vectorDB    vectorDB.Store
	llmProvider llm.Provider
	embedder    embedding.Embedder
	sessions    chatModel.SessionStore
	manifest    commonModels.ManifestStore
	logger      *logger_i.Logger
}

// NewService wires the pipeline. Everything comes in as an interface so tests
// can swap any stage for a mock.
func NewService(vector vectorDB.Store, llm llm.Provider, em embedding.Embedder,
	sessions chatModel.SessionStore, manifest commonModels.ManifestStore) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		sessions:    sessions,
		manifest:    manifest,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) Chat(ctx context.Context, sessionID string, message string) (string, error) {
	inMethodLogger := s.logger.WithTrace(ctx).With("sessionId", sessionID)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	queryVector, err := s.executeEmbeddingStep(processContext, message)
	if err != nil {
		return "", fmt.Errorf("embedding: %w", err)
	}

	matches, err := s.executeVectorSearchStep(processContext, queryVector)
	if err != nil {
		return "", fmt.Errorf("vector search: %w", err)
	}

	// Relevance gate: when nothing retrieved clears the threshold, the model
	// has no grounding to work with and is never invoked.
	relevant := filterRelevant(matches)
	if len(relevant) == 0 {
		inMethodLogger.Info("Relevance gate rejected query", "retrieved", len(matches))
		metrics.IncrementGateRejections()
		return config.OutOfScopeMessage, nil
	}

	history, err := s.sessions.RecentTurns(processContext, sessionID, config.HistoryTurns)
	if err != nil {
		// Degraded continuity beats a failed answer
		inMethodLogger.Warn("Could not load session history", "error", err.Error())
		history = nil
	}

	answer, err := s.executeLLMStep(processContext, message, matchTexts(relevant), history)
	if err != nil {
		return "", fmt.Errorf("llm generation: %w", err)
	}

	s.recordTurns(processContext, inMethodLogger, sessionID, message, answer)
	return answer, nil
}

func (s *service) IngestDocument(ctx context.Context, path string, filename string) (commonModels.IngestReport, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	inMethodLogger := s.logger.WithTrace(ctx).With("filename", filename)
	report := commonModels.IngestReport{Filename: filename}

	format := extract.DetectFormat(filename)
	if format == commonModels.ERR {
		return report, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	text, err := extract.ExtractFile(path, format)
	if err != nil {
		return report, fmt.Errorf("extraction failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return report, ErrEmptyDocument
	}

	chunks := buildChunks(filename, format, chunker.Split(text, config.ChunkSize, config.ChunkOverlap))
	inMethodLogger.Info("Document chunked", "chunks", len(chunks))

	if err := s.vectorDB.EnsureCollection(ctx); err != nil {
		return report, fmt.Errorf("collection unavailable: %w", err)
	}

	// Replace semantics: clear the previous version before indexing, so a
	// re-upload with fewer chunks leaves no stale tail behind.
	if err := s.vectorDB.DeleteBySource(ctx, filename); err != nil {
		return report, fmt.Errorf("could not clear previous version: %w", err)
	}

	for batchStart := 0; batchStart < len(chunks); batchStart += config.UpsertBatchSize {
		batchEnd := min(batchStart+config.UpsertBatchSize, len(chunks))
		batch := chunks[batchStart:batchEnd]

		if err := s.indexBatch(ctx, batch); err != nil {
			// A failed batch loses its chunks, not the document
			inMethodLogger.Error("Batch failed, continuing", "from", batchStart, "error", err.Error())
			report.Failed += len(batch)
			continue
		}
		report.Stored += len(batch)
	}

	if report.Stored == 0 {
		metrics.AddSkippedChunks(report.Failed)
		return report, errors.New("every batch failed, nothing indexed")
	}

	if err := s.manifest.Add(ctx, filename); err != nil {
		return report, fmt.Errorf("manifest update failed: %w", err)
	}

	metrics.IncrementDocumentsIngested()
	if report.Failed > 0 {
		metrics.AddSkippedChunks(report.Failed)
		inMethodLogger.Warn("Ingest finished partially", "stored", report.Stored, "failed", report.Failed)
	}
	return report, nil
}

func (s *service) DeleteDocument(ctx context.Context, filename string) error {
	if err := s.vectorDB.DeleteBySource(ctx, filename); err != nil {
		return fmt.Errorf("vector delete failed: %w", err)
	}
	if err := s.manifest.Remove(ctx, filename); err != nil {
		return fmt.Errorf("manifest remove failed: %w", err)
	}
	s.logger.WithTrace(ctx).Info("Document deleted", "filename", filename)
	return nil
}

func (s *service) ListDocuments(ctx context.Context) ([]commonModels.DocumentInfo, error) {
	names, err := s.manifest.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("manifest list failed: %w", err)
	}

	infos := make([]commonModels.DocumentInfo, 0, len(names))
	for _, name := range names {
		count, err := s.vectorDB.CountBySource(ctx, name)
		if err != nil {
			s.logger.WithTrace(ctx).Warn("Could not count chunks", "filename", name, "error", err.Error())
		}
		infos = append(infos, commonModels.DocumentInfo{Name: name, Chunks: count})
	}
	return infos, nil
}

func (s *service) SearchChunks(ctx context.Context, query string, limit uint64) ([]commonModels.SearchMatch, error) {
	if limit == 0 || limit > config.TopK {
		limit = config.TopK
	}

	queryVector, err := s.executeEmbeddingStep(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	return s.vectorDB.Query(ctx, queryVector, limit)
}
