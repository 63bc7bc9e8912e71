package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
	"github.com/cwsplatform/ecom-assist/internal/metrics"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
)

func (s *service) executeEmbeddingStep(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, text)
}

func (s *service) executeVectorSearchStep(ctx context.Context, vector []float32) ([]commonModels.SearchMatch, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Query(ctx, vector, config.TopK)
}

func (s *service) executeLLMStep(ctx context.Context, question string, matches []string, history []chatModel.Turn) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, question, matches, history)
}

// indexBatch embeds one batch of chunks and writes it to the vector store.
func (s *service) indexBatch(ctx context.Context, batch []commonModels.DocChunk) error {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	start := time.Now()
	vectors, err := s.embedder.BatchEmbedding(ctx, texts)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return fmt.Errorf("batch embedding: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
	}

	start = time.Now()
	err = s.vectorDB.UpsertBatch(ctx, batch, vectors)
	metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start))
	return err
}

// recordTurns appends the exchange to the transcript. Failures here degrade
// future continuity but never fail an already generated answer.
func (s *service) recordTurns(ctx context.Context, log *logger_i.Logger, sessionID string, question string, answer string) {
	if err := s.sessions.AppendTurn(ctx, sessionID, chatModel.Turn{Role: chatModel.RoleUser, Text: question}); err != nil {
		log.Warn("Could not persist user turn", "error", err.Error())
		return
	}
	if err := s.sessions.AppendTurn(ctx, sessionID, chatModel.Turn{Role: chatModel.RoleAssistant, Text: answer}); err != nil {
		log.Warn("Could not persist assistant turn", "error", err.Error())
	}
}

func filterRelevant(matches []commonModels.SearchMatch) []commonModels.SearchMatch {
	var relevant []commonModels.SearchMatch
	for _, m := range matches {
		if m.Score >= config.RelevanceThreshold {
			relevant = append(relevant, m)
		}
	}
	return relevant
}

func matchTexts(matches []commonModels.SearchMatch) []string {
	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	return texts
}

// sanitizeFilename keeps chunk keys readable and shell-safe.
func sanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func buildChunks(filename string, format commonModels.DocFormat, parts []string) []commonModels.DocChunk {
	doc := commonModels.Document{
		Name:       filename,
		UploadedAt: time.Now().UTC(),
		Format:     format,
	}
	sanitized := sanitizeFilename(filename)

	chunks := make([]commonModels.DocChunk, len(parts))
	for i, text := range parts {
		chunks[i] = commonModels.DocChunk{
			Doc:      doc,
			ChunkKey: fmt.Sprintf("%s_%d", sanitized, i),
			Text:     text,
			Order:    i,
		}
	}
	return chunks
}
