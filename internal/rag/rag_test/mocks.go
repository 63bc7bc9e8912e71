package rag_test

import (
	"context"

	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
)

// MockVectorStore implements vectorDB.Store
type MockVectorStore struct {
	// Control fields to simulate different behaviors
	OnQuery          func(ctx context.Context, vector []float32, limit uint64) ([]commonModels.SearchMatch, error)
	OnUpsertBatch    func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	OnDeleteBySource func(ctx context.Context, filename string) error
	OnCountBySource  func(ctx context.Context, filename string) (uint64, error)
}

func (m *MockVectorStore) EnsureCollection(ctx context.Context) error {
	return nil
}

func (m *MockVectorStore) Query(ctx context.Context, vector []float32, limit uint64) ([]commonModels.SearchMatch, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, vector, limit)
	}
	return []commonModels.SearchMatch{{Source: "manual.pdf", Text: "default context", Score: 0.9}}, nil
}

func (m *MockVectorStore) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, chunks, vectors)
	}
	return nil
}

func (m *MockVectorStore) DeleteBySource(ctx context.Context, filename string) error {
	if m.OnDeleteBySource != nil {
		return m.OnDeleteBySource(ctx, filename)
	}
	return nil
}

func (m *MockVectorStore) CountBySource(ctx context.Context, filename string) (uint64, error) {
	if m.OnCountBySource != nil {
		return m.OnCountBySource(ctx, filename)
	}
	return 0, nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching input size
	return make([][]float32, len(texts)), nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, question string, matches []string, history []chatModel.Turn) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, matches []string, history []chatModel.Turn) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, matches, history)
	}
	return "mocked llm response", nil
}
