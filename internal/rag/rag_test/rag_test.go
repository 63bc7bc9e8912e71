package rag_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/data/store"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
	"github.com/cwsplatform/ecom-assist/internal/rag"
)

func newTestService(v *MockVectorStore, l *MockLLM, e *MockEmbedder) (rag.Service, *store.InMemorySessionStore, *store.InMemoryManifestStore) {
	sessions := store.InitInMemorySessionStore()
	manifest := store.InitInMemoryManifestStore()
	return rag.NewService(v, l, e, sessions, manifest), sessions, manifest
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestChat_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorStore, l *MockLLM)
		expectedAnswer string
		wantErr        bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []chatModel.Turn) (string, error) {
					return "final answer", nil
				}
			},
			expectedAnswer: "final answer",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorStore, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			wantErr: true,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorStore, l *MockLLM) {
				v.OnQuery = func(ctx context.Context, vec []float32, limit uint64) ([]commonModels.SearchMatch, error) {
					return nil, errors.New("db timeout")
				}
			},
			wantErr: true,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []chatModel.Turn) (string, error) {
					return "", errors.New("provider down")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorStore{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s, _, _ := newTestService(mVec, mLLM, mEmbed)

			answer, err := s.Chat(testCtx(), config.GuestSessionID, "test question")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if answer != tt.expectedAnswer {
				t.Errorf("Answer got %q, want %q", answer, tt.expectedAnswer)
			}
		})
	}
}

func TestChat_RelevanceGateShortCircuit(t *testing.T) {
	llmInvoked := false
	mVec := &MockVectorStore{
		OnQuery: func(ctx context.Context, vec []float32, limit uint64) ([]commonModels.SearchMatch, error) {
			return []commonModels.SearchMatch{
				{Source: "manual.pdf", Text: "barely related", Score: 0.30},
				{Source: "manual.pdf", Text: "noise", Score: 0.12},
			}, nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, m []string, h []chatModel.Turn) (string, error) {
			llmInvoked = true
			return "should never happen", nil
		},
	}

	s, sessions, _ := newTestService(mVec, mLLM, &MockEmbedder{})

	answer, err := s.Chat(testCtx(), "s1", "what is the weather")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != config.OutOfScopeMessage {
		t.Errorf("Answer got %q, want the out-of-scope message", answer)
	}
	if llmInvoked {
		t.Error("LLM was invoked despite every match scoring below the threshold")
	}

	// A rejected query must not pollute the transcript
	turns, _ := sessions.RecentTurns(testCtx(), "s1", config.HistoryTurns)
	if len(turns) != 0 {
		t.Errorf("transcript got %d turns, want 0", len(turns))
	}
}

func TestChat_SessionIsolationAndGuestSharing(t *testing.T) {
	var lastHistory []chatModel.Turn
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, m []string, h []chatModel.Turn) (string, error) {
			lastHistory = h
			return "answer to: " + q, nil
		},
	}

	s, _, _ := newTestService(&MockVectorStore{}, mLLM, &MockEmbedder{})
	ctx := testCtx()

	if _, err := s.Chat(ctx, "alice", "how do refunds work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A different session must start with an empty transcript
	if _, err := s.Chat(ctx, "bob", "how do coupons work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lastHistory) != 0 {
		t.Errorf("bob saw %d turns of history, want 0", len(lastHistory))
	}

	// Unkeyed callers share the guest transcript
	if _, err := s.Chat(ctx, config.GuestSessionID, "first guest question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Chat(ctx, config.GuestSessionID, "second guest question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lastHistory) != 2 {
		t.Fatalf("second guest call saw %d turns, want 2", len(lastHistory))
	}
	if lastHistory[0].Role != chatModel.RoleUser || lastHistory[0].Text != "first guest question" {
		t.Errorf("unexpected first history turn: %+v", lastHistory[0])
	}
}

func writeTestFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestDocument_ReplacesPreviousVersion(t *testing.T) {
	var deleted []string
	var upserted []commonModels.DocChunk
	mVec := &MockVectorStore{
		OnDeleteBySource: func(ctx context.Context, filename string) error {
			deleted = append(deleted, filename)
			return nil
		},
		OnUpsertBatch: func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
			upserted = append(upserted, chunks...)
			return nil
		},
	}

	s, _, manifest := newTestService(mVec, &MockLLM{}, &MockEmbedder{})

	path := writeTestFile(t, "guide.txt", "how to configure shipping rates")
	report, err := s.IngestDocument(testCtx(), path, "guide.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deleted) != 1 || deleted[0] != "guide.txt" {
		t.Errorf("expected one delete-by-source for guide.txt, got %v", deleted)
	}
	if report.Stored != 1 || report.Failed != 0 {
		t.Errorf("report got stored=%d failed=%d, want 1/0", report.Stored, report.Failed)
	}
	if len(upserted) != 1 || upserted[0].ChunkKey != "guide.txt_0" {
		t.Errorf("unexpected upserted chunks: %+v", upserted)
	}

	names, _ := manifest.List(testCtx())
	if len(names) != 1 || names[0] != "guide.txt" {
		t.Errorf("manifest got %v, want [guide.txt]", names)
	}
}

func TestIngestDocument_CountsFailedBatches(t *testing.T) {
	mVec := &MockVectorStore{
		OnUpsertBatch: func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
			// Fail only the batch carrying the first chunk
			if chunks[0].Order == 0 {
				return errors.New("disk full")
			}
			return nil
		},
	}

	s, _, manifest := newTestService(mVec, &MockLLM{}, &MockEmbedder{})

	// Large enough to span multiple upsert batches
	content := strings.Repeat("Shipping zones control the rates shown at checkout.\n", 4000)
	path := writeTestFile(t, "big.txt", content)

	report, err := s.IngestDocument(testCtx(), path, "big.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed == 0 {
		t.Error("expected failed chunks to be reported")
	}
	if report.Stored == 0 {
		t.Error("expected surviving batches to be stored")
	}

	// Partial success still registers the document
	names, _ := manifest.List(testCtx())
	if len(names) != 1 {
		t.Errorf("manifest got %v, want the document listed", names)
	}
}

func TestIngestDocument_UnsupportedFormatLeavesStoresUntouched(t *testing.T) {
	mutated := false
	mVec := &MockVectorStore{
		OnDeleteBySource: func(ctx context.Context, filename string) error {
			mutated = true
			return nil
		},
		OnUpsertBatch: func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
			mutated = true
			return nil
		},
	}

	s, _, manifest := newTestService(mVec, &MockLLM{}, &MockEmbedder{})

	path := writeTestFile(t, "setup.exe", "MZ binary junk")
	_, err := s.IngestDocument(testCtx(), path, "setup.exe")
	if !errors.Is(err, rag.ErrUnsupportedFormat) {
		t.Fatalf("error got %v, want ErrUnsupportedFormat", err)
	}
	if mutated {
		t.Error("vector store was touched for a rejected upload")
	}
	if names, _ := manifest.List(testCtx()); len(names) != 0 {
		t.Errorf("manifest got %v, want empty", names)
	}
}

func TestIngestDocument_EmptyDocumentRejected(t *testing.T) {
	s, _, _ := newTestService(&MockVectorStore{}, &MockLLM{}, &MockEmbedder{})

	path := writeTestFile(t, "blank.txt", "   \n\t\n")
	_, err := s.IngestDocument(testCtx(), path, "blank.txt")
	if !errors.Is(err, rag.ErrEmptyDocument) {
		t.Fatalf("error got %v, want ErrEmptyDocument", err)
	}
}

func TestDeleteDocument_RemovesVectorsAndManifestEntry(t *testing.T) {
	var deleted []string
	mVec := &MockVectorStore{
		OnDeleteBySource: func(ctx context.Context, filename string) error {
			deleted = append(deleted, filename)
			return nil
		},
	}

	s, _, manifest := newTestService(mVec, &MockLLM{}, &MockEmbedder{})
	ctx := testCtx()
	manifest.Add(ctx, "old.pdf")

	if err := s.DeleteDocument(ctx, "old.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "old.pdf" {
		t.Errorf("delete-by-source got %v, want [old.pdf]", deleted)
	}
	if names, _ := manifest.List(ctx); len(names) != 0 {
		t.Errorf("manifest got %v, want empty", names)
	}
}

func TestListDocuments_ReportsLiveChunkCounts(t *testing.T) {
	mVec := &MockVectorStore{
		OnCountBySource: func(ctx context.Context, filename string) (uint64, error) {
			if filename == "a.pdf" {
				return 12, nil
			}
			return 3, nil
		},
	}

	s, _, manifest := newTestService(mVec, &MockLLM{}, &MockEmbedder{})
	ctx := testCtx()
	manifest.Add(ctx, "a.pdf")
	manifest.Add(ctx, "b.txt")

	infos, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d documents, want 2", len(infos))
	}
	if infos[0].Name != "a.pdf" || infos[0].Chunks != 12 {
		t.Errorf("unexpected first entry: %+v", infos[0])
	}
	if infos[1].Name != "b.txt" || infos[1].Chunks != 3 {
		t.Errorf("unexpected second entry: %+v", infos[1])
	}
}
