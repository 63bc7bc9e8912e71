package chunker

import (
	"strings"
	"testing"
)

func TestSplit_SmallTextIsSingleChunk(t *testing.T) {
	text := "A short manual section about coupon codes."

	chunks := Split(text, 1000, 200)

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("Small text must round-trip unchanged, got %q", chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if got := Split("", 1000, 200); got != nil {
		t.Errorf("Expected nil for empty text, got %v", got)
	}
}

func TestSplit_ProducesOverlappingChunks(t *testing.T) {
	text := "This is a long sentence. This is another sentence that will be split. And one more to be safe."
	limit := 40
	overlap := 10

	chunks := Split(text, limit, overlap)

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > limit {
			t.Errorf("Chunk %d exceeds limit: %d > %d", i, len(c), limit)
		}
	}

	// Each later chunk starts with the tail of the previous one.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev
		if len(prev) > overlap {
			tail = prev[len(prev)-overlap:]
		}
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("Chunk %d does not carry the overlap: want prefix %q, got %q", i, tail, chunks[i])
		}
	}
}

func TestSplit_NoSeparatorFallsBackToHardCut(t *testing.T) {
	text := strings.Repeat("x", 250)

	chunks := Split(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("Expected at least 3 hard-cut chunks, got %d", len(chunks))
	}
	joined := chunks[0]
	for i := 1; i < len(chunks); i++ {
		joined += chunks[i][20:] //strip overlap
	}
	if joined != text {
		t.Error("Hard-cut chunks minus overlap should reconstruct the input")
	}
}
