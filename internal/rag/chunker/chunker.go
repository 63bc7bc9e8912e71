package chunker

import "strings"

// Separators ordered from "best" to "worst" for semantic meaning.
var separators = []string{"\n\n", "\n", ". ", " "}

// Split cuts text into overlapping windows of at most limit characters,
// preferring paragraph, line and sentence boundaries before falling back to
// word and hard cuts. Text that already fits comes back as a single untouched
// chunk, so small documents round-trip exactly.
func Split(text string, limit int, overlap int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	pieceLimit := limit - overlap
	if pieceLimit < 1 {
		pieceLimit = limit
	}
	return merge(divide(text, pieceLimit, separators), limit, overlap)
}

// divide breaks text into pieces no longer than pieceLimit, trying each
// separator in turn and keeping the separator attached so concatenating the
// pieces reconstructs the input.
func divide(text string, pieceLimit int, seps []string) []string {
	if len(text) <= pieceLimit {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardPieces(text, pieceLimit)
	}
	if !strings.Contains(text, seps[0]) {
		return divide(text, pieceLimit, seps[1:])
	}

	var pieces []string
	for _, part := range strings.SplitAfter(text, seps[0]) {
		if len(part) <= pieceLimit {
			pieces = append(pieces, part)
			continue
		}
		pieces = append(pieces, divide(part, pieceLimit, seps[1:])...)
	}
	return pieces
}

// merge packs pieces greedily into chunks of at most limit characters,
// seeding each new chunk with the tail of the previous one.
func merge(pieces []string, limit int, overlap int) []string {
	var chunks []string
	var currentChunk strings.Builder

	for _, piece := range pieces {
		if currentChunk.Len() > 0 && currentChunk.Len()+len(piece) > limit {
			chunks = append(chunks, currentChunk.String())

			flushed := currentChunk.String()
			overlapContent := flushed
			if len(flushed) > overlap {
				overlapContent = flushed[len(flushed)-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}
		currentChunk.WriteString(piece)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}
	return chunks
}

// hardPieces handles separator-free text (rare: single giant token).
func hardPieces(text string, pieceLimit int) []string {
	var pieces []string
	for start := 0; start < len(text); start += pieceLimit {
		end := start + pieceLimit
		if end > len(text) {
			end = len(text)
		}
		pieces = append(pieces, text[start:end])
	}
	return pieces
}
