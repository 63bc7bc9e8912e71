package commonModels

import (
	"context"
	"time"
)

// Document is identified by its uploaded filename; re-uploading the same
// filename replaces every chunk stored under it.
type Document struct {
	Name       string    `json:"source"`
	UploadedAt time.Time `json:"uploaded_at"`
	Format     DocFormat `json:"format"`
}

// DocChunk is one bounded fragment of a document. ChunkKey is the stable
// human-readable id (sanitized filename + running index); the vector database
// point id is derived from it deterministically.
type DocChunk struct {
	Doc      Document
	ChunkKey string `json:"chunk_key"`
	Text     string `json:"text"`
	Order    int    `json:"order"`
}

// SearchMatch is a retrieved chunk with its similarity score.
type SearchMatch struct {
	Source   string  `json:"source"`
	Text     string  `json:"text"`
	ChunkKey string  `json:"chunk_key"`
	Score    float32 `json:"score"`
}

// DocumentInfo is one manifest entry plus its live chunk count.
type DocumentInfo struct {
	Name   string `json:"name"`
	Chunks uint64 `json:"count"`
}

// IngestReport tells the caller how much of the document actually landed.
// Failed counts batches that were skipped after an upstream error.
type IngestReport struct {
	Filename string
	Stored   int
	Failed   int
}

type DocFormat string

var (
	PDF  DocFormat = "PDF"
	DOCX DocFormat = "DOCX"
	PPTX DocFormat = "PPTX"
	MD   DocFormat = "MD"
	TXT  DocFormat = "TXT"
	ERR  DocFormat = "ERROR"
)

// ManifestStore is the document inventory. Implementations must make Add and
// Remove atomic per filename so concurrent uploads cannot lose each other's
// update.
type ManifestStore interface {
	Add(ctx context.Context, filename string) error
	Remove(ctx context.Context, filename string) error
	List(ctx context.Context) ([]string, error)
}
