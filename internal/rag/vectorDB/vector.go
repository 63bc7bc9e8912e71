package vectorDB

import (
	"context"

	"github.com/cwsplatform/ecom-assist/internal/domain/commonModels"
)

type Store interface {
	EnsureCollection(ctx context.Context) error
	UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, limit uint64) ([]commonModels.SearchMatch, error)

	// Document lifecycle
	DeleteBySource(ctx context.Context, filename string) error
	CountBySource(ctx context.Context, filename string) (uint64, error)
}
