package embedding

import (
	"context"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/rag/embedding/googleEmbedding"
	"github.com/cwsplatform/ecom-assist/internal/rag/embedding/openaiEmbedding"
)

type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// GetEmbedder picks the configured provider. Both produce vectors of
// config.EmbeddingOutputDimensionality so the collection never has to care
// which one indexed a document.
func GetEmbedder(ctx context.Context) Embedder {
	switch config.EmbeddingProvider() {
	case "openai":
		client := openaiEmbedding.GetOpenAIEmbeddingClient(ctx, config.OpenAIEmbeddingModel, config.OpenAIAPIKey())
		if client == nil {
			return nil
		}
		return client
	default:
		client := googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey())
		if client == nil {
			return nil
		}
		return client
	}
}
