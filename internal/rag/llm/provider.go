package llm

import (
	"context"

	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
)

// Provider generates an answer grounded in the retrieved chunks, with the
// recent conversation turns for continuity.
type Provider interface {
	Generate(ctx context.Context, question string, matches []string, history []chatModel.Turn) (string, error)
}
