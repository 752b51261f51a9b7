package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmadnk31/5gfones-search/internal/core/port"
	"github.com/ahmadnk31/5gfones-search/pkg/retry"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

var _ port.Embedder = (*Embedder)(nil)

const maxAttempts = 3

// Embedder generates query embeddings through an OpenAI-compatible
// API. Transient failures are retried with exponential backoff; the
// caller sees only the final error.
type Embedder struct {
	embedder embeddings.Embedder
	retryCfg retry.RetryConfig
}

// New creates the embedder. baseURL points at any OpenAI-compatible
// service; token may be "none" for local services without auth.
func New(baseURL, model, token string) (Embedder, error) {
	const op = "embedding.New"

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return Embedder{}, fmt.Errorf("%s: %w", op, err)
	}

	embedder, err := embeddings.NewEmbedder(
		client, embeddings.WithStripNewLines(true),
	)
	if err != nil {
		return Embedder{}, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: maxAttempts,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}

	return Embedder{embedder: embedder, retryCfg: retryCfg}, nil
}

// Embed returns the embedding vector for text.
func (e Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "Embedder.Embed"

	vec, err := retry.DoWithResult(ctx, e.retryCfg, func() ([]float32, error) {
		vs, err := e.embedder.EmbedDocuments(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 {
			return []float32{}, nil
		}
		return vs[0], nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vec, nil
}
