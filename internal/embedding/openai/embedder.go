package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Embedder generates query embeddings through an OpenAI-compatible API.
type Embedder struct {
	embedder embeddings.Embedder
	model    string
	logger   *zap.Logger
}

// New creates an embedder against the given OpenAI-compatible host. An empty
// token falls back to "none" for local services without authentication.
func New(host, model, token string, logger *zap.Logger) (*Embedder, error) {
	if host == "" {
		return nil, errors.New("embedding host is required")
	}
	if model == "" {
		return nil, errors.New("embedding model is required")
	}
	if token == "" {
		token = "none"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken(token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return &Embedder{embedder: embedder, model: model, logger: logger}, nil
}

// EmbedQuery generates the dense vector for a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vector) == 0 {
		return nil, errors.New("embedding service returned an empty vector")
	}

	e.logger.Debug("generated query embedding",
		zap.String("model", e.model),
		zap.Int("dimensions", len(vector)),
	)

	return vector, nil
}
