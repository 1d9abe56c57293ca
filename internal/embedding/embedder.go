package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no embedding service is configured.
var ErrUnavailable = errors.New("embedding service is unavailable")

// Embedder converts text into a fixed-length dense vector. An error means
// "no vector available"; callers must treat it as "no vector search
// possible" and short-circuit.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Unavailable is the explicit "no embedder" variant.
type Unavailable struct{}

func (Unavailable) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, ErrUnavailable
}
