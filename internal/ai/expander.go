package ai

import "context"

// Expander rewrites a raw search query into a richer boolean-keyword query.
// Expansion is advisory: implementations return the original query when they
// cannot do better, and callers never assume it succeeded.
type Expander interface {
	Expand(ctx context.Context, query, jobTitle string) (string, error)
}

// NoopExpander is the explicit "unavailable" variant: it returns every query
// unchanged.
type NoopExpander struct{}

func (NoopExpander) Expand(_ context.Context, query, _ string) (string, error) {
	return query, nil
}
