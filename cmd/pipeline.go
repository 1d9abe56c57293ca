package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/ai"
	"github.com/talenthunt/talent-ranker/internal/ai/gemini"
	"github.com/talenthunt/talent-ranker/internal/embedding"
	"github.com/talenthunt/talent-ranker/internal/embedding/openai"
	"github.com/talenthunt/talent-ranker/internal/grader"
	"github.com/talenthunt/talent-ranker/internal/search"
	"github.com/talenthunt/talent-ranker/internal/secrets"
	"github.com/talenthunt/talent-ranker/internal/session"
	"github.com/talenthunt/talent-ranker/internal/vectordb"
)

// newEngine assembles the search pipeline from the configuration. Missing
// optional collaborators (query expansion, embedding) degrade to their
// disabled variants with a warning; a broken vector store configuration is
// fatal since nothing can be searched without it.
func newEngine(ctx context.Context, config *Config, logger *zap.Logger) (*search.Engine, *session.Log, error) {
	expander := newExpander(ctx, config.AI, logger)

	embedder, err := newEmbedder(config.Embedding, logger)
	if err != nil {
		logger.Warn("embedding is unavailable, searches will return no candidates", zap.Error(err))
		embedder = embedding.Unavailable{}
	}

	retriever, err := newRetriever(config.VectorDB, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building vector store client: %w", err)
	}

	sessions := session.NewLog(session.NewStore(config.FilterLog), logger)

	return search.New(expander, embedder, retriever, sessions, logger), sessions, nil
}

func newExpander(ctx context.Context, config *AIConfig, logger *zap.Logger) ai.Expander {
	if config == nil || !config.Enabled {
		logger.Info("query expansion is disabled")
		return ai.NoopExpander{}
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider, skipping query expansion", zap.String("provider", config.Provider))
		return ai.NoopExpander{}
	}

	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load("gemini api key", config.Gemini.APIKeyFile, config.Gemini.APIKey)
	if err != nil {
		logger.Warn("skipping query expansion",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY"),
		)
		return ai.NoopExpander{}
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		logger.Warn("skipping query expansion", zap.Error(err))
		return ai.NoopExpander{}
	}

	expLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewExpander(generator, expLogger, config.Gemini.MaxLogLength)
}

func newEmbedder(config *EmbeddingConfig, logger *zap.Logger) (embedding.Embedder, error) {
	if config == nil {
		return nil, fmt.Errorf("embedding section is not configured")
	}

	token := config.APIKey
	if config.APIKeyFile != "" {
		loaded, err := secrets.Load("embedding api key", config.APIKeyFile, config.APIKey)
		if err != nil {
			return nil, err
		}
		token = loaded
	}

	return openai.New(config.Host, config.Model, token, logger)
}

func newRetriever(config *VectorDBConfig, logger *zap.Logger) (*vectordb.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("vector-db section is not configured")
	}

	apiKey, err := secrets.Load("vector store api key", config.APIKeyFile, config.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%w (set vector-db.api-key-file or TURBOPUFFER_API_KEY)", err)
	}

	return vectordb.New(config.Region, config.Namespace, apiKey, logger)
}

func newGrader(config *Config, logger *zap.Logger) (*grader.Client, error) {
	if config.Grader == nil || config.Grader.BaseURL == "" {
		return nil, fmt.Errorf("grader.base-url is not configured")
	}
	if config.Email == "" {
		return nil, fmt.Errorf("email is not configured (set the 'email' key or GRADER_EMAIL)")
	}

	return grader.New(config.Grader.BaseURL, config.Email, logger)
}
