package search

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/ai"
	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/embedding"
	"github.com/talenthunt/talent-ranker/internal/filtering"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
	"github.com/talenthunt/talent-ranker/internal/scoring"
	"github.com/talenthunt/talent-ranker/internal/session"
	"github.com/talenthunt/talent-ranker/internal/textproc"
)

// retrievalPoolSize is how many nearest neighbors are pulled before hard
// filtering.
const retrievalPoolSize = 250

// Retriever returns approximate-nearest-neighbor candidates ordered by
// similarity descending.
type Retriever interface {
	Query(ctx context.Context, vector []float32, topK int) (*candidate.Candidates, error)
}

// Engine runs the full pipeline: expand, embed, retrieve, enrich, filter,
// score, rank. One Search call is a single synchronous pass; the only shared
// state is the session log, which serializes its own appends.
type Engine struct {
	expander  ai.Expander
	embedder  embedding.Embedder
	retriever Retriever
	processor *textproc.Processor
	filters   *filtering.Engine
	sessions  *session.Log
	logger    *zap.Logger
}

func New(expander ai.Expander, embedder embedding.Embedder, retriever Retriever, sessions *session.Log, logger *zap.Logger) *Engine {
	if expander == nil {
		expander = ai.NoopExpander{}
	}
	if embedder == nil {
		embedder = embedding.Unavailable{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = session.NewLog(nil, logger)
	}

	return &Engine{
		expander:  expander,
		embedder:  embedder,
		retriever: retriever,
		processor: textproc.New(),
		filters:   filtering.New(logger),
		sessions:  sessions,
		logger:    logger,
	}
}

// SearchByName runs a search for a catalog configuration.
func (e *Engine) SearchByName(ctx context.Context, configName string, topK int) ([]string, error) {
	cfg, err := jobconfig.Get(configName)
	if err != nil {
		return nil, err
	}
	return e.Search(ctx, cfg, topK)
}

// Search returns the top-k candidate identifiers for the job configuration.
// Collaborator failures degrade: a search that cannot retrieve candidates
// returns an empty list, never an error.
func (e *Engine) Search(ctx context.Context, cfg *jobconfig.Config, topK int) ([]string, error) {
	ranked, err := e.SearchCandidates(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ids := ranked.Top(topK)
	e.logger.Info("search finished",
		zap.String("job", cfg.Name),
		zap.Int("survivors", ranked.Len()),
		zap.Int("returned", len(ids)),
	)

	return ids, nil
}

// SearchCandidates runs the pipeline and returns the surviving candidates in
// ranked order, scores filled in.
func (e *Engine) SearchCandidates(ctx context.Context, cfg *jobconfig.Config) (*candidate.Candidates, error) {
	if cfg == nil {
		return nil, errors.New("job configuration is required")
	}
	if e.retriever == nil {
		return nil, errors.New("retriever is required")
	}

	e.logger.Info("running search", zap.String("job", cfg.Name))

	expanded, err := e.expander.Expand(ctx, cfg.Query, cfg.Name)
	if err != nil {
		e.logger.Warn("query expansion failed, using original query", zap.Error(err))
		expanded = cfg.Query
	}

	vector, err := e.embedder.EmbedQuery(ctx, expanded)
	if err != nil {
		e.logger.Warn("embedding unavailable, skipping vector search", zap.Error(err))
		return &candidate.Candidates{}, nil
	}

	candidates, err := e.retriever.Query(ctx, vector, retrievalPoolSize)
	if err != nil {
		e.logger.Warn("vector search failed", zap.Error(err))
		return &candidate.Candidates{}, nil
	}
	if candidates.Len() == 0 {
		e.logger.Warn("no initial candidates found from vector search")
		return &candidate.Candidates{}, nil
	}

	e.logger.Info("retrieved initial candidates", zap.Int("count", candidates.Len()))

	for _, c := range candidates.Items {
		c.ApplyEnrichment(e.processor.Enrich(c.ProfileText()))
	}

	sess := e.sessions.Start(cfg.Name, cfg.Query, candidates.Len())
	survivors, _ := e.filters.Apply(candidates, cfg.Hard, sess)
	e.sessions.End(sess, survivors.Len())

	if survivors.Len() == 0 {
		e.logger.Warn("no candidates remained after hard filtering")
		return survivors, nil
	}

	scoring.Score(survivors, cfg.Soft)
	scoring.Normalize(survivors)
	scoring.Sort(survivors)

	return survivors, nil
}
