package search

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
	"github.com/talenthunt/talent-ranker/internal/session"
)

func intPtr(v int) *int { return &v }

type stubExpander struct {
	expanded string
	err      error
	gotQuery string
}

func (s *stubExpander) Expand(_ context.Context, query, _ string) (string, error) {
	s.gotQuery = query
	if s.err != nil {
		return query, s.err
	}
	return s.expanded, nil
}

type stubEmbedder struct {
	vector  []float32
	err     error
	gotText string
}

func (s *stubEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	s.gotText = text
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

type stubRetriever struct {
	candidates *candidate.Candidates
	err        error
	gotTopK    int
}

func (s *stubRetriever) Query(_ context.Context, _ []float32, topK int) (*candidate.Candidates, error) {
	s.gotTopK = topK
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func testConfig() *jobconfig.Config {
	return &jobconfig.Config{
		Name:  "Tax Lawyer",
		Query: "tax attorney",
		Hard: &jobconfig.HardCriteria{
			MinYearsExperience: intPtr(3),
		},
		Soft: &jobconfig.SoftCriteria{
			Factors: []jobconfig.Factor{
				{Name: "irs_experience", Weight: 5.0, Keywords: []string{"irs audit"}},
			},
		},
	}
}

func profiles() *candidate.Candidates {
	return &candidate.Candidates{Items: []*candidate.Candidate{
		{
			ID:               "senior-with-keyword",
			VectorSimilarity: 0.2,
			FullText:         "10 years of experience handling IRS audit cases",
		},
		{
			ID:               "senior-plain",
			VectorSimilarity: 0.9,
			FullText:         "8 years of experience in corporate law",
		},
		{
			ID:               "junior",
			VectorSimilarity: 0.95,
			FullText:         "1 year as a paralegal",
		},
	}}
}

func TestSearchFullPipeline(t *testing.T) {
	expander := &stubExpander{expanded: "tax attorney OR tax lawyer"}
	embedder := &stubEmbedder{vector: []float32{0.1, 0.2}}
	retriever := &stubRetriever{candidates: profiles()}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(expander, embedder, retriever, sessions, zap.NewNop())

	ids, err := engine.Search(context.Background(), testConfig(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The junior candidate is filtered. Of the survivors, the keyword match
	// outscores the raw-similarity leader.
	if len(ids) != 2 || ids[0] != "senior-with-keyword" || ids[1] != "senior-plain" {
		t.Fatalf("unexpected ranking: %v", ids)
	}

	if expander.gotQuery != "tax attorney" {
		t.Fatalf("expected the original query to be expanded, got %q", expander.gotQuery)
	}
	if embedder.gotText != "tax attorney OR tax lawyer" {
		t.Fatalf("expected the expanded query to be embedded, got %q", embedder.gotText)
	}
	if retriever.gotTopK != retrievalPoolSize {
		t.Fatalf("expected the full retrieval pool, got %d", retriever.gotTopK)
	}

	recorded := sessions.Sessions()
	if len(recorded) != 1 {
		t.Fatalf("expected one session, got %d", len(recorded))
	}
	if recorded[0].TotalCandidates != 3 || recorded[0].CandidatesAfterFiltering != 2 {
		t.Fatalf("unexpected session counts: %+v", recorded[0])
	}
	if len(recorded[0].FilterFailures) != 1 || recorded[0].FilterFailures[0].CandidateID != "junior" {
		t.Fatalf("unexpected filter failures: %+v", recorded[0].FilterFailures)
	}
}

func TestSearchCandidatesReturnsRankedSurvivors(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	retriever := &stubRetriever{candidates: profiles()}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(nil, embedder, retriever, sessions, zap.NewNop())

	ranked, err := engine.SearchCandidates(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranked.Len() != 2 {
		t.Fatalf("expected 2 survivors, got %d", ranked.Len())
	}
	if ranked.Items[0].ID != "senior-with-keyword" {
		t.Fatalf("expected ranked order, got %v", ranked.IDs())
	}
	if ranked.Items[0].NormalizedScore != 1.0 || ranked.Items[1].NormalizedScore != 0.0 {
		t.Fatalf("expected normalized scores to be filled, got %v and %v",
			ranked.Items[0].NormalizedScore, ranked.Items[1].NormalizedScore)
	}
	if ranked.Items[0].YearsExperience != 10 {
		t.Fatalf("expected enrichment to be applied, got %d years", ranked.Items[0].YearsExperience)
	}
}

func TestSearchExpansionFailureDegrades(t *testing.T) {
	expander := &stubExpander{err: errors.New("quota exceeded")}
	embedder := &stubEmbedder{vector: []float32{0.1}}
	retriever := &stubRetriever{candidates: profiles()}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(expander, embedder, retriever, sessions, zap.NewNop())

	ids, err := engine.Search(context.Background(), testConfig(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) == 0 {
		t.Fatalf("expected the search to proceed with the original query")
	}
	if embedder.gotText != "tax attorney" {
		t.Fatalf("expected the original query to be embedded, got %q", embedder.gotText)
	}
}

func TestSearchEmbeddingFailureShortCircuits(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("service down")}
	retriever := &stubRetriever{candidates: profiles()}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(nil, embedder, retriever, sessions, zap.NewNop())

	ids, err := engine.Search(context.Background(), testConfig(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no results without an embedding, got %v", ids)
	}
	if retriever.gotTopK != 0 {
		t.Fatalf("expected the retriever to be skipped")
	}
	if len(sessions.Sessions()) != 0 {
		t.Fatalf("expected no session without retrieval")
	}
}

func TestSearchRetrievalFailureReturnsEmpty(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	retriever := &stubRetriever{err: errors.New("namespace not found")}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(nil, embedder, retriever, sessions, zap.NewNop())

	ids, err := engine.Search(context.Background(), testConfig(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no results on retrieval failure, got %v", ids)
	}
}

func TestSearchNoCandidatesRetrieved(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	retriever := &stubRetriever{candidates: &candidate.Candidates{}}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(nil, embedder, retriever, sessions, zap.NewNop())

	ids, err := engine.Search(context.Background(), testConfig(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no results, got %v", ids)
	}
}

func TestSearchAllCandidatesFiltered(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	retriever := &stubRetriever{candidates: &candidate.Candidates{Items: []*candidate.Candidate{
		{ID: "junior", FullText: "1 year as a paralegal"},
	}}}
	sessions := session.NewLog(nil, zap.NewNop())

	engine := New(nil, embedder, retriever, sessions, zap.NewNop())

	ids, err := engine.Search(context.Background(), testConfig(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no survivors, got %v", ids)
	}

	recorded := sessions.Sessions()
	if len(recorded) != 1 || recorded[0].CandidatesAfterFiltering != 0 {
		t.Fatalf("expected the empty outcome to be recorded, got %+v", recorded)
	}
}

func TestSearchNilConfig(t *testing.T) {
	sessions := session.NewLog(nil, zap.NewNop())
	engine := New(nil, nil, &stubRetriever{}, sessions, zap.NewNop())

	if _, err := engine.Search(context.Background(), nil, 10); err == nil {
		t.Fatalf("expected an error for nil config")
	}
}

func TestSearchByNameUnknownConfig(t *testing.T) {
	sessions := session.NewLog(nil, zap.NewNop())
	engine := New(nil, nil, &stubRetriever{}, sessions, zap.NewNop())

	if _, err := engine.SearchByName(context.Background(), "missing.yml", 10); err == nil {
		t.Fatalf("expected an error for unknown config name")
	}
}

func TestSearchDefaultsUnavailableCollaborators(t *testing.T) {
	sessions := session.NewLog(nil, zap.NewNop())
	engine := New(nil, nil, &stubRetriever{candidates: profiles()}, sessions, zap.NewNop())

	// The default embedder is unavailable, so the search degrades to empty.
	ids, err := engine.Search(context.Background(), testConfig(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty result with unavailable embedder, got %v", ids)
	}
}
