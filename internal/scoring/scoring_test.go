package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
)

func intPtr(v int) *int { return &v }

func TestSoftFactorWeightGrantedOnce(t *testing.T) {
	c := &candidate.Candidate{
		FullText: "IRS audit specialist with tax controversy and tax dispute experience",
	}
	criteria := &jobconfig.SoftCriteria{
		Factors: []jobconfig.Factor{
			{Name: "irs_experience", Weight: 3.0, Keywords: []string{"irs audit", "tax controversy", "tax dispute"}},
		},
	}

	assert.Equal(t, 3.0, Soft(c, criteria), "three matching keywords grant the weight once")
}

func TestSoftMultipleFactors(t *testing.T) {
	c := &candidate.Candidate{
		FullText: "Corporate tax work at Deloitte",
	}
	criteria := &jobconfig.SoftCriteria{
		Factors: []jobconfig.Factor{
			{Name: "irs_experience", Weight: 3.0, Keywords: []string{"irs audit"}},
			{Name: "corporate_tax_experience", Weight: 2.5, Keywords: []string{"corporate tax"}},
			{Name: "big_four_experience", Weight: 2.0, Keywords: []string{"deloitte", "kpmg"}},
		},
	}

	assert.Equal(t, 4.5, Soft(c, criteria))
}

func TestSoftPreferredKeywordBonus(t *testing.T) {
	c := &candidate.Candidate{FullText: "Fluent in Python and Go"}
	criteria := &jobconfig.SoftCriteria{
		PreferredKeywords: []string{"python", "rust"},
	}

	assert.Equal(t, PreferredKeywordBonus, Soft(c, criteria), "the bonus is granted once regardless of matches")
}

func TestSoftExperienceBonus(t *testing.T) {
	meets := &candidate.Candidate{}
	meets.YearsExperience = 5
	below := &candidate.Candidate{}
	below.YearsExperience = 4

	criteria := &jobconfig.SoftCriteria{PreferredExperience: intPtr(5)}

	assert.Equal(t, ExperienceBonus, Soft(meets, criteria))
	assert.Equal(t, 0.0, Soft(below, criteria))
}

func TestSoftNoPreferredExperienceSkipsBonus(t *testing.T) {
	c := &candidate.Candidate{}
	c.YearsExperience = 20

	assert.Equal(t, 0.0, Soft(c, &jobconfig.SoftCriteria{}))
}

func TestSoftNilCriteria(t *testing.T) {
	c := &candidate.Candidate{FullText: "anything"}

	assert.Equal(t, 0.0, Soft(c, nil))
}

func TestScoreBlendsSimilarityAndSoftScore(t *testing.T) {
	c := &candidate.Candidate{VectorSimilarity: 0.9, FullText: "irs audit"}
	criteria := &jobconfig.SoftCriteria{
		Factors: []jobconfig.Factor{
			{Name: "irs_experience", Weight: 3.0, Keywords: []string{"irs audit"}},
		},
	}

	candidates := &candidate.Candidates{Items: []*candidate.Candidate{c}}
	Score(candidates, criteria)

	assert.InDelta(t, 0.4*0.9+0.6*3.0, c.FinalScore, 1e-9)
}

func TestNormalizeDegenerateSetGetsHalf(t *testing.T) {
	a := &candidate.Candidate{FinalScore: 1.2}
	b := &candidate.Candidate{FinalScore: 1.2}

	candidates := &candidate.Candidates{Items: []*candidate.Candidate{a, b}}
	Normalize(candidates)

	assert.Equal(t, 0.5, a.NormalizedScore)
	assert.Equal(t, 0.5, b.NormalizedScore)
}

func TestNormalizeSingleCandidate(t *testing.T) {
	c := &candidate.Candidate{FinalScore: 3.7}

	candidates := &candidate.Candidates{Items: []*candidate.Candidate{c}}
	Normalize(candidates)

	assert.Equal(t, 0.5, c.NormalizedScore)
}

func TestScoreNormalizeRankEndToEnd(t *testing.T) {
	// Three candidates: similarities 0.9, 0.5, 0.2 and soft scores 0, 0, 5.
	// The low-similarity candidate with the high soft score must win.
	c1 := &candidate.Candidate{ID: "c1", VectorSimilarity: 0.9}
	c2 := &candidate.Candidate{ID: "c2", VectorSimilarity: 0.5}
	c3 := &candidate.Candidate{ID: "c3", VectorSimilarity: 0.2, FullText: "deep irs audit background"}

	criteria := &jobconfig.SoftCriteria{
		Factors: []jobconfig.Factor{
			{Name: "irs_experience", Weight: 5.0, Keywords: []string{"irs audit"}},
		},
	}

	candidates := &candidate.Candidates{Items: []*candidate.Candidate{c1, c2, c3}}

	Score(candidates, criteria)
	require.InDelta(t, 0.36, c1.FinalScore, 1e-9)
	require.InDelta(t, 0.20, c2.FinalScore, 1e-9)
	require.InDelta(t, 3.08, c3.FinalScore, 1e-9)

	Normalize(candidates)
	require.InDelta(t, (0.36-0.20)/(3.08-0.20), c1.NormalizedScore, 1e-9)
	require.InDelta(t, 0.0, c2.NormalizedScore, 1e-9)
	require.InDelta(t, 1.0, c3.NormalizedScore, 1e-9)

	ids := Rank(candidates, 2)
	assert.Equal(t, []string{"c3", "c1"}, ids)
}

func TestRankStableOnTies(t *testing.T) {
	a := &candidate.Candidate{ID: "a"}
	a.NormalizedScore = 0.5
	b := &candidate.Candidate{ID: "b"}
	b.NormalizedScore = 0.5

	candidates := &candidate.Candidates{Items: []*candidate.Candidate{a, b}}

	ids := Rank(candidates, 10)
	assert.Equal(t, []string{"a", "b"}, ids, "ties keep the retrieval order")
}
