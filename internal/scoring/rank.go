package scoring

import (
	"sort"

	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
)

// Score fills FinalScore for every candidate: the fixed-weight blend of
// retrieval similarity and soft score.
func Score(candidates *candidate.Candidates, criteria *jobconfig.SoftCriteria) {
	for _, c := range candidates.Items {
		c.FinalScore = SimilarityWeight*c.VectorSimilarity + SoftScoreWeight*Soft(c, criteria)
	}
}

// Normalize min-max normalizes FinalScore into NormalizedScore across the
// set. When every score is equal (including a single candidate) each gets
// exactly 0.5.
func Normalize(candidates *candidate.Candidates) {
	if candidates.Len() == 0 {
		return
	}

	min, max := candidates.Items[0].FinalScore, candidates.Items[0].FinalScore
	for _, c := range candidates.Items[1:] {
		if c.FinalScore < min {
			min = c.FinalScore
		}
		if c.FinalScore > max {
			max = c.FinalScore
		}
	}

	for _, c := range candidates.Items {
		c.NormalizedScore = normalize(c.FinalScore, min, max)
	}
}

func normalize(score, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (score - min) / (max - min)
}

// Sort orders the candidates by normalized score descending. The sort is
// stable: ties keep the retriever's original relative order.
func Sort(candidates *candidate.Candidates) {
	sort.SliceStable(candidates.Items, func(i, j int) bool {
		return candidates.Items[i].NormalizedScore > candidates.Items[j].NormalizedScore
	})
}

// Rank sorts the candidates and returns the top-k identifiers. K is capped at
// the pool size; there is no padding.
func Rank(candidates *candidate.Candidates, topK int) []string {
	Sort(candidates)
	return candidates.Top(topK)
}
