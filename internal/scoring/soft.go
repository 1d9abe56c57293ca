package scoring

import (
	"strings"

	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
)

// Fixed policy constants. Kept as named values rather than config: nothing
// upstream ever varies them.
const (
	// SimilarityWeight and SoftScoreWeight blend retrieval similarity with
	// the soft score into the final score.
	SimilarityWeight = 0.4
	SoftScoreWeight  = 0.6

	// PreferredKeywordBonus is granted once when any global preferred
	// keyword matches.
	PreferredKeywordBonus = 1.0
	// ExperienceBonus is granted when the candidate meets the preferred
	// experience threshold.
	ExperienceBonus = 2.0
)

// Soft computes the weighted heuristic score for one candidate. Each factor
// contributes its full weight at most once; nil criteria score zero.
func Soft(c *candidate.Candidate, criteria *jobconfig.SoftCriteria) float64 {
	if criteria == nil {
		return 0
	}

	text := c.SearchText()
	score := 0.0

	for _, factor := range criteria.Factors {
		if anyKeywordIn(text, factor.Keywords) {
			score += factor.Weight
		}
	}

	if anyKeywordIn(text, criteria.PreferredKeywords) {
		score += PreferredKeywordBonus
	}

	if criteria.PreferredExperience != nil && c.YearsExperience >= *criteria.PreferredExperience {
		score += ExperienceBonus
	}

	return score
}

func anyKeywordIn(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
