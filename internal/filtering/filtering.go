package filtering

import (
	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
	"github.com/talenthunt/talent-ranker/internal/session"
)

// FilterTypeHard marks failures coming from mandatory pass/fail criteria.
const FilterTypeHard = "hard"

// Step describes the result of one hard-filter pass.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Engine applies the mandatory criteria to a candidate set. Checks are
// AND-combined per candidate; the first failing rule is logged to the
// session and evaluation moves on to the next candidate.
type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Apply returns the candidates passing every hard criterion. Nil or empty
// criteria pass everyone. Each rejected candidate produces exactly one
// logged failure, for the first rule it fails.
func (e *Engine) Apply(candidates *candidate.Candidates, criteria *jobconfig.HardCriteria, sess *session.Session) (*candidate.Candidates, Step) {
	initial := candidates.Len()

	rules := buildRules(criteria)
	if len(rules) == 0 {
		return candidates, Step{Initial: initial, Dropped: 0, Left: initial}
	}

	e.logger.Info("applying hard filters", zap.Int("candidates", initial))

	survivors := &candidate.Candidates{Items: make([]*candidate.Candidate, 0, initial)}
	for _, c := range candidates.Items {
		if v := firstViolation(rules, c); v != nil {
			sess.Fail(c, FilterTypeHard, v.filterName, v.reason, v.expected, v.actual)
			continue
		}
		survivors.Items = append(survivors.Items, c)
	}

	step := Step{Initial: initial, Dropped: initial - survivors.Len(), Left: survivors.Len()}
	e.logger.Info("hard filter step",
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)

	return survivors, step
}

func firstViolation(rules []rule, c *candidate.Candidate) *violation {
	for _, r := range rules {
		if v := r.check(c); v != nil {
			return v
		}
	}
	return nil
}
