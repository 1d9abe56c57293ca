package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/candidate"
)

// Failure is one hard-filter rejection: a single (candidate, failing rule)
// pair. The list on a session is append-only.
type Failure struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	FilterType    string `json:"filter_type"`
	FilterName    string `json:"filter_name"`
	Reason        string `json:"reason"`
	ExpectedValue any    `json:"expected_value"`
	ActualValue   any    `json:"actual_value"`
	Timestamp     string `json:"timestamp"`
}

// Session tracks one complete hard-filter pass over one search invocation.
// A session is mutable until it is handed back to Log.End, after which it
// must not be touched.
type Session struct {
	JobConfigName            string    `json:"job_config_name"`
	Query                    string    `json:"query"`
	TotalCandidates          int       `json:"total_candidates"`
	CandidatesAfterFiltering int       `json:"candidates_after_filtering"`
	FilterFailures           []Failure `json:"filter_failures"`
	Timestamp                string    `json:"timestamp"`

	now func() time.Time
}

// Fail records a filter failure for the candidate. Calling it on a nil
// session is a no-op, so callers without an active session need no guard.
func (s *Session) Fail(c *candidate.Candidate, filterType, filterName, reason string, expected, actual any) {
	if s == nil {
		return
	}

	id, name := "unknown", "Unknown"
	if c != nil {
		if c.ID != "" {
			id = c.ID
		}
		if c.Name != "" {
			name = c.Name
		}
	}

	now := s.now
	if now == nil {
		now = time.Now
	}

	s.FilterFailures = append(s.FilterFailures, Failure{
		CandidateID:   id,
		CandidateName: name,
		FilterType:    filterType,
		FilterName:    filterName,
		Reason:        reason,
		ExpectedValue: expected,
		ActualValue:   actual,
		Timestamp:     now().Format(time.RFC3339),
	})
}

// Log accumulates closed sessions and persists them through the store. A
// session handle returned by Start is owned by a single search invocation;
// only the append on End is shared state, and it is mutex-guarded.
type Log struct {
	mu       sync.Mutex
	store    *Store
	sessions []*Session
	logger   *zap.Logger
	now      func() time.Time
}

// NewLog creates a session log backed by the given store. An existing
// history is loaded when present; a failed load starts from an empty history
// rather than aborting.
func NewLog(store *Store, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Log{store: store, logger: logger, now: time.Now}

	if store != nil {
		sessions, err := store.Load()
		if err != nil {
			logger.Warn("loading filter log history failed, starting empty", zap.Error(err))
		} else {
			l.sessions = sessions
		}
	}

	return l
}

// Start opens a session for one search invocation and returns its handle.
func (l *Log) Start(jobConfigName, query string, totalCandidates int) *Session {
	return &Session{
		JobConfigName:   jobConfigName,
		Query:           query,
		TotalCandidates: totalCandidates,
		FilterFailures:  []Failure{},
		Timestamp:       l.now().Format(time.RFC3339),
		now:             l.now,
	}
}

// End finalizes the session, appends it to the history and persists the full
// collection. A persistence failure is logged and the in-memory history is
// kept.
func (l *Log) End(s *Session, survivors int) {
	if s == nil {
		return
	}
	s.CandidatesAfterFiltering = survivors

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sessions = append(l.sessions, s)

	if l.store == nil {
		return
	}
	if err := l.store.Save(l.sessions); err != nil {
		l.logger.Warn("saving filter log failed, keeping in-memory history", zap.Error(err))
	}
}

// Sessions returns the closed sessions recorded so far.
func (l *Log) Sessions() []*Session {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}
