package session

// Stats aggregates filter performance over all closed sessions.
type Stats struct {
	Overall          OverallStats         `json:"overall_stats"`
	FailureBreakdown map[string]int       `json:"failure_breakdown"`
	JobPerformance   map[string]*JobStats `json:"job_performance"`
}

type OverallStats struct {
	TotalCandidatesProcessed int     `json:"total_candidates_processed"`
	TotalCandidatesPassed    int     `json:"total_candidates_passed"`
	TotalFilterFailures      int     `json:"total_filter_failures"`
	OverallFilterRate        float64 `json:"overall_filter_rate"`
}

type JobStats struct {
	TotalCandidates    int     `json:"total_candidates"`
	FilteredCandidates int     `json:"filtered_candidates"`
	FailureCount       int     `json:"failure_count"`
	FilterRate         float64 `json:"filter_rate"`
}

// Stats computes aggregate statistics across every closed session. It
// returns nil when no sessions have been recorded.
func (l *Log) Stats() *Stats {
	sessions := l.Sessions()
	if len(sessions) == 0 {
		return nil
	}

	stats := &Stats{
		FailureBreakdown: make(map[string]int),
		JobPerformance:   make(map[string]*JobStats),
	}

	for _, s := range sessions {
		stats.Overall.TotalCandidatesProcessed += s.TotalCandidates
		stats.Overall.TotalCandidatesPassed += s.CandidatesAfterFiltering
		stats.Overall.TotalFilterFailures += len(s.FilterFailures)

		for _, f := range s.FilterFailures {
			stats.FailureBreakdown[f.FilterType+"."+f.FilterName]++
		}

		job := stats.JobPerformance[s.JobConfigName]
		if job == nil {
			job = &JobStats{}
			stats.JobPerformance[s.JobConfigName] = job
		}
		job.TotalCandidates += s.TotalCandidates
		job.FilteredCandidates += s.CandidatesAfterFiltering
		job.FailureCount += len(s.FilterFailures)
	}

	if stats.Overall.TotalCandidatesProcessed > 0 {
		processed := stats.Overall.TotalCandidatesProcessed
		passed := stats.Overall.TotalCandidatesPassed
		stats.Overall.OverallFilterRate = float64(processed-passed) / float64(processed)
	}

	for _, job := range stats.JobPerformance {
		if job.TotalCandidates > 0 {
			job.FilterRate = float64(job.TotalCandidates-job.FilteredCandidates) / float64(job.TotalCandidates)
		}
	}

	return stats
}
