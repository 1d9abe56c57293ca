package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Filter rates outside this band get a tuning recommendation.
const (
	highFilterRate = 0.8
	lowFilterRate  = 0.1
)

// Report is the filter analysis document derived from the session history.
type Report struct {
	Metadata          ReportMetadata   `json:"report_metadata"`
	ExecutiveSummary  OverallStats     `json:"executive_summary"`
	DetailedBreakdown Breakdown        `json:"detailed_breakdown"`
	Recommendations   []Recommendation `json:"recommendations"`
}

type ReportMetadata struct {
	GeneratedAt           string `json:"generated_at"`
	TotalSessionsAnalyzed int    `json:"total_sessions_analyzed"`
}

type Breakdown struct {
	FilterFailureAnalysis map[string]int       `json:"filter_failure_analysis"`
	JobConfigPerformance  map[string]*JobStats `json:"job_config_performance"`
}

type Recommendation struct {
	JobConfig      string  `json:"job_config"`
	Issue          string  `json:"issue"`
	FilterRate     float64 `json:"filter_rate"`
	Recommendation string  `json:"recommendation"`
}

// Report builds the filter analysis report. It returns nil when there is no
// session history to analyze.
func (l *Log) Report() *Report {
	stats := l.Stats()
	if stats == nil {
		return nil
	}

	report := &Report{
		Metadata: ReportMetadata{
			GeneratedAt:           l.now().Format(time.RFC3339),
			TotalSessionsAnalyzed: len(l.Sessions()),
		},
		ExecutiveSummary: stats.Overall,
		DetailedBreakdown: Breakdown{
			FilterFailureAnalysis: stats.FailureBreakdown,
			JobConfigPerformance:  stats.JobPerformance,
		},
		Recommendations: []Recommendation{},
	}

	jobs := make([]string, 0, len(stats.JobPerformance))
	for name := range stats.JobPerformance {
		jobs = append(jobs, name)
	}
	sort.Strings(jobs)

	for _, name := range jobs {
		rate := stats.JobPerformance[name].FilterRate
		switch {
		case rate > highFilterRate:
			report.Recommendations = append(report.Recommendations, Recommendation{
				JobConfig:      name,
				Issue:          "High filter rate",
				FilterRate:     rate,
				Recommendation: "Consider relaxing hard criteria - too many candidates being filtered",
			})
		case rate < lowFilterRate:
			report.Recommendations = append(report.Recommendations, Recommendation{
				JobConfig:      name,
				Issue:          "Low filter rate",
				FilterRate:     rate,
				Recommendation: "Consider tightening hard criteria - filters may be too permissive",
			})
		}
	}

	return report
}

// WriteReport builds the report and writes it to the given path.
func (l *Log) WriteReport(path string) (*Report, error) {
	report := l.Report()
	if report == nil {
		return nil, fmt.Errorf("no filter statistics available")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding filter report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing filter report %q: %w", path, err)
	}
	return report, nil
}
