package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/grader"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
)

const reportFile = "filter_analysis_report.json"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run every job configuration and write a filter analysis report",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("report-only", false, "build the report from the existing filter log without running searches")
	analyzeCmd.Flags().StringP("output", "o", reportFile, "report output file")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	log := mustLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	engine, sessions, err := newEngine(ctx, config, log)
	if err != nil {
		log.Fatal("building the search pipeline", zap.Error(err))
	}

	if cmd.Flag("report-only").Value.String() != "true" {
		for _, name := range jobconfig.Names() {
			ids, err := engine.SearchByName(ctx, name, grader.FinalCandidates)
			if err != nil {
				log.Fatal("search failed", zap.String("config", name), zap.Error(err))
			}
			log.Info("search complete", zap.String("config", name), zap.Int("candidates", len(ids)))
		}
	}

	output := cmd.Flag("output").Value.String()
	report, err := sessions.WriteReport(output)
	if err != nil {
		log.Fatal("writing filter report", zap.Error(err))
	}

	log.Info("filter report written",
		zap.String("filename", output),
		zap.Int("sessions_analyzed", report.Metadata.TotalSessionsAnalyzed),
		zap.Float64("overall_filter_rate", report.ExecutiveSummary.OverallFilterRate),
		zap.Int("recommendations", len(report.Recommendations)),
	)

	for _, rec := range report.Recommendations {
		fmt.Printf("%s: %s (filter rate %.2f) - %s\n",
			rec.JobConfig, rec.Issue, rec.FilterRate, rec.Recommendation)
	}
}
