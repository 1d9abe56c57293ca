package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/grader"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
)

const (
	PromptAllConfigs = "Evaluate all configurations"
	PromptOneConfig  = "Choose a configuration"
	PromptQuit       = "Quit"

	resultsFile = "test_results.json"
)

var evaluatePrompt = promptui.Select{
	Label: "What to evaluate?",
	Items: []string{PromptAllConfigs, PromptOneConfig, PromptQuit},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the top candidates for job configurations against the evaluation service",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().BoolP("all", "a", false, "evaluate all configurations without asking")
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()

	log := mustLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	engine, _, err := newEngine(ctx, config, log)
	if err != nil {
		log.Fatal("building the search pipeline", zap.Error(err))
	}

	client, err := newGrader(config, log)
	if err != nil {
		log.Fatal("building the evaluation client", zap.Error(err))
	}

	names := jobconfig.Names()

	if cmd.Flag("all").Value.String() != "true" {
		_, action, err := evaluatePrompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptQuit:
			log.Info("exiting", zap.String("reason", "got quit from prompt"))
			return
		case PromptOneConfig:
			configPrompt := promptui.Select{
				Label: "Choose a configuration and press ENTER",
				Items: names,
			}
			_, selected, err := configPrompt.Run()
			if err != nil {
				log.Fatal("exiting", zap.Error(err))
			}
			names = []string{selected}
		}
	}

	results := make(map[string]*grader.Evaluation, len(names))

	for _, name := range names {
		ids, err := engine.SearchByName(ctx, name, grader.FinalCandidates)
		if err != nil {
			log.Fatal("search failed", zap.String("config", name), zap.Error(err))
		}

		if len(ids) == 0 {
			log.Warn("skipping evaluation", zap.String("config", name), zap.String("reason", "no candidates found"))
			continue
		}

		evaluation, err := client.Evaluate(ctx, name, ids)
		if err != nil {
			log.Error("evaluation failed", zap.String("config", name), zap.Error(err))
			continue
		}

		results[name] = evaluation
		printEvaluation(name, evaluation)
	}

	if len(results) == 0 {
		log.Info("exiting", zap.String("reason", "no evaluations succeeded"))
		return
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatal("encoding evaluation results", zap.Error(err))
	}
	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		log.Fatal("writing evaluation results", zap.Error(err))
	}

	log.Info("evaluation results written",
		zap.String("filename", resultsFile),
		zap.Int("configs", len(results)),
	)
}

func printEvaluation(name string, evaluation *grader.Evaluation) {
	fmt.Printf("\n%s: average final score %.4f\n", name, evaluation.AverageFinalScore)
	for _, hard := range evaluation.AverageHardScores {
		fmt.Printf("  hard %-30s pass rate %.2f\n", hard.CriteriaName, hard.PassRate)
	}
	for _, soft := range evaluation.AverageSoftScores {
		fmt.Printf("  soft %-30s average %.4f\n", soft.CriteriaName, soft.AverageScore)
	}
}
