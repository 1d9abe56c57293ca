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
	PromptYes = "Yes"
	PromptNo  = "No"

	backupFile = "final_submission_backup.json"
)

var submitPrompt = promptui.Select{
	Label: "Submit for final grading?",
	Items: []string{PromptYes, PromptNo},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Generate the final candidate lists for every configuration and submit them for grading",
	Run: func(cmd *cobra.Command, _ []string) {
		submit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().Bool("dry-run", false, "generate and save the submission without sending it")
	submitCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before submitting")
}

func submit(cmd *cobra.Command) {
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

	submission := make(map[string][]string)

	for _, name := range jobconfig.Names() {
		ids, err := engine.SearchByName(ctx, name, grader.FinalCandidates)
		if err != nil {
			log.Fatal("search failed", zap.String("config", name), zap.Error(err))
		}

		if err := validateSubmission(name, ids); err != nil {
			log.Fatal("submission is incomplete", zap.Error(err))
		}

		submission[name] = ids
		log.Info("candidates selected", zap.String("config", name), zap.Int("count", len(ids)))
	}

	data, err := json.MarshalIndent(submission, "", "  ")
	if err != nil {
		log.Fatal("encoding submission", zap.Error(err))
	}
	if err := os.WriteFile(backupFile, data, 0o644); err != nil {
		log.Fatal("writing submission backup", zap.Error(err))
	}
	log.Info("submission backup written", zap.String("filename", backupFile))

	if cmd.Flag("dry-run").Value.String() == "true" {
		log.Info("exiting", zap.String("reason", "dry run requested"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := submitPrompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			log.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	client, err := newGrader(config, log)
	if err != nil {
		log.Fatal("building the grading client", zap.Error(err))
	}

	result, err := client.Grade(ctx, submission)
	if err != nil {
		log.Fatal("grading failed", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))

	log.Info("submission graded", zap.Int("configs", len(submission)))
}

// minIDLength guards against truncated or placeholder identifiers slipping
// into a graded submission.
const minIDLength = 10

// validateSubmission checks one config's candidate list before it is sent:
// exactly the expected count, no malformed or duplicate identifiers.
func validateSubmission(name string, ids []string) error {
	if len(ids) != grader.FinalCandidates {
		return fmt.Errorf("%s: expected %d candidates, got %d", name, grader.FinalCandidates, len(ids))
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if len(id) < minIDLength {
			return fmt.Errorf("%s: malformed candidate identifier %q", name, id)
		}
		if seen[id] {
			return fmt.Errorf("%s: duplicate candidate identifier %s", name, id)
		}
		seen[id] = true
	}
	return nil
}
