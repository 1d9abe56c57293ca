package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/grader"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
	"github.com/talenthunt/talent-ranker/internal/logger"
)

var searchCmd = &cobra.Command{
	Use:   "search [config-name]",
	Short: "Run the ranking pipeline for a single job configuration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(cmd, args[0])
	},
}

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List the available job configurations",
	Run: func(_ *cobra.Command, _ []string) {
		for _, name := range jobconfig.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configsCmd)

	searchCmd.Flags().IntP("top-k", "k", grader.FinalCandidates, "number of top candidates to return")
	searchCmd.Flags().Bool("dump", false, "dump the ranked survivors to a temporary JSON file")
}

func runSearch(cmd *cobra.Command, configName string) {
	ctx := context.Background()

	log := mustLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the talent-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, _, err := newEngine(ctx, config, log)
	if err != nil {
		log.Fatal("building the search pipeline", zap.Error(err))
	}

	topK, err := cmd.Flags().GetInt("top-k")
	if err != nil {
		log.Fatal("reading top-k flag", zap.Error(err))
	}

	cfg, err := jobconfig.Get(configName)
	if err != nil {
		log.Fatal("resolving job configuration", zap.Error(err))
	}

	ranked, err := engine.SearchCandidates(ctx, cfg)
	if err != nil {
		log.Fatal("search failed", zap.Error(err))
	}

	if ranked.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := ranked.DumpToTmpFile()
		if err != nil {
			log.Fatal("dump results to file", zap.Error(err))
		}
		log.Info("dumping result to file", zap.String("filename", filename))
	}

	ids := ranked.Top(topK)
	log.Info("search results", zap.Int("count", len(ids)))
	for i, id := range ids {
		fmt.Printf("%2d. %s\n", i+1, id)
	}
}

func mustLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		stdlog.Fatalf("creating a logger: %s", err)
	}
	return l
}
