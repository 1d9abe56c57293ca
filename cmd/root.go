package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talent-ranker"

	defaultFilterLog = "filter_log.json"
)

type Config struct {
	FilterLog string           `mapstructure:"filter-log"`
	Email     string           `mapstructure:"email"`
	AI        *AIConfig        `mapstructure:"ai"`
	Embedding *EmbeddingConfig `mapstructure:"embedding"`
	VectorDB  *VectorDBConfig  `mapstructure:"vector-db"`
	Grader    *GraderConfig    `mapstructure:"grader"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type EmbeddingConfig struct {
	Host       string `mapstructure:"host"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type VectorDBConfig struct {
	Region     string `mapstructure:"region"`
	Namespace  string `mapstructure:"namespace"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type GraderConfig struct {
	BaseURL string `mapstructure:"base-url"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-ranker is a cli for searching, filtering and ranking candidate profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"ai.gemini.api-key": "GEMINI_API_KEY",
		"embedding.api-key": "EMBEDDING_API_KEY",
		"vector-db.api-key": "TURBOPUFFER_API_KEY",
		"email":             "GRADER_EMAIL",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("filter-log", defaultFilterLog)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; environment variables and
		// flags can carry the whole configuration.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.FilterLog == "" {
		config.FilterLog = defaultFilterLog
	}

	return config, nil
}
