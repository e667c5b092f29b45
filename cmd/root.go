package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "wanted-radar"
)

type Config struct {
	Source *SourceConfig `mapstructure:"source"`
	Slack  *SlackConfig  `mapstructure:"slack"`
	AI     *AIConfig     `mapstructure:"ai"`
}

type SourceConfig struct {
	// Mode selects the collector: "html" scrapes the rendered listing page,
	// "api" walks the public JSON feed.
	Mode              string        `mapstructure:"mode"`
	Category          int           `mapstructure:"category"`
	MaxItems          int           `mapstructure:"max-items"`
	SettleDelay       time.Duration `mapstructure:"settle-delay"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type SlackConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Channel   string `mapstructure:"channel"`
	TokenFile string `mapstructure:"token-file"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "wanted-radar collects job postings from wanted.co.kr and reports hiring market intelligence",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("slack.token-file", "SLACK_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SLACK_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is wanted-radar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the run command. If there is no config, defaults apply.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Running without a config file is fine; everything has a default.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Source == nil {
		config.Source = &SourceConfig{}
	}

	return config, nil
}
