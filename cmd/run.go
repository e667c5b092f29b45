package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seojinp/wanted-radar/internal/ai"
	"github.com/seojinp/wanted-radar/internal/ai/gemini"
	"github.com/seojinp/wanted-radar/internal/logger"
	"github.com/seojinp/wanted-radar/internal/market"
	"github.com/seojinp/wanted-radar/internal/notify"
	"github.com/seojinp/wanted-radar/internal/secrets"
	"github.com/seojinp/wanted-radar/internal/wanted"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	sourceModeHTML = "html"
	sourceModeAPI  = "api"

	collectorField = logger.FieldCollector
)

var prompt = promptui.Select{
	Label: "Send the report to Slack?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one market intelligence collection and report the snapshot",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("live", "l", false, "attempt live collection instead of serving the synthetic dataset")
	runCmd.Flags().IntP("max-items", "m", 0, "override the collection cap")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before sending the report to slack")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting wanted-radar", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	pipeline := preparePipeline(ctx, config, logger)

	opts := market.RunOptions{
		ForceLive: cmd.Flag("live").Value.String() == "true",
		MaxItems:  config.Source.MaxItems,
	}
	if override, err := cmd.Flags().GetInt("max-items"); err == nil && override > 0 {
		opts.MaxItems = override
	}

	// Collection takes several seconds; run it off the command goroutine and
	// wait for the delivered snapshot, the same way a chat trigger would.
	results := make(chan *market.Snapshot, 1)
	pipeline.RunAsync(ctx, opts, func(snapshot *market.Snapshot) {
		results <- snapshot
	})
	snapshot := <-results

	report := RenderReport(snapshot)
	fmt.Println(report)

	if config.Slack == nil || !config.Slack.Enabled {
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			logger.Info("exiting", zap.String("reason", "report delivery declined"))
			return
		}
	}

	if err := deliverReport(ctx, config.Slack, report, logger); err != nil {
		logger.Fatal("delivering report", zap.Error(err))
	}
}

// preparePipeline wires the collector, parser, aggregator and the optional
// summarizer into one pipeline per the configuration.
func preparePipeline(ctx context.Context, config *Config, logger *zap.Logger) *market.Pipeline {
	validator := market.NewValidator(market.DefaultVocabulary())

	src := config.Source
	sessionCfg := wanted.SessionConfig{
		Category:          src.Category,
		SettleDelay:       src.SettleDelay,
		RequestsPerSecond: src.RequestsPerSecond,
		Timeout:           src.Timeout,
	}

	mode := strings.TrimSpace(strings.ToLower(src.Mode))
	if mode == "" {
		mode = sourceModeHTML
	}

	var factory market.CollectorFactory
	switch mode {
	case sourceModeAPI:
		factory = func() market.Collector {
			return wanted.NewAPISession(sessionCfg, logger.With(zap.String(collectorField, sourceModeAPI)))
		}
	case sourceModeHTML:
		factory = func() market.Collector {
			return wanted.NewSession(sessionCfg, logger.With(zap.String(collectorField, sourceModeHTML)))
		}
	default:
		logger.Fatal("unsupported source mode", zap.String("mode", src.Mode))
	}

	summarizer, err := prepareSummarizer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI summary", zap.Error(err))
	}

	return market.NewPipeline(
		market.PipelineConfig{MaxItems: src.MaxItems},
		market.PipelineDeps{
			NewCollector: factory,
			Parser:       market.NewParser(validator, logger),
			Aggregator:   market.NewAggregator(validator, logger),
			Validator:    validator,
			Summarizer:   summarizer,
			Logger:       logger,
		},
	)
}

func prepareSummarizer(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Summarizer, error) {
	if config == nil || !config.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	if config.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai summary is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		return nil, err
	}

	writerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewInsightWriter(generator, writerLogger, config.Gemini.MaxLogLength), nil
}

func deliverReport(ctx context.Context, config *SlackConfig, report string, logger *zap.Logger) error {
	if strings.TrimSpace(config.Channel) == "" {
		return fmt.Errorf("slack channel is required to deliver the report")
	}

	token, err := secrets.Load(secrets.Source{
		Name: "slack token",
		File: config.TokenFile,
		Env:  "SLACK_TOKEN",
	})
	if err != nil {
		return fmt.Errorf("%w (set slack.token-file or SLACK_TOKEN_FILE)", err)
	}

	return notify.NewSlack(token, config.Channel, logger).Send(ctx, report)
}
