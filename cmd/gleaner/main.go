package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/httpclient"
	"github.com/ternarybob/gleaner/internal/models"
	"github.com/ternarybob/gleaner/internal/services/assembler"
	"github.com/ternarybob/gleaner/internal/services/delivery"
	"github.com/ternarybob/gleaner/internal/services/pipeline"
	"github.com/ternarybob/gleaner/internal/services/render"
	"github.com/ternarybob/gleaner/internal/services/translate"
	"github.com/ternarybob/gleaner/internal/storage/badger"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	serveMode    = flag.Bool("serve", false, "Run sources on their cron schedules until signalled")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Gleaner version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> files -> env)
	// 2. Validate (aborts before any network or store access)
	// 3. Initialize logger
	// 4. Print banner

	if len(configFiles) == 0 {
		if _, err := os.Stat("gleaner.toml"); err == nil {
			configFiles = append(configFiles, "gleaner.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	if err := config.Validate(); err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Msg("Configuration invalid")
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open dedup store")
		os.Exit(1)
	}
	defer db.Close()

	store := badger.NewSeenStorage(db, logger)
	fetcher := httpclient.NewFetcher(&config.Fetch, logger)
	translator := translate.NewService(&config.Translate, logger)
	asm := assembler.NewService(logger)
	renderer := render.NewService(&config.Render, logger)

	messenger, err := delivery.NewService(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to messaging channel")
		os.Exit(1)
	}

	orchestrator := pipeline.NewOrchestrator(config, fetcher, translator, store, asm, renderer, messenger, logger)

	if *serveMode {
		runScheduled(orchestrator, config, logger)
		return
	}

	results := orchestrator.RunAll(context.Background())
	for _, result := range results {
		if result.Status == models.RunAborted {
			os.Exit(1)
		}
	}
}

// runScheduled registers each source with the cron scheduler and blocks
// until interrupted.
func runScheduled(orchestrator *pipeline.Orchestrator, config *common.Config, logger arbor.ILogger) {
	scheduler := cron.New(cron.WithLogger(common.NewCronLogger(config.Logging.Level)))

	for i := range config.Sources {
		src := &config.Sources[i]
		if src.Schedule == "" {
			logger.Warn().Str("source", src.Name).Msg("Source has no schedule, skipping in serve mode")
			continue
		}
		if _, err := scheduler.AddFunc(src.Schedule, func() {
			orchestrator.RunSource(context.Background(), src)
		}); err != nil {
			logger.Fatal().Err(err).Str("source", src.Name).Msg("Failed to schedule source")
			os.Exit(1)
		}
		logger.Info().Str("source", src.Name).Str("schedule", src.Schedule).Msg("Source scheduled")
	}

	scheduler.Start()
	defer scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down")
}
