package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/inteldash/pkg/collector"
	"github.com/umputun/inteldash/pkg/config"
	"github.com/umputun/inteldash/pkg/llm"
	"github.com/umputun/inteldash/pkg/publisher"
	"github.com/umputun/inteldash/pkg/repository"
	"github.com/umputun/inteldash/pkg/scheduler"
	"github.com/umputun/inteldash/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address (overrides config)"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting inteldash version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires the application together and blocks until the context is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	// re-setup logging with secrets masked now that the config is known
	setupLog(opts.Debug, secrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if e := repos.Close(); e != nil {
			log.Printf("[WARN] failed to close database: %v", e)
		}
	}()

	var updater server.Updater
	if cfg.Schedule.Enabled {
		sched := makeScheduler(cfg, repos)
		sched.Start(ctx)
		defer sched.Stop()
		updater = sched
	}

	srv := server.New(cfg, repos.Record, updater, revision, opts.Debug)
	return srv.Run(ctx)
}

// makeScheduler assembles the update pipeline from the config
func makeScheduler(cfg *config.Config, repos *repository.Repositories) *scheduler.Scheduler {
	var newsAPI collector.NewsSource
	if cfg.Collector.NewsAPI.AccessKey != "" {
		newsAPI = collector.NewNewsAPIClient(cfg.Collector.NewsAPI, cfg.Collector.Timeout)
	}

	var extractor collector.Extractor
	if cfg.Extraction.Enabled {
		extractor = collector.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent)
	}

	coll := collector.New(cfg.Collector, cfg.Extraction, newsAPI,
		collector.NewFeedFetcher(cfg.Collector.Timeout), extractor)

	return scheduler.New(scheduler.Config{
		Collector:  coll,
		Classifier: llm.NewClassifier(cfg.LLM),
		Archive:    repos.Record,
		Publisher:  publisher.New(cfg.Publish),
		Interval:   time.Duration(cfg.Schedule.UpdateInterval) * time.Minute,
	})
}

// secrets returns config values that must never appear in logs
func secrets(cfg *config.Config) []string {
	var secs []string
	for _, s := range []string{cfg.LLM.APIKey, cfg.Publish.GitHub.Token, cfg.Collector.NewsAPI.AccessKey} {
		if s != "" {
			secs = append(secs, s)
		}
	}
	return secs
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
