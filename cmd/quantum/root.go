package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"QuantumPulse/internal/collector"
	"QuantumPulse/internal/config"
	"QuantumPulse/internal/notifier"
	"QuantumPulse/internal/recorder"
	"QuantumPulse/internal/scanner"
	"QuantumPulse/internal/universe"
)

var cfgPath string

// Execute builds and runs the root command.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "quantum",
		Short: "QuantumPulse multi-factor stock screener",
	}
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "path to config file")

	root.AddCommand(scanCmd(ctx))
	root.AddCommand(runCmd(ctx))
	root.AddCommand(versionCmd())
	return root.ExecuteContext(ctx)
}

// app holds the wired application components.
type app struct {
	cfg      *config.Config
	engine   *scanner.Engine
	universe *universe.Loader
	notifier *notifier.TelegramNotifier
	recorder recorder.Recorder
}

// buildApp loads configuration and wires collaborators in the order
// the daemon needs them.
func buildApp() (*app, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	fetcher := collector.NewFMPFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.RatePerSec)
	log.Info().Str("source", fetcher.Name()).Msg("data source initialized")

	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays, cfg.Scoring.RSIWindow)
	uni := universe.NewLoader(cfg.Universe.Tickers, cfg.Universe.File, cfg.Universe.RemoteCSV)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	engine := &scanner.Engine{
		Collector:   col,
		Universe:    uni,
		Recorder:    rec,
		Sender:      tn,
		Weights:     cfg.Weights,
		Scoring:     cfg.Scoring,
		Holdings:    cfg.Holdings,
		Concurrency: cfg.Concurrency,
	}

	cleanup := func() {
		if err := rec.Close(); err != nil {
			log.Error().Err(err).Msg("close recorder")
		}
	}
	return &app{
		cfg:      cfg,
		engine:   engine,
		universe: uni,
		notifier: tn,
		recorder: rec,
	}, cleanup, nil
}
