package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"QuantumPulse/internal/scheduler"
)

// runCmd starts the cron daemon with Telegram command polling.
func runCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the screener as a scheduled daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := buildApp()
			if err != nil {
				return err
			}
			defer cleanup()

			sched := scheduler.NewScheduler(ctx, app.engine, app.universe)
			if err := sched.RegisterAll(app.cfg.Schedule.ScanCron, app.cfg.Schedule.UniverseRefreshCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go app.notifier.StartPolling(ctx, sched.HandleCommand)
			log.Info().Msg("telegram polling started")

			if os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("RUN_ON_START enabled, executing scan now")
				go sched.RunScanNow()
			}

			log.Info().Msg("QuantumPulse is running")
			<-ctx.Done()
			log.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
}
