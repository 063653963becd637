package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// scanCmd runs one scan cycle and exits.
func scanCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one scan cycle over the universe and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := buildApp()
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := app.engine.RunCycle(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Finished scanning %d tickers (%d skipped).\n", report.Scanned+report.Skipped, report.Skipped)
			if n := len(report.SkipReasons); n > 0 && n <= 20 {
				for ticker, reason := range report.SkipReasons {
					fmt.Printf("  - %s: %s\n", ticker, reason)
				}
			}
			fmt.Printf("BUY signals: %d | EXIT signals: %d\n", len(report.Selected), len(report.Exits))
			return nil
		},
	}
}
