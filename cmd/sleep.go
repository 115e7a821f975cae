package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/noders-team/thyming/internal/config"
	"github.com/noders-team/thyming/pkg/timer"
)

func newSleepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sleep <duration>",
		Short:   "Sleep for a duration and report how long it took",
		Example: `  thyming sleep 1.5s`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration '%s': %w", args[0], err)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			return runSleep(ctx, cfg, d, cmd.OutOrStdout())
		},
	}

	addTimerFlags(cmd)
	return cmd
}

func runSleep(ctx context.Context, cfg config.Config, d time.Duration, out io.Writer, opts ...timer.Option) error {
	tm := timer.New(append(cfg.TimerOptions(), opts...)...)
	err := tm.Do(func() error {
		return tm.Sleep(ctx, d)
	})
	if err != nil {
		return fmt.Errorf("sleep interrupted: %w", err)
	}
	return writeReport(out, tm.Report(), cfg.Precision, false)
}
