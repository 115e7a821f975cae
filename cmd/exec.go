package main

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/noders-team/thyming/internal/config"
	"github.com/noders-team/thyming/pkg/codec"
	"github.com/noders-team/thyming/pkg/model"
	"github.com/noders-team/thyming/pkg/timer"
)

var jsonOutput bool

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [flags] -- <command> [args...]",
		Short: "Time a command",
		Example: `  thyming exec -- make build
  thyming exec --name tests --repeat 5 --json -- go test ./...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runExec(cmd.Context(), cfg, args, jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addTimerFlags(cmd)
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Int("repeat", 1, "number of times to run the command")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	return cmd
}

func addTimerFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "name given to the timer")
	cmd.Flags().String("format", timer.DefaultFormat, `lap message template, "{}" is replaced by the elapsed seconds`)
	cmd.Flags().Int("precision", timer.DefaultPrecision, "number of decimals in lap messages")
}

func runExec(ctx context.Context, cfg config.Config, args []string, asJSON bool, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	tm := timer.New(cfg.TimerOptions()...)
	if err := tm.Start(timer.Default(timer.Start)); err != nil {
		return err
	}

	for i := 1; i <= cfg.Repeat; i++ {
		log.Debug().Msgf("run %d/%d: %s", i, cfg.Repeat, strings.Join(args, " "))

		c := exec.CommandContext(ctx, args[0], args[1:]...)
		c.Stdout = stdout
		c.Stderr = stderr
		runErr := c.Run()

		pre := timer.Text(fmt.Sprintf("run %d/%d", i, cfg.Repeat))
		if runErr != nil {
			_, _ = tm.Stop(pre, timer.Text("failed: "+runErr.Error()))
			return fmt.Errorf("run %d of '%s' failed: %w", i, args[0], runErr)
		}

		var err error
		if i < cfg.Repeat {
			_, err = tm.Restart(pre, timer.NoMessage)
		} else {
			_, err = tm.Stop(pre, timer.Default(timer.End))
		}
		if err != nil {
			return err
		}
	}

	return writeReport(stdout, tm.Report(), cfg.Precision, asJSON)
}

func writeReport(w io.Writer, report model.Report, precision int, asJSON bool) error {
	if asJSON {
		data, err := codec.NewReportCodecWithOptions(true, int32(precision)).Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	s := report.Summary
	_, err := fmt.Fprintf(w, "runs: %d total: %ss mean: %ss min: %ss max: %ss\n",
		s.Count,
		timer.FormatSeconds(s.Total, precision),
		timer.FormatSeconds(s.Mean, precision),
		timer.FormatSeconds(s.Min, precision),
		timer.FormatSeconds(s.Max, precision),
	)
	return err
}
