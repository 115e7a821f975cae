package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noders-team/thyming/internal/config"
	"github.com/noders-team/thyming/pkg/codec"
	"github.com/noders-team/thyming/pkg/testutil"
	"github.com/noders-team/thyming/pkg/timer"
)

func init() {
	log.Logger = zerolog.Nop()
}

func TestRunExec_RepeatJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Name = "noop"
	cfg.Repeat = 3

	var out, errOut bytes.Buffer
	err := runExec(context.Background(), cfg, []string{"true"}, true, &out, &errOut)
	require.NoError(t, err)

	report, err := codec.NewReportCodec().Unmarshal(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "noop", report.Name)
	assert.False(t, report.Running)
	assert.Len(t, report.Laps, 3)
	assert.Equal(t, 3, report.Summary.Count)
}

func TestRunExec_Failure(t *testing.T) {
	cfg := config.Default()
	cfg.Repeat = 2

	var out, errOut bytes.Buffer
	err := runExec(context.Background(), cfg, []string{"false"}, false, &out, &errOut)
	assert.ErrorContains(t, err, "run 1 of 'false' failed")
	assert.Empty(t, out.String())
}

func TestRunSleep_MockClock(t *testing.T) {
	clock := testutil.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := config.Default()
	cfg.Precision = 2

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- runSleep(context.Background(), cfg, 2*time.Second, &out, timer.WithClock(clock), timer.WithoutLogger())
	}()

	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)
	clock.Advance(2 * time.Second)

	require.NoError(t, <-done)
	assert.Equal(t, "runs: 1 total: 2.00s mean: 2.00s min: 2.00s max: 2.00s\n", out.String())
}

func TestRunSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runSleep(ctx, config.Default(), time.Hour, &out, timer.WithoutLogger())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestRootCmd_ExecFlags(t *testing.T) {
	t.Cleanup(func() {
		jsonOutput = false
		log.Logger = zerolog.Nop()
	})

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"exec", "--name", "flagged", "--repeat", "2", "--json", "--", "true"})

	require.NoError(t, root.Execute())

	report, err := codec.NewReportCodec().Unmarshal(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "flagged", report.Name)
	assert.Equal(t, 2, report.Summary.Count)
}

func TestRootCmd_InvalidDuration(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"sleep", "soon"})

	assert.ErrorContains(t, root.Execute(), "invalid duration 'soon'")
}

func TestRootCmd_ExecPassesCommandFlags(t *testing.T) {
	t.Cleanup(func() {
		jsonOutput = false
		log.Logger = zerolog.Nop()
	})

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"exec", "--json", "true", "-la"})

	require.NoError(t, root.Execute())

	report, err := codec.NewReportCodec().Unmarshal(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Count)
}
