// Package timer provides a reusable stopwatch that records laps and logs them.
//
// A Timer is started with Start, clicked with Measure (keeps counting) or Stop
// (stops counting), and can be started again after it was stopped. Every click
// appends the elapsed time since the last Start to the recorded laps.
package timer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noders-team/thyming/pkg/model"
)

type Timer struct {
	mu        sync.Mutex
	name      string
	format    string
	precision int32
	logf      LogFunc
	clock     Clock
	observers []Observer

	running   bool
	startedAt time.Time
	laps      []time.Duration
}

func New(opts ...Option) *Timer {
	t := &Timer{
		format:    DefaultFormat,
		precision: DefaultPrecision,
		logf:      defaultLogFunc,
		clock:     RealClock{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the name given to the timer, possibly empty.
func (t *Timer) Name() string {
	return t.name
}

// String returns the display name used in errors.
func (t *Timer) String() string {
	if t.name != "" {
		return "Timer(name=" + t.name + ")"
	}
	return "Unnamed Timer"
}

// Start begins counting. msg is logged once the timer is running.
func (t *Timer) Start(msg Message) error {
	t.mu.Lock()
	if t.running {
		now := t.clock.Now()
		t.mu.Unlock()
		return &AlreadyRunningError{TimerName: t.String(), Timestamp: now}
	}
	t.running = true
	t.startedAt = t.clock.Now()
	t.mu.Unlock()

	t.Log(msg)
	return nil
}

// Measure records the time elapsed since Start and keeps counting.
func (t *Timer) Measure(pre, post Message) (time.Duration, error) {
	return t.click(ActionMeasure, false, pre, post)
}

// Stop records the time elapsed since Start and stops counting.
func (t *Timer) Stop(pre, post Message) (time.Duration, error) {
	return t.click(ActionStop, false, pre, post)
}

// Restart stops the timer and starts it again, returning the stopped lap.
// Stop and Start happen under one lock.
// Observers see the lap as a stop.
func (t *Timer) Restart(pre, post Message) (time.Duration, error) {
	return t.click(ActionStop, true, pre, post)
}

func (t *Timer) click(action Action, restart bool, pre, post Message) (time.Duration, error) {
	t.mu.Lock()
	now := t.clock.Now()
	if !t.running {
		t.mu.Unlock()
		return 0, &NotRunningError{TimerName: t.String(), Timestamp: now, Action: action}
	}

	elapsed := now.Sub(t.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	switch {
	case restart:
		t.startedAt = now
	case action == ActionStop:
		t.running = false
	}
	t.laps = append(t.laps, elapsed)
	observers := append([]Observer(nil), t.observers...)
	logging := t.logf != nil
	t.mu.Unlock()

	for _, o := range observers {
		o.Observe(t.name, action, elapsed)
	}
	if logging {
		t.Log(Text(t.clickMessage(elapsed, pre, post)))
	}
	return elapsed, nil
}

func (t *Timer) clickMessage(elapsed time.Duration, pre, post Message) string {
	now := t.clock.Now()

	var sb strings.Builder
	if head := pre.resolve(now); head != "" {
		sb.WriteString(head)
		sb.WriteByte('\n')
	} else if t.name != "" {
		sb.WriteString(t.name)
		sb.WriteString(":\n")
	}
	sb.WriteString(strings.ReplaceAll(t.format, "{}", FormatSeconds(elapsed, int(t.precision))))
	if tail := post.resolve(now); tail != "" {
		sb.WriteByte('\n')
		sb.WriteString(tail)
	}
	return sb.String()
}

// Log writes msg to the timer's sink, one call per line. Default messages are
// always a single line.
func (t *Timer) Log(msg Message) *Timer {
	t.mu.Lock()
	logf := t.logf
	t.mu.Unlock()

	if logf == nil || msg.IsZero() {
		return t
	}
	text := msg.resolve(t.clock.Now())
	if msg.kind == kindDefault {
		logf(text)
		return t
	}
	for _, line := range strings.Split(text, "\n") {
		logf(line)
	}
	return t
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Times returns a copy of the recorded laps in click order.
func (t *Timer) Times() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.laps...)
}

// Reset discards the recorded laps. A running timer keeps running.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.laps = nil
	t.mu.Unlock()
}

func (t *Timer) Summary() model.Summary {
	return model.Summarize(t.Times())
}

func (t *Timer) Report() model.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	laps := append([]time.Duration(nil), t.laps...)
	return model.Report{
		Name:    t.name,
		Running: t.running,
		Laps:    laps,
		Summary: model.Summarize(laps),
	}
}

// Do starts the timer, runs fn and stops the timer if fn left it running.
// The timer is stopped even when fn panics.
func (t *Timer) Do(fn func() error) error {
	if err := t.Start(NoMessage); err != nil {
		return err
	}
	defer func() {
		if t.Running() {
			_, _ = t.Stop(NoMessage, NoMessage)
		}
	}()
	return fn()
}

// Sleep waits for d on the timer's clock or until ctx is done.
func (t *Timer) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.clock.After(d):
		return nil
	}
}

// FormatSeconds renders d as seconds with a fixed number of decimals.
func FormatSeconds(d time.Duration, precision int) string {
	return decimal.New(int64(d), -9).StringFixed(int32(precision))
}
