package timer

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultFormat    = "Elapsed time: {} seconds."
	DefaultPrecision = 4
)

// LogFunc receives one line of timer output.
type LogFunc func(line string)

// Observer is notified of every lap a timer records.
type Observer interface {
	Observe(name string, action Action, elapsed time.Duration)
}

type Option func(*Timer)

func WithName(name string) Option {
	return func(t *Timer) {
		t.name = name
	}
}

// WithFormat sets the click message template. Every "{}" is replaced by the
// elapsed seconds.
func WithFormat(format string) Option {
	return func(t *Timer) {
		t.format = format
	}
}

func WithPrecision(precision int) Option {
	return func(t *Timer) {
		if precision < 0 {
			precision = 0
		}
		t.precision = int32(precision)
	}
}

// WithLogger routes timer output to l at info level.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Timer) {
		t.logf = func(line string) {
			l.Info().Msg(line)
		}
	}
}

func WithLogFunc(f LogFunc) Option {
	return func(t *Timer) {
		t.logf = f
	}
}

// WithoutLogger disables all timer output.
func WithoutLogger() Option {
	return func(t *Timer) {
		t.logf = nil
	}
}

func WithClock(c Clock) Option {
	return func(t *Timer) {
		if c != nil {
			t.clock = c
		}
	}
}

func WithObserver(o Observer) Option {
	return func(t *Timer) {
		if o != nil {
			t.observers = append(t.observers, o)
		}
	}
}

func defaultLogFunc(line string) {
	log.Info().Msg(line)
}
