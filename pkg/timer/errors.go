package timer

import (
	"errors"
	"fmt"
	"time"
)

const (
	errorTimestampLayout       = "2006-01-02T15:04:05"
	errorTimestampLayoutMicros = "2006-01-02T15:04:05.000000"
)

// formatErrorTimestamp prints microseconds only when there are any.
func formatErrorTimestamp(ts time.Time) string {
	if ts.Nanosecond()/int(time.Microsecond) == 0 {
		return ts.Format(errorTimestampLayout)
	}
	return ts.Format(errorTimestampLayoutMicros)
}

var (
	ErrAlreadyRunning = errors.New("timer already running")
	ErrNotRunning     = errors.New("timer not running")
)

// Action names the click that was attempted on a timer.
type Action string

const (
	ActionMeasure Action = "measure"
	ActionStop    Action = "stop"
)

// AlreadyRunningError is returned by Start when the timer is already counting.
type AlreadyRunningError struct {
	TimerName string
	Timestamp time.Time
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("[%s] tried to start %s but it was already running",
		formatErrorTimestamp(e.Timestamp), e.TimerName)
}

func (e *AlreadyRunningError) Is(target error) bool {
	return target == ErrAlreadyRunning
}

// NotRunningError is returned by Measure and Stop when the timer was never started.
type NotRunningError struct {
	TimerName string
	Timestamp time.Time
	Action    Action
}

func (e *NotRunningError) Error() string {
	return fmt.Sprintf("[%s] tried to click %q on %s but it wasn't running",
		formatErrorTimestamp(e.Timestamp), string(e.Action), e.TimerName)
}

func (e *NotRunningError) Is(target error) bool {
	return target == ErrNotRunning
}
