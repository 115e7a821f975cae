package model

import "time"

// Summary aggregates the laps recorded by a timer.
type Summary struct {
	Count int
	Total time.Duration
	Mean  time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Report is a point-in-time snapshot of a timer.
type Report struct {
	Name    string
	Running bool
	Laps    []time.Duration
	Summary Summary
}

// Summarize computes a Summary over laps. An empty slice yields the zero Summary.
func Summarize(laps []time.Duration) Summary {
	if len(laps) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(laps),
		Min:   laps[0],
		Max:   laps[0],
	}
	for _, lap := range laps {
		s.Total += lap
		if lap < s.Min {
			s.Min = lap
		}
		if lap > s.Max {
			s.Max = lap
		}
	}
	s.Mean = s.Total / time.Duration(len(laps))
	return s
}
