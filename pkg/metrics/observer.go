// Package metrics exports timer laps to Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noders-team/thyming/pkg/timer"
)

const unnamedLabel = "unnamed"

// Observer records every lap of the timers it is attached to.
type Observer struct {
	laps   *prometheus.HistogramVec
	clicks *prometheus.CounterVec
}

var _ timer.Observer = (*Observer)(nil)

// NewObserver registers the lap histogram and click counter with reg.
func NewObserver(reg prometheus.Registerer, namespace string) (*Observer, error) {
	o := &Observer{
		laps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "timer_lap_seconds",
			Help:      "Elapsed time recorded by timer clicks",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"timer", "action"}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timer_clicks_total",
			Help:      "Total number of timer clicks",
		}, []string{"timer", "action"}),
	}

	var registered []prometheus.Collector
	for _, c := range []prometheus.Collector{o.laps, o.clicks} {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			return nil, fmt.Errorf("failed to register timer metrics: %w", err)
		}
		registered = append(registered, c)
	}
	return o, nil
}

func (o *Observer) Observe(name string, action timer.Action, elapsed time.Duration) {
	if name == "" {
		name = unnamedLabel
	}
	o.laps.WithLabelValues(name, string(action)).Observe(elapsed.Seconds())
	o.clicks.WithLabelValues(name, string(action)).Inc()
}
