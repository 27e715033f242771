// Package metrics contains the Prometheus-based implementation of the mining
// metrics.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/microprediction/muid"
	"github.com/prometheus/client_golang/prometheus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Namespace is the Prometheus namespace of all metrics in this package.
const Namespace = "muid"

const subsystemMiner = "miner"

// Miner is the Prometheus-based implementation of the [muid.Metrics]
// interface.
type Miner struct {
	// attempts is a counter of the candidate keys drawn.
	attempts prometheus.Counter

	// found is a counter of the keys found, labeled by difficulty.
	found *prometheus.CounterVec

	// duration is a histogram of the durations of calls to mine.
	duration prometheus.Histogram
}

// NewMiner registers the mining metrics in reg and returns a properly
// initialized *Miner.
func NewMiner(reg prometheus.Registerer) (m *Miner, err error) {
	const (
		attempts = "attempts_total"
		found    = "found_total"
		duration = "duration_seconds"
	)

	m = &Miner{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:      attempts,
			Subsystem: subsystemMiner,
			Namespace: Namespace,
			Help:      "The total number of candidate keys drawn.",
		}),
		found: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:      found,
			Subsystem: subsystemMiner,
			Namespace: Namespace,
			Help:      "The total number of keys found.  Label difficulty is the prefix length.",
		}, []string{"difficulty"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:      duration,
			Subsystem: subsystemMiner,
			Namespace: Namespace,
			Help:      "Time elapsed on mining, in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
	}

	var errs []error
	collectors := map[string]prometheus.Collector{
		attempts: m.attempts,
		found:    m.found,
		duration: m.duration,
	}

	for name, c := range collectors {
		if err = reg.Register(c); err != nil {
			errs = append(errs, fmt.Errorf("registering metrics %q: %w", name, err))
		}
	}

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	return m, nil
}

// type check
var _ muid.Metrics = (*Miner)(nil)

// IncrementAttempts implements the [muid.Metrics] interface for *Miner.
func (m *Miner) IncrementAttempts(_ context.Context, n uint64) {
	m.attempts.Add(float64(n))
}

// IncrementFound implements the [muid.Metrics] interface for *Miner.
func (m *Miner) IncrementFound(_ context.Context, difficulty int) {
	m.found.WithLabelValues(strconv.Itoa(difficulty)).Inc()
}

// ObserveMining implements the [muid.Metrics] interface for *Miner.
func (m *Miner) ObserveMining(_ context.Context, dur time.Duration) {
	m.duration.Observe(dur.Seconds())
}
