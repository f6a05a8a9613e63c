// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package treesas

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds prometheus collectors describing emissions. Register them
// with a prometheus.Registerer through Collectors, and feed them by adding
// EventListener to Options.EventListener (see TeeEventListener).
type Metrics struct {
	// TreesEmitted counts emissions that completed without error.
	TreesEmitted prometheus.Counter
	// EmitErrors counts failed emissions.
	EmitErrors prometheus.Counter
	// BytesEmitted counts the scoring code written, including the partial
	// output of failed emissions.
	BytesEmitted prometheus.Counter
	// TreeDepth is the distribution of the depth of emitted trees.
	TreeDepth prometheus.Histogram
	// EmitLatency is the distribution of emission durations, in seconds.
	EmitLatency prometheus.Histogram
}

// NewMetrics constructs Metrics whose collectors are named with the given
// prometheus namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TreesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trees_emitted_total",
			Help:      "Number of trees emitted.",
		}),
		EmitErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emit_errors_total",
			Help:      "Number of failed tree emissions.",
		}),
		BytesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emitted_bytes_total",
			Help:      "Bytes of scoring code written.",
		}),
		TreeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_depth",
			Help:      "Depth of emitted trees.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		EmitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "emit_latency_seconds",
			Help:      "Time spent emitting a tree.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 7),
		}),
	}
}

// Collectors returns all of the collectors in m.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TreesEmitted, m.EmitErrors, m.BytesEmitted, m.TreeDepth, m.EmitLatency,
	}
}

// EventListener returns an EventListener that records every emission in m.
// The collectors are safe for concurrent use, so the listener may be used
// with EmitForest.
func (m *Metrics) EventListener() EventListener {
	return EventListener{
		TreeEmitted: func(info EmitInfo) {
			m.BytesEmitted.Add(float64(info.Bytes))
			m.EmitLatency.Observe(info.Duration.Seconds())
			if info.Err != nil {
				m.EmitErrors.Inc()
				return
			}
			m.TreesEmitted.Inc()
			m.TreeDepth.Observe(float64(info.MaxDepth))
		},
	}
}
