// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package dmmetrics holds the optional Prometheus instrumentation for a
// dedupmulti.MultiIndex, following the same "expose the real
// prometheus.Collector type, don't hide it behind an abstraction" stance
// as pkg/metrics/metrics.go: callers that already run a prometheus
// registry just Register a Collector, nothing more specialized.
package dmmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace scopes every metric this package registers, mirroring
// metrics.CiliumAgentNamespace's role for the full agent.
const Namespace = "dedupmulti"

// Collector holds the live gauges and counters for one MultiIndex.
// The gauges and counters are themselves safe for concurrent use by a
// scraping goroutine while the owning goroutine drives the MultiIndex,
// so no additional locking is needed here.
type Collector struct {
	Records      prometheus.Gauge
	Entries      prometheus.Gauge
	Heads        prometheus.Gauge
	DirtyEvicted prometheus.Counter
}

// NewCollector builds a Collector with the given label, e.g. the name of
// the record type it instruments ("route", "neighbor", ...). It is not
// registered with any registry; call Register or use
// prometheus.MustRegister(c.Collectors()...) as needed.
func NewCollector(subsystem string) *Collector {
	return &Collector{
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "interned_records",
			Help:      "Number of distinct canonical records currently interned.",
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "member_entries",
			Help:      "Number of live membership entries across all index types.",
		}),
		Heads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "partition_heads",
			Help:      "Number of live partition heads across all index types.",
		}),
		DirtyEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "dirty_sweep_evicted_total",
			Help:      "Total entries evicted by DirtyRemoveInstance sweeps.",
		}),
	}
}

// Collectors returns every prometheus.Collector owned by c, for bulk
// registration.
func (c *Collector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Records, c.Entries, c.Heads, c.DirtyEvicted}
}

// Register registers every metric in c against reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range c.Collectors() {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}
