package service

import "github.com/prometheus/client_golang/prometheus"

var (
	refreshesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "catalogd",
		Subsystem: "pipeline",
		Name:      "refreshes_total",
		Help:      "Total successful catalog refreshes",
	})

	fetchFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "catalogd",
		Subsystem: "pipeline",
		Name:      "fetch_failures_total",
		Help:      "Total failed upstream fetch attempts",
	})

	modelsCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalogd",
		Subsystem: "pipeline",
		Name:      "models",
		Help:      "Models in the current catalog snapshot",
	})

	entriesDropped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalogd",
		Subsystem: "pipeline",
		Name:      "entries_dropped",
		Help:      "Raw entries rejected by validation in the last build",
	})

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "catalogd",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Catalog cache hits",
	})

	cacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "catalogd",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Catalog cache misses (including absorbed cache failures)",
	})
)

func init() {
	prometheus.MustRegister(refreshesTotal, fetchFailuresTotal, modelsCurrent, entriesDropped, cacheHitsTotal, cacheMissesTotal)
}
