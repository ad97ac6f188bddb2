// Package metrics instruments the storage engine and query builder with
// Prometheus counters and histograms, grounded on drand's metrics.go
// package-level-vars-plus-explicit-Register convention (rather than a
// side-effecting init()).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RetrieveDuration observes the wall-clock duration of a Storage
	// Retrieve call, labeled by the worker count it ran with.
	RetrieveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "sinkhole_retrieve_duration_seconds",
		Help: "Duration of a PIR retrieval against a Storage database",
	}, []string{"parallelism"})

	// RetrieveTotal counts retrieval attempts, labeled by outcome.
	RetrieveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sinkhole_retrieve_total",
		Help: "Number of PIR retrieval attempts",
	}, []string{"result"})

	// QueryBuildDuration observes the wall-clock duration of building a
	// client query vector.
	QueryBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "sinkhole_query_build_duration_seconds",
		Help: "Duration of building an encrypted PIR query vector",
	})
)

// Register registers every sinkhole metric on reg. Safe to call once per
// registry; callers that do not need metrics (e.g. most tests) can simply
// never call it.
func Register(reg *prometheus.Registry) error {
	for _, c := range []prometheus.Collector{RetrieveDuration, RetrieveTotal, QueryBuildDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
