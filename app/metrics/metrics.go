package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SectionWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unipath_section_writes_total",
			Help: "Number of section write operations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unipath_store_errors_total",
			Help: "Number of persistence failures surfaced as store errors, by operation.",
		},
		[]string{"op"},
	)

	SweepRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unipath_sweep_runs_total",
			Help: "Number of consistency sweep runs by outcome.",
		},
		[]string{"outcome"},
	)

	SweepDeletedRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unipath_sweep_deleted_rows_total",
			Help: "Rows removed by the consistency sweep, by orphan kind.",
		},
		[]string{"kind"},
	)

	AggregateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "unipath_aggregate_duration_seconds",
			Help:    "Time taken to build the curriculum snapshot.",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphCourses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "unipath_graph_courses",
			Help: "Number of courses in the last dependency graph built.",
		},
	)

	// Registry holds every collector above plus the Go runtime collectors.
	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		SectionWritesTotal,
		StoreErrorsTotal,
		SweepRunsTotal,
		SweepDeletedRowsTotal,
		AggregateDuration,
		GraphCourses,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Outcome maps an error to the "outcome" label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
