package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "route_analyzer",
		Name:      "analyses_total",
		Help:      "Completed analysis runs by mode and outcome.",
	}, []string{"mode", "outcome"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "route_analyzer",
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end duration of one analysis run.",
		Buckets:   prometheus.DefBuckets,
	})

	routesScoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "route_analyzer",
		Name:      "routes_scored_total",
		Help:      "Candidate routes scored across all runs.",
	})

	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "route_analyzer",
		Name:      "executions_total",
		Help:      "Execution attempts by outcome.",
	}, []string{"outcome"})
)

func ObserveAnalysis(mode string, success bool, d time.Duration) {
	analysesTotal.WithLabelValues(mode, outcome(success)).Inc()
	analysisDuration.Observe(d.Seconds())
}

func AddRoutesScored(n int) {
	routesScoredTotal.Add(float64(n))
}

func ObserveExecution(success bool) {
	executionsTotal.WithLabelValues(outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
