package web

import "github.com/prometheus/client_golang/prometheus"

var (
	submitCodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_controller",
			Subsystem: "submission",
			Name:      "submit_code_requests_total",
			Help:      "SubmitCode requests total.",
		},
		[]string{"code", "status"},
	)
	submitCodeDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena_controller",
			Subsystem: "submission",
			Name:      "submit_code_duration_seconds",
			Help:      "SubmitCode duration in seconds, judging included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		submitCodeRequestsTotal,
		submitCodeDurationSeconds,
	)
}
