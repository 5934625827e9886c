package web

import "github.com/prometheus/client_golang/prometheus"

var (
	createRoomRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_controller",
			Subsystem: "room",
			Name:      "create_room_requests_total",
			Help:      "CreateRoom requests total.",
		},
		[]string{"code"},
	)
	joinRoomRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_controller",
			Subsystem: "room",
			Name:      "join_room_requests_total",
			Help:      "JoinRoom requests total.",
		},
		[]string{"code"},
	)
	randomJoinRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_controller",
			Subsystem: "room",
			Name:      "random_join_requests_total",
			Help:      "RandomJoinRoom requests total.",
		},
		[]string{"code", "outcome"},
	)
	startRoomRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_controller",
			Subsystem: "room",
			Name:      "start_room_requests_total",
			Help:      "StartRoom requests total.",
		},
		[]string{"code"},
	)
	startRoomDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena_controller",
			Subsystem: "room",
			Name:      "start_room_duration_seconds",
			Help:      "StartRoom duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code"},
	)
	exportRoomResultsRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena_controller",
			Subsystem: "room",
			Name:      "export_room_results_requests_total",
			Help:      "ExportRoomResults requests total.",
		},
		[]string{"code", "format"},
	)
)

func init() {
	prometheus.MustRegister(
		createRoomRequestsTotal,
		joinRoomRequestsTotal,
		randomJoinRequestsTotal,
		startRoomRequestsTotal,
		startRoomDurationSeconds,
		exportRoomResultsRequestsTotal,
	)
}
