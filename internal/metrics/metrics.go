package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Interface lifecycle metrics
var (
	IntfCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_runtime_interfaces_created_total",
			Help: "Total number of control interfaces created, by resolved module",
		},
		[]string{"module"},
	)

	IntfCreateFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_runtime_interface_create_failures_total",
			Help: "Total number of failed interface creation attempts",
		},
		[]string{"reason"},
	)

	IntfActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_runtime_interfaces_active",
			Help: "Number of control interfaces currently registered",
		},
	)

	IntfDestroyedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_runtime_interfaces_destroyed_total",
			Help: "Total number of control interfaces stopped during teardown",
		},
	)
)

// Playlist metrics
var (
	PlaylistItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_runtime_playlist_items",
			Help: "Number of items currently in the shared playlist",
		},
	)

	PlaylistCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_runtime_playlist_commands_total",
			Help: "Total number of playlist commands executed",
		},
		[]string{"command"},
	)
)

// Library metrics
var (
	LibraryQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_runtime_library_queries_total",
			Help: "Total number of media library queries",
		},
		[]string{"operation", "status"},
	)
)
