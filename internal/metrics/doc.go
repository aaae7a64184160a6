// Package metrics defines the Prometheus metrics exported by the media
// runtime. Metrics are registered with promauto at package init and are
// served by the web control interface on /metrics.
package metrics
