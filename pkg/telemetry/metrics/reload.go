package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// ReloadMetrics tracks graph loads done by the manager.
//
// Metrics:
//   - facesconfig_parser_reloads_total: Load and reload attempts by status
//   - facesconfig_parser_reload_duration_seconds: Load duration
//   - facesconfig_parser_last_reload_success_timestamp_seconds: Time of the last good load
//   - facesconfig_parser_entities: Entities of the active graph by kind
type ReloadMetrics struct {
	reloadsTotal   *prometheus.CounterVec
	reloadDuration prometheus.Histogram
	lastSuccess    prometheus.Gauge
	entities       *prometheus.GaugeVec
}

// NewReloadMetrics creates and registers reload metrics with the provided registry.
func NewReloadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ReloadMetrics {
	rm := &ReloadMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of graph load attempts",
			},
			[]string{"status"},
		),
		reloadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reload_duration_seconds",
				Help:      "Duration of graph loads in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_reload_success_timestamp_seconds",
				Help:      "Unix time of the last successful graph load",
			},
		),
		entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entities",
				Help:      "Number of entities in the active graph",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(rm.reloadsTotal, rm.reloadDuration, rm.lastSuccess, rm.entities)
	return rm
}

// RecordReload records one load attempt.
func (rm *ReloadMetrics) RecordReload(status string, duration time.Duration) {
	rm.reloadsTotal.WithLabelValues(status).Inc()
	rm.reloadDuration.Observe(duration.Seconds())
	if status == "success" {
		rm.lastSuccess.SetToCurrentTime()
	}
}

// SetEntities publishes per-kind entity counts. Kinds missing from counts
// are reported as zero.
func (rm *ReloadMetrics) SetEntities(counts map[model.Kind]int) {
	for _, k := range model.Kinds() {
		rm.entities.WithLabelValues(k.String()).Set(float64(counts[k]))
	}
}
