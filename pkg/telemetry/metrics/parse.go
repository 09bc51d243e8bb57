package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

// ParseMetrics tracks parse runs and individual documents.
//
// Metrics:
//   - facesconfig_parser_parses_total: Parse runs by status
//   - facesconfig_parser_parse_duration_seconds: Parse run duration
//   - facesconfig_parser_parse_documents: Documents per parse run
//   - facesconfig_parser_documents_total: Documents by status
//   - facesconfig_parser_document_duration_seconds: Per-document dispatch duration
type ParseMetrics struct {
	parsesTotal      *prometheus.CounterVec
	parseDuration    prometheus.Histogram
	parseDocuments   prometheus.Histogram
	documentsTotal   *prometheus.CounterVec
	documentDuration prometheus.Histogram
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of parse runs",
			},
			[]string{"status"},
		),
		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parse runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
		parseDocuments: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_documents",
				Help:      "Number of documents per parse run",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8), // 1 to 128
			},
		),
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_total",
				Help:      "Total number of dispatched documents",
			},
			[]string{"status"},
		),
		documentDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "document_duration_seconds",
				Help:      "Duration of single document dispatch in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
		pm.parseDocuments,
		pm.documentsTotal,
		pm.documentDuration,
	)

	return pm
}

// RecordParse records one parse run.
func (pm *ParseMetrics) RecordParse(status string, documents int, duration time.Duration) {
	pm.parsesTotal.WithLabelValues(status).Inc()
	pm.parseDuration.Observe(duration.Seconds())
	pm.parseDocuments.Observe(float64(documents))
}

// RecordDocument records one dispatched document.
func (pm *ParseMetrics) RecordDocument(status string, duration time.Duration) {
	pm.documentsTotal.WithLabelValues(status).Inc()
	pm.documentDuration.Observe(duration.Seconds())
}

// DispatchMetrics counts dispatcher transitions.
//
// Metrics:
//   - facesconfig_parser_transitions_total: Transitions by op and entity kind
type DispatchMetrics struct {
	transitionsTotal *prometheus.CounterVec
}

// NewDispatchMetrics creates and registers dispatch metrics with the provided registry.
func NewDispatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DispatchMetrics {
	dm := &DispatchMetrics{
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "transitions_total",
				Help:      "Total number of dispatcher transitions",
			},
			[]string{"op", "kind"},
		),
	}

	registry.MustRegister(dm.transitionsTotal)

	// Pre-create the merge series so "no merges yet" reads as zero.
	for _, k := range model.Kinds() {
		dm.transitionsTotal.WithLabelValues(string(parser.OpMerge), k.String())
	}

	return dm
}

// Observe counts one transition.
func (dm *DispatchMetrics) Observe(t parser.Transition) {
	dm.transitionsTotal.WithLabelValues(string(t.Op), t.Kind.String()).Inc()
}
