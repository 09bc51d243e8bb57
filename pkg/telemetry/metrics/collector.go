package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/facesconfig/pkg/config"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

// Collector owns every facesconfig metric. It implements parser.Observer
// and parser.Recorder so a parser can report to it directly.
//
// Label values come from closed sets (kinds, ops, error types), so no
// cardinality limiting is needed.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics    *ParseMetrics
	dispatchMetrics *DispatchMetrics
	reloadMetrics   *ReloadMetrics
}

var (
	_ parser.Observer = (*Collector)(nil)
	_ parser.Recorder = (*Collector)(nil)
)

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
//	p := parser.NewParser().WithObserver(collector).WithRecorder(collector)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		parseMetrics:    NewParseMetrics(cfg, registry),
		dispatchMetrics: NewDispatchMetrics(cfg, registry),
		reloadMetrics:   NewReloadMetrics(cfg, registry),
	}
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordDocument implements parser.Recorder.
func (c *Collector) RecordDocument(document string, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}
	c.parseMetrics.RecordDocument(Status(err), duration)
}

// RecordParse implements parser.Recorder.
func (c *Collector) RecordParse(documents int, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}
	c.parseMetrics.RecordParse(Status(err), documents, duration)
}

// Observe implements parser.Observer.
func (c *Collector) Observe(t parser.Transition) {
	if !c.config.Enabled {
		return
	}
	c.dispatchMetrics.Observe(t)
}

// RecordReload records a manager load or reload attempt.
func (c *Collector) RecordReload(duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}
	c.reloadMetrics.RecordReload(Status(err), duration)
}

// SetGraph publishes the entity counts of the active graph.
func (c *Collector) SetGraph(cfg *model.FacesConfig) {
	if !c.config.Enabled || cfg == nil {
		return
	}
	c.reloadMetrics.SetEntities(model.Count(cfg))
}

// Status maps an outcome to a label value: "success", the error type of a
// parse error, "canceled" or "error".
func Status(err error) string {
	if err == nil {
		return "success"
	}
	var perr *fcErrors.Error
	if errors.As(err, &perr) {
		return string(perr.Type)
	}
	if errors.Is(err, parser.ErrDocumentTooLarge) {
		return "too_large"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "error"
}
