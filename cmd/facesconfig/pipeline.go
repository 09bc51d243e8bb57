package main

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
	"mercator-hq/facesconfig/pkg/history"
	"mercator-hq/facesconfig/pkg/manager"
	"mercator-hq/facesconfig/pkg/telemetry/logging"
	"mercator-hq/facesconfig/pkg/telemetry/metrics"
)

// pipelineOptions carries the optional telemetry sinks of a parser.
type pipelineOptions struct {
	tracer    trace.Tracer
	collector *metrics.Collector
}

// newParser builds a parser from the configuration.
func (a *app) newParser(opts pipelineOptions) *parser.Parser {
	cfg := a.config
	p := parser.NewParser().
		WithLogger(a.logger).
		WithMaxDocumentSize(cfg.Parser.MaxDocumentSize).
		WithParallelism(cfg.Parser.Parallelism)

	if cfg.Documents.SchemaDir != "" {
		p.WithResolver(event.NewDirResolver(cfg.Documents.SchemaDir))
	}

	var observers []parser.Observer
	if cfg.Parser.Trace {
		observers = append(observers, logging.NewTraceObserver(a.logger))
	}
	if opts.collector != nil {
		observers = append(observers, opts.collector)
		p.WithRecorder(opts.collector)
	}
	p.WithObserver(parser.Observers(observers...))

	if opts.tracer != nil {
		p.WithTracer(opts.tracer)
	}
	return p
}

// loadResult is the outcome of parsing a document set once.
type loadResult struct {
	runID    string
	version  string
	sources  []manager.Source
	graph    *model.FacesConfig
	duration time.Duration
}

func (r *loadResult) paths() []string {
	paths := make([]string, len(r.sources))
	for i, s := range r.sources {
		paths[i] = s.Path
	}
	return paths
}

// load reads the documents and parses them as one run. The sources are
// returned even when parsing fails.
func (a *app) load(ctx context.Context, p *parser.Parser, docs config.DocumentsConfig, runID string) (*loadResult, error) {
	ctx = logging.WithRunID(ctx, runID)
	a.logger.DebugContext(ctx, "Loading documents", "paths", docs.Paths)

	loader := manager.NewLoader(&docs, a.config.Parser.MaxDocumentSize)
	sources, err := loader.Load()
	if err != nil {
		return nil, err
	}

	res := &loadResult{runID: runID, version: manager.Version(sources), sources: sources}
	parsed := make([]parser.Document, len(sources))
	for i, s := range sources {
		parsed[i] = s.Document()
	}

	start := time.Now()
	res.graph, err = p.Parse(parser.ContextWithRunID(ctx, runID), parsed...)
	res.duration = time.Since(start)
	return res, err
}

// record stores the outcome in the load history when history is enabled.
func (a *app) record(ctx context.Context, res *loadResult, err error) {
	if !a.config.History.Enabled || res == nil {
		return
	}
	store, serr := history.Open(&a.config.History, a.logger)
	if serr != nil {
		a.logger.Warn("Load history unavailable", "error", serr)
		return
	}
	defer store.Close()

	rec := history.NewRecord(history.Outcome{
		RunID:     res.runID,
		Trigger:   history.TriggerLoad,
		Version:   res.version,
		Documents: res.paths(),
		Graph:     res.graph,
		Err:       err,
		Duration:  res.duration,
	})
	if serr := store.Store(ctx, rec); serr != nil {
		a.logger.Warn("Failed to record load history", "error", serr)
	}
}
