package logging

import (
	"context"
	"log/slog"

	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

// TraceObserver logs every dispatcher transition at debug level. Install it
// with Parser.WithObserver to trace how documents are dispatched.
type TraceObserver struct {
	logger *slog.Logger
}

// NewTraceObserver returns an observer logging to logger, or to
// slog.Default() when logger is nil.
func NewTraceObserver(logger *slog.Logger) *TraceObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &TraceObserver{logger: logger}
}

// Observe implements parser.Observer.
func (o *TraceObserver) Observe(t parser.Transition) {
	ctx := context.Background()
	if !o.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Dispatch "+string(t.Op),
		slog.String("kind", t.Kind.String()),
		slog.String("key", t.Key),
		slog.String("path", t.Path),
		slog.String("document", t.Document),
	)
}
