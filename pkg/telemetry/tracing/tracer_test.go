package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercator-hq/facesconfig/internal/testdocs"
	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			wantErr: true,
		},
		{
			name:   "disabled",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test"},
		},
		{
			name: "enabled always",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     SamplerAlways,
				Endpoint:    "localhost:4317",
				ServiceName: "test",
				OTLP:        config.OTLPConfig{Insecure: true, Timeout: time.Second},
			},
			wantEnabled: true,
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     "sometimes",
				Endpoint:    "localhost:4317",
				ServiceName: "test",
				OTLP:        config.OTLPConfig{Insecure: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
			if tracer.Tracer() == nil {
				t.Error("Tracer() returned nil")
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = tracer.Shutdown(ctx)
		})
	}
}

func TestDisabledTracer(t *testing.T) {
	tracer, err := New(&config.TracingConfig{}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, span := tracer.Start(context.Background(), "noop")
	defer span.End()

	if got := TraceID(ctx); got != "" {
		t.Errorf("TraceID() = %q, want empty", got)
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := newWithProcessor(&config.TracingConfig{
		Enabled:     true,
		Sampler:     SamplerAlways,
		ServiceName: "test",
	}, "test", sdktrace.NewSimpleSpanProcessor(exporter))
	if err != nil {
		t.Fatalf("newWithProcessor() error = %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, exporter
}

func TestTraceAndSpanID(t *testing.T) {
	tracer, _ := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "op")
	defer span.End()

	if got := TraceID(ctx); len(got) != 32 {
		t.Errorf("TraceID() = %q, want 32 hex characters", got)
	}
	if got := SpanID(ctx); len(got) != 16 {
		t.Errorf("SpanID() = %q, want 16 hex characters", got)
	}
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("TraceID(background) = %q, want empty", got)
	}
}

func TestSetError(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "op")
	SetError(span, nil)
	SetError(span, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status.Code)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("events = %d, want 1", len(spans[0].Events))
	}
}

func TestParserSpans(t *testing.T) {
	tracer, exporter := newRecordingTracer(t)

	p := parser.NewParser().WithTracer(tracer.Tracer())
	_, err := p.Parse(context.Background(),
		parser.BytesDocument("base.xml", testdocs.Read(t, testdocs.Base)),
		parser.BytesDocument("override.xml", testdocs.Read(t, testdocs.Override)),
	)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	names := map[string]int{}
	for _, s := range exporter.GetSpans() {
		names[s.Name]++
	}
	if names["facesconfig.parse"] != 1 {
		t.Errorf("parse spans = %d, want 1", names["facesconfig.parse"])
	}
	if names["facesconfig.document"] != 2 {
		t.Errorf("document spans = %d, want 2", names["facesconfig.document"])
	}
}
