// Package tracing exports parse-run spans over OTLP.
//
// The parser opens one span per run and one child span per document. This
// package builds the tracer those spans come from: a no-op tracer when
// tracing is disabled, otherwise an SDK provider with a parent-based
// sampler and a batching OTLP gRPC exporter.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	p := parser.NewParser().WithTracer(tracer.Tracer())
package tracing
