// Package telemetry groups the observability packages of the ingestion
// pipeline: structured logging, Prometheus metrics, OpenTelemetry tracing
// and health probes.
//
// Both the metrics collector and the logging trace observer implement
// parser.Observer, so they can be combined with parser.Observers and
// attached to a single parse run.
package telemetry
