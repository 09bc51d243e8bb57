// Package metrics provides Prometheus metrics for facesconfig.
//
// # Metrics Categories
//
//   - Parse Metrics: parse runs and documents by status, with durations
//   - Dispatch Metrics: dispatcher transitions by op and entity kind
//   - Reload Metrics: manager loads and the size of the active graph
//
// Status labels are "success" or the type of the failure, e.g.
// "malformed_document" or "validation".
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	p := parser.NewParser().
//	    WithObserver(collector).
//	    WithRecorder(collector)
//
//	http.Handle("/metrics", collector.Handler())
package metrics
