package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/facesconfig/internal/testdocs"
	"mercator-hq/facesconfig/pkg/config"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "metrics",
		DurationBuckets: []float64{0.01, 0.1, 1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(&config.MetricsConfig{Enabled: true}, registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if collector.config.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", collector.config.Namespace, config.DefaultMetricsNamespace)
	}
	if len(collector.config.DurationBuckets) == 0 {
		t.Error("DurationBuckets not defaulted")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fcErrors.New(fcErrors.ErrorTypeMalformed, "bad"), "malformed_document"},
		{fmt.Errorf("wrapped: %w", fcErrors.Validation("Component", "A", "bad")), "validation"},
		{fmt.Errorf("read: %w", parser.ErrDocumentTooLarge), "too_large"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestCollector_ParserIntegration(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	p := parser.NewParser().WithObserver(collector).WithRecorder(collector)

	docs := []parser.Document{
		parser.BytesDocument(testdocs.Base, testdocs.Read(t, testdocs.Base)),
		parser.BytesDocument(testdocs.Override, testdocs.Read(t, testdocs.Override)),
	}
	if _, err := p.Parse(context.Background(), docs...); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	pm := collector.parseMetrics
	if got := testutil.ToFloat64(pm.parsesTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("parses_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.documentsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("documents_total{success} = %v, want 2", got)
	}

	dm := collector.dispatchMetrics
	// A in each document, B in the override. Cross-document folding is
	// counted once per document on the root.
	if got := testutil.ToFloat64(dm.transitionsTotal.WithLabelValues("attach", "Component")); got != 3 {
		t.Errorf("transitions_total{attach,Component} = %v, want 3", got)
	}
	if got := testutil.ToFloat64(dm.transitionsTotal.WithLabelValues("merge", "FacesConfig")); got != 2 {
		t.Errorf("transitions_total{merge,FacesConfig} = %v, want 2", got)
	}
}

func TestCollector_ParseFailure(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	p := parser.NewParser().WithRecorder(collector)

	doc := parser.BytesDocument(testdocs.Malformed, testdocs.Read(t, testdocs.Malformed))
	if _, err := p.Parse(context.Background(), doc); err == nil {
		t.Fatal("Parse() succeeded, want error")
	}

	pm := collector.parseMetrics
	if got := testutil.ToFloat64(pm.parsesTotal.WithLabelValues("malformed_document")); got != 1 {
		t.Errorf("parses_total{malformed_document} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pm.documentsTotal.WithLabelValues("malformed_document")); got != 1 {
		t.Errorf("documents_total{malformed_document} = %v, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordParse(1, time.Millisecond, nil)
	collector.RecordDocument("a.xml", time.Millisecond, nil)
	collector.RecordReload(time.Millisecond, nil)
	collector.Observe(parser.Transition{Op: parser.OpPush, Kind: model.KindComponent})

	if got := testutil.CollectAndCount(collector.parseMetrics.parsesTotal); got != 0 {
		t.Errorf("parses_total series = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(collector.reloadMetrics.reloadsTotal); got != 0 {
		t.Errorf("reloads_total series = %d, want 0", got)
	}
}

func TestCollector_Reload(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordReload(10*time.Millisecond, nil)
	collector.RecordReload(5*time.Millisecond, fcErrors.New(fcErrors.ErrorTypeStructural, "bad"))

	rm := collector.reloadMetrics
	if got := testutil.ToFloat64(rm.reloadsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("reloads_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.reloadsTotal.WithLabelValues("structural_violation")); got != 1 {
		t.Errorf("reloads_total{structural_violation} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.lastSuccess); got == 0 {
		t.Error("last_reload_success_timestamp_seconds not set")
	}

	cfg := model.NewFacesConfig()
	cfg.AddComponent(&model.Component{Type: "A"})
	cfg.AddComponent(&model.Component{Type: "B"})
	collector.SetGraph(cfg)

	if got := testutil.ToFloat64(rm.entities.WithLabelValues("Component")); got != 2 {
		t.Errorf("entities{Component} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rm.entities.WithLabelValues("ManagedBean")); got != 0 {
		t.Errorf("entities{ManagedBean} = %v, want 0", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordParse(2, 3*time.Millisecond, nil)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); !strings.Contains(body, `test_metrics_parses_total{status="success"} 1`) {
		t.Errorf("body does not contain the parse counter:\n%s", body)
	}
}
