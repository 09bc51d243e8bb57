package config

import (
	"reflect"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Parser.Parallelism != DefaultParallelism {
		t.Errorf("Parser.Parallelism = %d, want %d", cfg.Parser.Parallelism, DefaultParallelism)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, DefaultWatchDebounce)
	}
	if cfg.History.Backend != DefaultHistoryBackend {
		t.Errorf("History.Backend = %q, want %q", cfg.History.Backend, DefaultHistoryBackend)
	}
	if !cfg.History.SQLite.WALMode {
		t.Error("History.SQLite.WALMode = false, want true")
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Telemetry.Metrics.Namespace, DefaultMetricsNamespace)
	}
	if cfg.Telemetry.Tracing.ServiceName != DefaultTracingServiceName {
		t.Errorf("Tracing.ServiceName = %q, want %q", cfg.Telemetry.Tracing.ServiceName, DefaultTracingServiceName)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	once := NewDefault()
	twice := NewDefault()
	ApplyDefaults(twice)

	if !reflect.DeepEqual(once, twice) {
		t.Error("ApplyDefaults() is not idempotent")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Parser:  ParserConfig{Parallelism: 3},
		History: HistoryConfig{SQLite: SQLiteConfig{Path: "h.db"}},
	}
	ApplyDefaults(cfg)

	if cfg.Parser.Parallelism != 3 {
		t.Errorf("Parser.Parallelism = %d, want 3", cfg.Parser.Parallelism)
	}
	if cfg.History.SQLite.WALMode {
		t.Error("WALMode should not be defaulted next to an explicit path")
	}
}

func TestApplyDefaults_DoesNotShareSlices(t *testing.T) {
	cfg := NewDefault()
	cfg.Documents.Extensions[0] = ".faces"
	if DefaultExtensions[0] != ".xml" {
		t.Errorf("DefaultExtensions mutated to %v", DefaultExtensions)
	}
}
