package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{
			name:      "empty document path",
			modify:    func(c *Config) { c.Documents.Paths = []string{"a.xml", " "} },
			wantField: "documents.paths[1]",
		},
		{
			name:      "extension without dot",
			modify:    func(c *Config) { c.Documents.Extensions = []string{"xml"} },
			wantField: "documents.extensions[0]",
		},
		{
			name:      "zero parallelism",
			modify:    func(c *Config) { c.Parser.Parallelism = 0 },
			wantField: "parser.parallelism",
		},
		{
			name:      "negative size",
			modify:    func(c *Config) { c.Parser.MaxDocumentSize = -1 },
			wantField: "parser.max_document_size",
		},
		{
			name:      "negative debounce",
			modify:    func(c *Config) { c.Watch.Debounce = -1 },
			wantField: "watch.debounce",
		},
		{
			name:      "unknown backend",
			modify:    func(c *Config) { c.History.Backend = "postgres" },
			wantField: "history.backend",
		},
		{
			name: "sqlite without path",
			modify: func(c *Config) {
				c.History.Enabled = true
				c.History.SQLite.Path = ""
			},
			wantField: "history.sqlite.path",
		},
		{
			name:      "bad cron expression",
			modify:    func(c *Config) { c.History.Retention.PruneSchedule = "every day" },
			wantField: "history.retention.prune_schedule",
		},
		{
			name:      "bad log format",
			modify:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name: "metrics path",
			modify: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "metrics"
			},
			wantField: "telemetry.metrics.path",
		},
		{
			name:      "tracing without endpoint",
			modify:    func(c *Config) { c.Telemetry.Tracing.Enabled = true },
			wantField: "telemetry.tracing.endpoint",
		},
		{
			name:      "sample ratio",
			modify:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.modify(cfg)
			err := Validate(cfg)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error on %s", err, tt.wantField)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got, want := single.Error(), "configuration validation failed: a: bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if !strings.Contains(multi.Error(), "2 errors") || !strings.Contains(multi.Error(), "  - b: worse") {
		t.Errorf("Error() = %q", multi.Error())
	}
}
