package config

import "time"

// Config is the root configuration structure for facesconfig.
// It contains the document sources, parser tuning, watch mode, load history
// and telemetry settings.
type Config struct {
	// Documents lists the configuration documents to load and how to find
	// them.
	Documents DocumentsConfig `yaml:"documents"`

	// Parser contains parser tuning.
	Parser ParserConfig `yaml:"parser"`

	// Watch contains hot-reload settings.
	Watch WatchConfig `yaml:"watch"`

	// History contains load history storage and retention settings.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DocumentsConfig describes where configuration documents come from.
type DocumentsConfig struct {
	// Paths are files or directories, in merge order. Directories are
	// expanded to their matching files, sorted by name.
	Paths []string `yaml:"paths"`

	// Extensions filters files found in directories.
	// Default: [".xml"]
	Extensions []string `yaml:"extensions"`

	// Recursive descends into subdirectories.
	// Default: false
	Recursive bool `yaml:"recursive"`

	// SchemaDir is a local directory of schemas and DTDs used to resolve
	// referenced schema identifiers. Empty disables resolution.
	SchemaDir string `yaml:"schema_dir"`
}

// ParserConfig contains parser tuning.
type ParserConfig struct {
	// MaxDocumentSize is the per-document size limit in bytes.
	// Default: 10MB
	MaxDocumentSize int64 `yaml:"max_document_size"`

	// Parallelism is the number of documents dispatched concurrently.
	// Merging always happens in document order.
	// Default: 1
	Parallelism int `yaml:"parallelism"`

	// Trace logs every dispatcher transition at debug level.
	// Default: false
	Trace bool `yaml:"trace"`
}

// WatchConfig contains hot-reload settings.
type WatchConfig struct {
	// Debounce is how long to wait for further changes before reloading.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`

	// ListenAddress serves the metrics endpoint while watching.
	// Empty disables the HTTP listener.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`
}

// HistoryConfig contains load history configuration.
type HistoryConfig struct {
	// Enabled controls whether loads are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend specifies the storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains retention policy configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/facesconfig-history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains retention policy configuration.
type RetentionConfig struct {
	// Days is the number of days to retain load records.
	// 0 means keep records forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduling pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "facesconfig"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "parser"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for parse durations (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "facesconfig"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
