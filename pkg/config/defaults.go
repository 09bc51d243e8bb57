package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultMaxDocumentSize = int64(10 * 1024 * 1024) // 10MB
	DefaultParallelism     = 1

	// Watch defaults
	DefaultWatchDebounce      = 250 * time.Millisecond
	DefaultWatchListenAddress = "127.0.0.1:9464"

	// History defaults
	DefaultHistoryBackend           = "sqlite"
	DefaultHistorySQLitePath        = "data/facesconfig-history.db"
	DefaultHistorySQLiteMaxOpen     = 4
	DefaultHistorySQLiteWALMode     = true
	DefaultHistorySQLiteBusyTimeout = 5 * time.Second
	DefaultHistoryRetentionDays     = 30
	DefaultHistoryRetentionSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel        = "info"
	DefaultLoggingFormat       = "console"
	DefaultMetricsPath         = "/metrics"
	DefaultMetricsNamespace    = "facesconfig"
	DefaultMetricsSubsystem    = "parser"
	DefaultTracingSampler      = "ratio"
	DefaultTracingSamplingRate = 1.0
	DefaultTracingServiceName  = "facesconfig"
	DefaultOTLPTimeout         = 10 * time.Second
)

// DefaultExtensions are the file extensions picked up from document
// directories.
var DefaultExtensions = []string{".xml"}

// DefaultDurationBuckets are the parse duration histogram buckets, in
// seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// NewDefault returns a configuration with every default applied.
func NewDefault() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Document defaults
	if len(cfg.Documents.Extensions) == 0 {
		cfg.Documents.Extensions = append([]string(nil), DefaultExtensions...)
	}

	// Parser defaults
	if cfg.Parser.MaxDocumentSize == 0 {
		cfg.Parser.MaxDocumentSize = DefaultMaxDocumentSize
	}
	if cfg.Parser.Parallelism == 0 {
		cfg.Parser.Parallelism = DefaultParallelism
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if cfg.Watch.ListenAddress == "" {
		cfg.Watch.ListenAddress = DefaultWatchListenAddress
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
		// WAL mode is only defaulted together with the path so an explicit
		// wal_mode: false next to a custom path survives.
		cfg.History.SQLite.WALMode = DefaultHistorySQLiteWALMode
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistorySQLiteMaxOpen
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultHistoryRetentionDays
	}
	if cfg.History.Retention.PruneSchedule == "" {
		cfg.History.Retention.PruneSchedule = DefaultHistoryRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSamplingRate
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
