package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
	"mercator-hq/facesconfig/pkg/history"
	"mercator-hq/facesconfig/pkg/telemetry/logging"
)

// Reporter receives load outcomes. The metrics collector implements it.
type Reporter interface {
	RecordReload(duration time.Duration, err error)
	SetGraph(cfg *model.FacesConfig)
}

// ReloadEvent describes a finished load.
type ReloadEvent struct {
	RunID    string
	Trigger  history.Trigger
	Version  string
	Err      error
	Duration time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithReporter reports every load to r.
func WithReporter(r Reporter) Option {
	return func(m *Manager) { m.reporter = r }
}

// WithHistory records every load in store.
func WithHistory(store history.Store) Option {
	return func(m *Manager) { m.history = store }
}

// Manager loads the configured documents into one graph and keeps it
// current. A failed reload leaves the previous graph in place.
type Manager struct {
	config   *config.Config
	parser   *parser.Parser
	loader   *Loader
	registry *Registry
	logger   *slog.Logger
	reporter Reporter
	history  history.Store

	mu        sync.Mutex // serializes loads
	lastError error
	lastLoad  time.Time

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
	events      chan ReloadEvent
}

// New creates a manager. The parser carries the observer, resolver and
// telemetry wiring; the manager only decides what to parse and when.
func New(cfg *config.Config, p *parser.Parser, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if p == nil {
		return nil, fmt.Errorf("parser cannot be nil")
	}

	m := &Manager{
		config:   cfg,
		parser:   p,
		loader:   NewLoader(&cfg.Documents, cfg.Parser.MaxDocumentSize),
		registry: NewRegistry(),
		logger:   slog.Default(),
		events:   make(chan ReloadEvent, 16),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "manager")
	return m, nil
}

// Load performs the initial load.
func (m *Manager) Load(ctx context.Context) error {
	return m.load(ctx, history.TriggerLoad)
}

// Reload reloads the documents, keeping the current graph on failure.
func (m *Manager) Reload(ctx context.Context) error {
	return m.load(ctx, history.TriggerReload)
}

func (m *Manager) load(ctx context.Context, trigger history.Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	runID := uuid.NewString()
	logger := m.logger.With("run_id", runID, "trigger", string(trigger))
	logger.Info("Loading configuration", "paths", m.config.Documents.Paths)
	start := time.Now()

	var (
		graph   *model.FacesConfig
		version string
		paths   []string
	)
	sources, err := m.loader.Load()
	if err == nil {
		version = Version(sources)
		docs := make([]parser.Document, len(sources))
		for i, s := range sources {
			paths = append(paths, s.Path)
			docs[i] = s.Document()
		}
		graph, err = m.parser.Parse(parser.ContextWithRunID(ctx, runID), docs...)
	}
	duration := time.Since(start)

	if err != nil {
		m.lastError = err
		if _, ok := m.registry.Current(); ok {
			logger.Error("Reload failed, keeping previous configuration",
				"error", err,
				"version", m.registry.Version(),
				"duration_ms", duration.Milliseconds(),
			)
		} else {
			logger.Error("Load failed", "error", err, "duration_ms", duration.Milliseconds())
		}
	} else {
		m.registry.Replace(graph, version, paths)
		m.lastError = nil
		m.lastLoad = time.Now()
		logger.Info("Configuration loaded",
			"version", version,
			"documents", len(paths),
			"duration_ms", duration.Milliseconds(),
		)
	}

	if m.reporter != nil {
		m.reporter.RecordReload(duration, err)
		if err == nil {
			m.reporter.SetGraph(graph)
		}
	}
	if m.history != nil {
		rec := history.NewRecord(history.Outcome{
			RunID:     runID,
			Trigger:   trigger,
			Version:   version,
			Documents: paths,
			Graph:     graph,
			Err:       err,
			Duration:  duration,
		})
		if herr := m.history.Store(ctx, rec); herr != nil {
			logger.Warn("Failed to record load history", "error", herr)
		}
	}

	select {
	case m.events <- ReloadEvent{RunID: runID, Trigger: trigger, Version: version, Err: err, Duration: duration}:
	default:
	}
	return err
}

// Current returns the installed graph.
func (m *Manager) Current() (Snapshot, error) {
	snap, ok := m.registry.Current()
	if !ok {
		return Snapshot{}, ErrNotLoaded
	}
	return snap, nil
}

// Version returns the version of the installed graph, or "".
func (m *Manager) Version() string {
	return m.registry.Version()
}

// LastError returns the error of the most recent load, or nil.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// Events delivers a ReloadEvent after each load. Events are dropped when
// nobody drains the channel.
func (m *Manager) Events() <-chan ReloadEvent {
	return m.events
}

// Ready reports an error until a graph is installed. It fits
// health.CheckFunc.
func (m *Manager) Ready(ctx context.Context) error {
	if _, ok := m.registry.Current(); !ok {
		if err := m.LastError(); err != nil {
			return fmt.Errorf("%w: %v", ErrNotLoaded, err)
		}
		return ErrNotLoaded
	}
	return nil
}

// Watch reloads whenever a document changes, until ctx is done or Close is
// called. It blocks.
func (m *Manager) Watch(ctx context.Context) error {
	m.watchMu.Lock()
	if m.watchCancel != nil {
		m.watchMu.Unlock()
		return ErrWatchRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	m.watchCancel = cancel
	m.watchMu.Unlock()

	defer func() {
		m.watchMu.Lock()
		m.watchCancel = nil
		m.watchMu.Unlock()
		cancel()
	}()

	w, err := NewFileWatcher(WatcherConfig{
		Paths:      m.config.Documents.Paths,
		Extensions: m.config.Documents.Extensions,
		Recursive:  m.config.Documents.Recursive,
		Debounce:   m.config.Watch.Debounce,
	}, m.logger)
	if err != nil {
		return err
	}

	return w.Watch(ctx, func(path string) {
		m.logger.InfoContext(logging.WithDocument(ctx, path), "Document changed, reloading")
		if err := m.load(ctx, history.TriggerWatch); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Debug("Watch-triggered reload failed", "error", err)
		}
	})
}

// Close stops a running Watch.
func (m *Manager) Close() error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	if m.watchCancel != nil {
		m.watchCancel()
	}
	return nil
}
