package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mercator-hq/facesconfig/internal/testdocs"
	"mercator-hq/facesconfig/pkg/config"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
	"mercator-hq/facesconfig/pkg/history"
)

type fakeReporter struct {
	mu      sync.Mutex
	reloads []error
	graphs  int
}

func (r *fakeReporter) RecordReload(_ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloads = append(r.reloads, err)
}

func (r *fakeReporter) SetGraph(*model.FacesConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graphs++
}

func newTestManager(t *testing.T, paths ...string) (*Manager, *fakeReporter, *history.MemoryStore) {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Documents.Paths = paths
	cfg.Watch.Debounce = 20 * time.Millisecond

	reporter := &fakeReporter{}
	store := history.NewMemoryStore()
	m, err := New(cfg, parser.NewParser(), WithReporter(reporter), WithHistory(store))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m, reporter, store
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, parser.NewParser()); err == nil {
		t.Error("New(nil config) error = nil")
	}
	if _, err := New(config.NewDefault(), nil); err == nil {
		t.Error("New(nil parser) error = nil")
	}
}

func TestManager_Load(t *testing.T) {
	dir := t.TempDir()
	paths := testdocs.WriteFiles(t, dir, testdocs.Base, testdocs.Override)
	m, reporter, store := newTestManager(t, paths...)

	if _, err := m.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Current() before load error = %v, want ErrNotLoaded", err)
	}
	if err := m.Ready(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Ready() before load = %v, want ErrNotLoaded", err)
	}

	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	snap, err := m.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got := snap.Graph.Application.ViewHandler; got != "com.y.ViewHandler" {
		t.Errorf("ViewHandler = %q, want %q", got, "com.y.ViewHandler")
	}
	if snap.Version == "" || snap.Version != m.Version() {
		t.Errorf("Version = %q, manager Version() = %q", snap.Version, m.Version())
	}
	if len(snap.Documents) != 2 || snap.Documents[0] != paths[0] {
		t.Errorf("Documents = %v, want %v", snap.Documents, paths)
	}
	if err := m.Ready(context.Background()); err != nil {
		t.Errorf("Ready() = %v", err)
	}

	if len(reporter.reloads) != 1 || reporter.reloads[0] != nil || reporter.graphs != 1 {
		t.Errorf("reporter = %v reloads, %d graphs", reporter.reloads, reporter.graphs)
	}

	records, _ := store.Query(context.Background(), nil)
	if len(records) != 1 {
		t.Fatalf("history records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Status != history.StatusSuccess || rec.Trigger != history.TriggerLoad {
		t.Errorf("record = (%q, %q), want (success, load)", rec.Status, rec.Trigger)
	}
	if rec.Version != snap.Version {
		t.Errorf("record Version = %q, want %q", rec.Version, snap.Version)
	}
	if rec.Counts["FacesConfig"] != 1 {
		t.Errorf("record Counts[FacesConfig] = %d, want 1", rec.Counts["FacesConfig"])
	}

	select {
	case ev := <-m.Events():
		if ev.Err != nil || ev.RunID != rec.RunID {
			t.Errorf("event = %+v, want success with run %q", ev, rec.RunID)
		}
	default:
		t.Error("no reload event")
	}
}

func TestManager_ReloadKeepsLastGood(t *testing.T) {
	dir := t.TempDir()
	paths := testdocs.WriteFiles(t, dir, testdocs.Base)
	m, reporter, store := newTestManager(t, paths...)

	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	good, _ := m.Current()

	if err := os.WriteFile(paths[0], testdocs.Read(t, testdocs.InvalidProperty), 0o644); err != nil {
		t.Fatal(err)
	}
	err := m.Reload(context.Background())
	if !fcErrors.IsType(err, fcErrors.ErrorTypeValidation) {
		t.Fatalf("Reload() error = %v, want validation error", err)
	}

	snap, cerr := m.Current()
	if cerr != nil {
		t.Fatalf("Current() error = %v", cerr)
	}
	if snap.Graph != good.Graph || snap.Version != good.Version {
		t.Error("failed reload replaced the installed graph")
	}
	if !errors.Is(m.LastError(), err) {
		t.Errorf("LastError() = %v, want %v", m.LastError(), err)
	}
	if err := m.Ready(context.Background()); err != nil {
		t.Errorf("Ready() after failed reload = %v, want nil", err)
	}
	if reporter.graphs != 1 || len(reporter.reloads) != 2 || reporter.reloads[1] == nil {
		t.Errorf("reporter = %v reloads, %d graphs", reporter.reloads, reporter.graphs)
	}

	failures, _ := store.Query(context.Background(), &history.Query{Status: history.StatusFailure})
	if len(failures) != 1 {
		t.Fatalf("failure records = %d, want 1", len(failures))
	}
	if failures[0].ErrorType != string(fcErrors.ErrorTypeValidation) || failures[0].Trigger != history.TriggerReload {
		t.Errorf("failure record = (%q, %q)", failures[0].ErrorType, failures[0].Trigger)
	}

	// Restoring the document recovers.
	if err := os.WriteFile(paths[0], testdocs.Read(t, testdocs.Base), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() after fix error = %v", err)
	}
	if m.LastError() != nil {
		t.Errorf("LastError() = %v, want nil", m.LastError())
	}
	if m.Version() != good.Version {
		t.Errorf("Version() = %q, want %q for identical content", m.Version(), good.Version)
	}
}

func TestManager_LoadFailure(t *testing.T) {
	dir := t.TempDir()
	m, _, store := newTestManager(t, filepath.Join(dir, "missing.xml"))

	err := m.Load(context.Background())
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if err := m.Ready(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Ready() = %v, want ErrNotLoaded", err)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Errorf("history records = %d, want 1", n)
	}
}

func TestManager_Watch(t *testing.T) {
	dir := t.TempDir()
	testdocs.WriteFiles(t, dir, testdocs.Base)
	m, _, store := newTestManager(t, dir)

	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	<-m.Events()
	before := m.Version()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	if err := m.Watch(ctx); !errors.Is(err, ErrWatchRunning) {
		t.Errorf("second Watch() error = %v, want ErrWatchRunning", err)
	}

	testdocs.WriteFiles(t, dir, testdocs.Override)
	// Files the loader ignores must not trigger reloads.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A reload can catch the new file half written; wait for a clean one.
	deadline := time.After(5 * time.Second)
	for loaded := false; !loaded; {
		select {
		case ev := <-m.Events():
			if ev.Trigger != history.TriggerWatch {
				t.Errorf("Trigger = %q, want %q", ev.Trigger, history.TriggerWatch)
			}
			loaded = ev.Err == nil
		case <-deadline:
			t.Fatal("no successful reload after document change")
		}
	}

	if m.Version() == before {
		t.Error("Version() unchanged after adding a document")
	}
	snap, _ := m.Current()
	if len(snap.Documents) != 2 {
		t.Errorf("Documents = %v, want 2 documents", snap.Documents)
	}
	if n, _ := store.Count(context.Background()); n < 2 {
		t.Errorf("history records = %d, want at least 2", n)
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after Close")
	}
}
