package manager

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls, last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("last = %d, want 5", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestFileWatcher_Relevant(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"conf/a.xml":       "a",
		"conf/sub/b.xml":   "b",
		"single/faces.cfg": "c",
	})
	conf := filepath.Join(dir, "conf")
	single := filepath.Join(dir, "single", "faces.cfg")

	fw, err := NewFileWatcher(WatcherConfig{
		Paths:      []string{conf, single},
		Extensions: []string{".xml"},
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	defer fw.watcher.Close()

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write in dir", fsnotify.Event{Name: filepath.Join(conf, "a.xml"), Op: fsnotify.Write}, true},
		{"create in dir", fsnotify.Event{Name: filepath.Join(conf, "new.xml"), Op: fsnotify.Create}, true},
		{"remove in dir", fsnotify.Event{Name: filepath.Join(conf, "a.xml"), Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(conf, "a.xml"), Op: fsnotify.Chmod}, false},
		{"wrong extension", fsnotify.Event{Name: filepath.Join(conf, "a.txt"), Op: fsnotify.Write}, false},
		{"hidden", fsnotify.Event{Name: filepath.Join(conf, ".a.xml"), Op: fsnotify.Write}, false},
		{"subdir not recursive", fsnotify.Event{Name: filepath.Join(conf, "sub", "b.xml"), Op: fsnotify.Write}, false},
		{"explicit file", fsnotify.Event{Name: single, Op: fsnotify.Rename}, true},
		{"sibling of explicit file", fsnotify.Event{Name: filepath.Join(dir, "single", "other.xml"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fw.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestFileWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faces-config.xml")
	if err := os.WriteFile(path, []byte("<faces-config/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(WatcherConfig{
		Paths:      []string{path},
		Extensions: []string{".xml"},
		Debounce:   20 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() { done <- fw.Watch(ctx, func(p string) { changed <- p }) }()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("<faces-config></faces-config>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-changed:
		if filepath.Clean(got) != path {
			t.Errorf("changed = %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestNewFileWatcher_MissingPath(t *testing.T) {
	_, err := NewFileWatcher(WatcherConfig{Paths: []string{filepath.Join(t.TempDir(), "missing")}}, nil)
	if err == nil {
		t.Error("NewFileWatcher() error = nil for a missing path")
	}
}
