package manager

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a FileWatcher.
type WatcherConfig struct {
	// Paths are the configured document files and directories.
	Paths []string

	// Extensions filters events inside watched directories.
	Extensions []string

	// Recursive watches subdirectories of directory paths.
	Recursive bool

	// Debounce is the quiet period before a change triggers a reload.
	Debounce time.Duration
}

// FileWatcher reports document changes, debounced into single reloads.
//
// Files are watched through their parent directory so that editors which
// save by rename keep triggering events.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	config   WatcherConfig
	logger   *slog.Logger
	debounce *Debouncer

	files map[string]bool // explicit document files
	dirs  map[string]bool // directories whose matching files are documents
}

// NewFileWatcher creates a watcher over cfg.Paths.
func NewFileWatcher(cfg WatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  w,
		config:   cfg,
		logger:   logger,
		debounce: NewDebouncer(cfg.Debounce),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	if err := fw.addPaths(); err != nil {
		w.Close()
		return nil, err
	}
	return fw, nil
}

func (fw *FileWatcher) addPaths() error {
	watched := make(map[string]bool)
	watch := func(dir string) error {
		if watched[dir] {
			return nil
		}
		watched[dir] = true
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
		fw.logger.Debug("Watching directory", "path", dir)
		return nil
	}

	for _, p := range fw.config.Paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
		if !info.IsDir() {
			fw.files[p] = true
			if err := watch(filepath.Dir(p)); err != nil {
				return err
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != p && (!fw.config.Recursive || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			fw.dirs[path] = true
			return watch(path)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// relevant reports whether an event concerns a document.
func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if fw.files[name] {
		return true
	}
	if !fw.dirs[filepath.Dir(name)] {
		return false
	}
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range fw.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Watch calls onChange after each burst of document changes until ctx is
// done. It closes the watcher on return.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(path string)) error {
	defer fw.watcher.Close()
	defer fw.debounce.Stop()

	fw.logger.Info("File watcher started",
		"paths", fw.config.Paths,
		"debounce_ms", fw.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("File watcher stopped")
			return nil

		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.relevant(ev) {
				continue
			}
			fw.logger.Debug("File event detected", "path", ev.Name, "op", ev.Op.String())
			name := ev.Name
			fw.debounce.Trigger(func() { onChange(name) })

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("File watcher error", "error", err)
		}
	}
}

// Debouncer collapses a burst of triggers into one callback run after a
// quiet interval. The last trigger's callback wins.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
}

// NewDebouncer creates a debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback, cancelling any pending one.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
