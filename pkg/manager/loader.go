package manager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

// Source is a document read from disk.
type Source struct {
	Path string
	Data []byte
}

// Document returns the source as a parser document.
func (s Source) Document() parser.Document {
	return parser.BytesDocument(s.Path, s.Data)
}

// Loader expands the configured paths into an ordered document list.
type Loader struct {
	config  *config.DocumentsConfig
	maxSize int64
}

// NewLoader creates a loader. A maxSize of zero disables the size check.
func NewLoader(cfg *config.DocumentsConfig, maxSize int64) *Loader {
	return &Loader{config: cfg, maxSize: maxSize}
}

// Collect returns the document paths in merge order. Explicit files are kept
// in configuration order whatever their extension. Each directory
// contributes its matching files sorted by path, hidden entries skipped.
// A path listed twice is loaded once, at its first position.
func (l *Loader) Collect() ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			paths = append(paths, clean)
		}
	}

	for _, p := range l.config.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &LoadError{Path: p, Message: "failed to access path", Cause: err}
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		found, err := l.collectDir(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}
	return paths, nil
}

func (l *Loader) collectDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && !l.config.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if l.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to walk directory", Cause: err}
	}
	sort.Strings(files)
	return files, nil
}

// matches reports whether path has one of the configured extensions.
func (l *Loader) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range l.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Read reads every path. Files over the size limit are rejected before
// they are read.
func (l *Loader) Read(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &LoadError{Path: p, Message: "failed to access file", Cause: err}
		}
		if !info.Mode().IsRegular() {
			return nil, &LoadError{Path: p, Message: "not a regular file"}
		}
		if l.maxSize > 0 && info.Size() > l.maxSize {
			return nil, &LoadError{
				Path:    p,
				Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.maxSize),
				Cause:   parser.ErrDocumentTooLarge,
			}
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &LoadError{Path: p, Message: "failed to read file", Cause: err}
		}
		sources = append(sources, Source{Path: p, Data: data})
	}
	return sources, nil
}

// Load collects and reads the configured documents.
func (l *Loader) Load() ([]Source, error) {
	paths, err := l.Collect()
	if err != nil {
		return nil, err
	}
	return l.Read(paths)
}
