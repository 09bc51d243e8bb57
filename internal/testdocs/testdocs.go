// Package testdocs holds sample faces-config documents shared by tests.
package testdocs

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

// Document names.
const (
	Base            = "base.xml"
	Override        = "override.xml"
	InvalidProperty = "invalid-property.xml"
	Malformed       = "malformed.xml"
)

//go:embed *.xml
var FS embed.FS

// Read returns the content of a sample document.
func Read(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := FS.ReadFile(name)
	if err != nil {
		tb.Fatalf("read sample %s: %v", name, err)
	}
	return data
}

// WriteFiles copies the named samples into dir and returns their paths in
// the same order.
func WriteFiles(tb testing.TB, dir string, names ...string) []string {
	tb.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], Read(tb, name), 0o644); err != nil {
			tb.Fatalf("write sample %s: %v", name, err)
		}
	}
	return paths
}
