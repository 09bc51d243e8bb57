package manager

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoader_Collect(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"conf/b.xml":         "b",
		"conf/a.XML":         "a",
		"conf/.hidden.xml":   "h",
		"conf/notes.txt":     "n",
		"conf/sub/c.xml":     "c",
		"conf/.git/d.xml":    "d",
		"extra/faces.config": "e",
	})
	conf := filepath.Join(dir, "conf")
	extra := filepath.Join(dir, "extra", "faces.config")

	tests := []struct {
		name      string
		paths     []string
		recursive bool
		want      []string
	}{
		{
			name:  "flat directory",
			paths: []string{conf},
			want:  []string{filepath.Join(conf, "a.XML"), filepath.Join(conf, "b.xml")},
		},
		{
			name:      "recursive directory",
			paths:     []string{conf},
			recursive: true,
			want: []string{
				filepath.Join(conf, "a.XML"),
				filepath.Join(conf, "b.xml"),
				filepath.Join(conf, "sub", "c.xml"),
			},
		},
		{
			name:  "explicit file keeps position and ignores extension",
			paths: []string{extra, conf},
			want:  []string{extra, filepath.Join(conf, "a.XML"), filepath.Join(conf, "b.xml")},
		},
		{
			name:  "duplicates load once",
			paths: []string{filepath.Join(conf, "b.xml"), conf},
			want:  []string{filepath.Join(conf, "b.xml"), filepath.Join(conf, "a.XML")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(&config.DocumentsConfig{
				Paths:      tt.paths,
				Extensions: []string{".xml"},
				Recursive:  tt.recursive,
			}, 0)
			got, err := l.Collect()
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Collect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoader_CollectErrors(t *testing.T) {
	empty := t.TempDir()

	tests := []struct {
		name  string
		paths []string
		check func(error) bool
	}{
		{
			name:  "missing path",
			paths: []string{filepath.Join(empty, "missing.xml")},
			check: func(err error) bool {
				var le *LoadError
				return errors.As(err, &le) && errors.Is(err, os.ErrNotExist)
			},
		},
		{
			name:  "no documents",
			paths: []string{empty},
			check: func(err error) bool { return errors.Is(err, ErrNoDocuments) },
		},
		{
			name:  "no paths",
			check: func(err error) bool { return errors.Is(err, ErrNoDocuments) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(&config.DocumentsConfig{Paths: tt.paths, Extensions: []string{".xml"}}, 0)
			_, err := l.Collect()
			if !tt.check(err) {
				t.Errorf("Collect() error = %v", err)
			}
		})
	}
}

func TestLoader_Read(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"small.xml": "<faces-config/>",
		"large.xml": "<faces-config>" + string(make([]byte, 64)) + "</faces-config>",
	})

	l := NewLoader(&config.DocumentsConfig{}, 32)

	sources, err := l.Read([]string{filepath.Join(dir, "small.xml")})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(sources[0].Data) != "<faces-config/>" {
		t.Errorf("Data = %q, want %q", sources[0].Data, "<faces-config/>")
	}
	if sources[0].Document().Name() != filepath.Join(dir, "small.xml") {
		t.Errorf("Document().Name() = %q", sources[0].Document().Name())
	}

	_, err = l.Read([]string{filepath.Join(dir, "large.xml")})
	if !errors.Is(err, parser.ErrDocumentTooLarge) {
		t.Errorf("Read(large) error = %v, want ErrDocumentTooLarge", err)
	}

	_, err = l.Read([]string{dir})
	var le *LoadError
	if !errors.As(err, &le) || le.Message != "not a regular file" {
		t.Errorf("Read(dir) error = %v, want not a regular file", err)
	}
}
