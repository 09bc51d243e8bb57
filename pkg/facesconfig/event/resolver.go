package event

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver supplies the content of an externally referenced schema. It
// returns (nil, nil) when it does not know the identifier; an error aborts
// the document.
type Resolver interface {
	Resolve(publicID, systemID string) (io.ReadCloser, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(publicID, systemID string) (io.ReadCloser, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(publicID, systemID string) (io.ReadCloser, error) {
	return f(publicID, systemID)
}

// DirResolver resolves identifiers against the files of a local schema
// directory, matching on the base name of the system identifier.
type DirResolver struct {
	Dir string
}

// NewDirResolver returns a resolver reading schemas from dir.
func NewDirResolver(dir string) *DirResolver {
	return &DirResolver{Dir: dir}
}

// Resolve implements Resolver.
func (r *DirResolver) Resolve(publicID, systemID string) (io.ReadCloser, error) {
	if systemID == "" {
		return nil, nil
	}

	// System ids are URLs or paths; only the last segment is looked up.
	name := path.Base(strings.ReplaceAll(systemID, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return nil, nil
	}

	f, err := os.Open(filepath.Join(r.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open schema %s: %w", name, err)
	}
	return f, nil
}

// FSResolver resolves identifiers against an fs.FS, such as an embedded
// schema bundle.
type FSResolver struct {
	FS fs.FS
}

// Resolve implements Resolver.
func (r FSResolver) Resolve(publicID, systemID string) (io.ReadCloser, error) {
	if systemID == "" {
		return nil, nil
	}
	name := path.Base(strings.ReplaceAll(systemID, "\\", "/"))
	f, err := r.FS.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}
