package manager

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by Current before the first successful load.
	ErrNotLoaded = errors.New("no configuration loaded")

	// ErrNoDocuments is returned when the configured paths match no files.
	ErrNoDocuments = errors.New("no configuration documents found")

	// ErrWatchRunning is returned when Watch is called twice.
	ErrWatchRunning = errors.New("watch already started")
)

// LoadError is a failure to collect or read a document before parsing.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %q: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
