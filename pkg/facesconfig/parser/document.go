package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Document is one input document. Open is called once per parse and the
// returned stream is closed before the parse of that document returns.
type Document interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileDocument returns a Document reading the file at path.
func FileDocument(path string) Document {
	return fileDocument(path)
}

type fileDocument string

func (d fileDocument) Name() string { return string(d) }

func (d fileDocument) Open() (io.ReadCloser, error) {
	return os.Open(string(d))
}

// BytesDocument returns a Document over an in-memory buffer.
func BytesDocument(name string, data []byte) Document {
	return &bytesDocument{name: name, data: data}
}

type bytesDocument struct {
	name string
	data []byte
}

func (d *bytesDocument) Name() string { return d.name }

func (d *bytesDocument) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(d.data)), nil
}

// ErrDocumentTooLarge is returned when a document exceeds the configured
// maximum size.
var ErrDocumentTooLarge = errors.New("document exceeds maximum size")

// limitReader fails with ErrDocumentTooLarge once more than max bytes have
// been read.
type limitReader struct {
	r   io.Reader
	max int64
	n   int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.n > l.max {
		return 0, fmt.Errorf("%w (%d bytes)", ErrDocumentTooLarge, l.max)
	}
	if remaining := l.max - l.n + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		return n, fmt.Errorf("%w (%d bytes)", ErrDocumentTooLarge, l.max)
	}
	return n, err
}
