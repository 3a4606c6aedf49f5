// Package reader extracts plain text from .txt, .pdf and .docx files.
package reader

import (
	"fmt"
	"log/slog"
)

type extractFunc func(path string) (string, error)

// Reader dispatches a file path to the extraction strategy for its Kind.
type Reader struct {
	strategies map[Kind]extractFunc
	logger     *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger extraction failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// New creates a Reader with the text, PDF and Word strategies registered.
func New(opts ...Option) *Reader {
	r := &Reader{
		strategies: map[Kind]extractFunc{
			Text: readText,
			PDF:  readPDF,
			Docx: readDocx,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "reader")
	return r
}

// Extract returns the plain text of path. Unsupported kinds yield "" and no
// error; parse failures are returned as *ExtractionError.
func (r *Reader) Extract(path string) (text string, err error) {
	kind := KindOf(path)
	fn, ok := r.strategies[kind]
	if !ok {
		return "", nil
	}
	defer func() {
		// the PDF parser panics on some malformed inputs
		if p := recover(); p != nil {
			text, err = "", &ExtractionError{Path: path, Kind: kind, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	text, err = fn(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Kind: kind, Err: err}
	}
	return text, nil
}

// Read returns the plain text of path, or "" when the type is unsupported or
// extraction fails. Failures are logged, never returned.
func (r *Reader) Read(path string) string {
	text, err := r.Extract(path)
	if err != nil {
		r.logger.Warn("failed to read document", "path", path, "err", err)
		return ""
	}
	return text
}
