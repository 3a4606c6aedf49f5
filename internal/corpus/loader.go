// Package corpus walks a document folder and turns every readable,
// non-empty file into a DocumentRecord.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"docsearch/internal/domain"
	"docsearch/internal/reader"
)

// DefaultPreviewLength is the number of runes kept in DocumentRecord.Preview.
const DefaultPreviewLength = 300

// DocumentReader extracts plain text from a file path.
type DocumentReader interface {
	Extract(path string) (string, error)
}

// Stats describes the outcome of a Load.
type Stats struct {
	Root      string
	Scanned   int // files with a supported extension
	Documents int
	Skipped   int // empty or whitespace-only text
	Failed    int // extraction errors
}

// Loader builds the ordered DocumentRecord sequence for a root directory.
type Loader struct {
	reader        DocumentReader
	previewLength int
	workers       int
	logger        *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithPreviewLength sets the preview length in runes.
func WithPreviewLength(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.previewLength = n
		}
	}
}

// WithWorkers sets how many files are extracted concurrently.
// Values below 2 keep extraction sequential.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// NewLoader creates a loader around the given document reader.
func NewLoader(r DocumentReader, opts ...Option) *Loader {
	l := &Loader{
		reader:        r,
		previewLength: DefaultPreviewLength,
		workers:       1,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "corpus")
	return l
}

type extraction struct {
	text string
	err  error
}

// Load walks root recursively and returns one record per supported file with
// non-blank text, in walk order.
func (l *Loader) Load(ctx context.Context, root string) ([]domain.DocumentRecord, Stats, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, Stats{}, &ConfigurationError{Root: root, Err: err}
	}
	stats := Stats{Root: abs}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, &ConfigurationError{Root: abs, Err: ErrRootNotFound}
		}
		return nil, stats, &ConfigurationError{Root: abs, Err: err}
	}
	if !info.IsDir() {
		return nil, stats, &ConfigurationError{Root: abs, Err: ErrRootNotDir}
	}

	l.logger.Info("scanning folder", "root", abs)
	paths, err := l.walk(ctx, abs)
	if err != nil {
		return nil, stats, err
	}
	stats.Scanned = len(paths)

	results, err := l.extractAll(ctx, paths)
	if err != nil {
		return nil, stats, err
	}

	records := make([]domain.DocumentRecord, 0, len(paths))
	for i, res := range results {
		path := paths[i]
		if res.err != nil {
			stats.Failed++
			l.logger.Warn("skipping unreadable document", "path", path, "err", res.err)
			continue
		}
		if strings.TrimSpace(res.text) == "" {
			stats.Skipped++
			l.logger.Debug("skipping empty document", "path", path)
			continue
		}
		records = append(records, domain.DocumentRecord{
			Name:    filepath.Base(path),
			Path:    path,
			Text:    res.text,
			Preview: domain.MakePreview(res.text, l.previewLength),
		})
	}
	stats.Documents = len(records)

	if len(records) == 0 {
		return nil, stats, &ConfigurationError{Root: abs, Err: ErrEmptyCorpus}
	}
	l.logger.Info("loaded corpus", "documents", stats.Documents, "skipped", stats.Skipped, "failed", stats.Failed)
	return records, stats, nil
}

func (l *Loader) walk(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			l.logger.Warn("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !reader.Supported(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

func (l *Loader) extractAll(ctx context.Context, paths []string) ([]extraction, error) {
	results := make([]extraction, len(paths))
	if l.workers < 2 || len(paths) < 2 {
		for i, p := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			text, err := l.reader.Extract(p)
			results[i] = extraction{text: text, err: err}
		}
		return results, nil
	}

	pool, err := ants.NewPool(l.workers)
	if err != nil {
		return nil, fmt.Errorf("creating extraction pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			text, err := l.reader.Extract(p)
			results[i] = extraction{text: text, err: err}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting %s: %w", p, err)
		}
	}
	wg.Wait()
	return results, nil
}
