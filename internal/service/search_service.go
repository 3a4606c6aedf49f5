package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"docsearch/internal/corpus"
	"docsearch/internal/domain"
)

// Loader produces the document records of a corpus root.
type Loader interface {
	Load(ctx context.Context, root string) ([]domain.DocumentRecord, corpus.Stats, error)
}

// IngestStats summarises a successful Ingest.
type IngestStats struct {
	Documents int
	Skipped   int
	Failed    int
	Dimension int
	Summary   string
}

// SearchService owns the corpus, the embedder and the vector index.
// It starts Uninitialized; a successful Ingest makes it Ready, after which
// it is read-only and safe for concurrent Search calls.
type SearchService struct {
	loader           Loader
	embedder         domain.Embedder
	index            domain.VectorIndex
	summarizer       domain.Summarizer
	summarySentences int
	logger           *slog.Logger

	mu      sync.Mutex
	ready   atomic.Bool
	records []domain.DocumentRecord
	summary string
}

// Option configures a SearchService.
type Option func(*SearchService)

// WithSummarizer enables a corpus summary during Ingest.
func WithSummarizer(s domain.Summarizer) Option {
	return func(svc *SearchService) { svc.summarizer = s }
}

// WithSummarySentences sets the summary length in sentences.
func WithSummarySentences(n int) Option {
	return func(svc *SearchService) {
		if n > 0 {
			svc.summarySentences = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(svc *SearchService) {
		if logger == nil {
			logger = slog.Default()
		}
		svc.logger = logger
	}
}

func NewSearchService(loader Loader, embedder domain.Embedder, index domain.VectorIndex, opts ...Option) *SearchService {
	svc := &SearchService{
		loader:           loader,
		embedder:         embedder,
		index:            index,
		summarySentences: 3,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.logger = svc.logger.With("component", "service")
	return svc
}

// Ingest loads the corpus under root, embeds every document and builds the
// index. On any error the service stays Uninitialized.
func (s *SearchService) Ingest(ctx context.Context, root string) (IngestStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready.Load() {
		return IngestStats{}, ErrAlreadyReady
	}

	records, loadStats, err := s.loader.Load(ctx, root)
	if err != nil {
		return IngestStats{}, err
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	if err := s.embedder.Prepare(texts); err != nil {
		return IngestStats{}, fmt.Errorf("prepare %s embedder: %w", s.embedder.Name(), err)
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return IngestStats{}, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(records) {
		return IngestStats{}, fmt.Errorf("%w: %d vectors for %d documents", ErrMisaligned, len(vectors), len(records))
	}
	dim := s.embedder.Dimension()
	for i, v := range vectors {
		if dim > 0 && len(v) != dim {
			return IngestStats{}, fmt.Errorf("%w: vector %d has dimension %d, embedder reports %d", ErrMisaligned, i, len(v), dim)
		}
	}
	if dim == 0 && len(vectors) > 0 {
		dim = len(vectors[0])
	}
	if err := s.index.Build(vectors); err != nil {
		return IngestStats{}, fmt.Errorf("build index: %w", err)
	}

	summary := s.summarize(records)

	s.records = records
	s.summary = summary
	s.ready.Store(true)

	s.logger.Info("corpus indexed",
		"root", loadStats.Root,
		"documents", len(records),
		"skipped", loadStats.Skipped,
		"failed", loadStats.Failed,
		"embedder", s.embedder.Name(),
		"dimension", dim)

	return IngestStats{
		Documents: len(records),
		Skipped:   loadStats.Skipped,
		Failed:    loadStats.Failed,
		Dimension: dim,
		Summary:   summary,
	}, nil
}

func (s *SearchService) summarize(records []domain.DocumentRecord) string {
	if s.summarizer == nil {
		return ""
	}
	var all strings.Builder
	for _, r := range records {
		all.WriteString(r.Text)
		all.WriteString("\n")
	}
	summary, err := s.summarizer.Summarize(all.String(), s.summarySentences)
	if err != nil {
		s.logger.Warn("corpus summary failed", "err", err)
		return ""
	}
	return summary
}

// Search returns up to topK documents nearest to query, closest first.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]domain.QueryResult, error) {
	if !s.ready.Load() {
		return nil, ErrNotReady
	}
	if topK <= 0 {
		return []domain.QueryResult{}, nil
	}

	neighbors, err := s.nearest(ctx, query, topK)
	if err != nil {
		s.logger.Warn("query failed", "query", query, "err", err)
		return nil, &QueryError{Query: query, Err: err}
	}

	results := make([]domain.QueryResult, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Position < 0 || n.Position >= len(s.records) {
			s.logger.Debug("dropping out of range neighbour", "position", n.Position)
			continue
		}
		r := s.records[n.Position]
		results = append(results, domain.QueryResult{
			Name:     r.Name,
			Path:     r.Path,
			Preview:  r.Preview,
			Distance: n.Distance,
		})
	}
	s.logger.Debug("query answered", "query", query, "results", len(results))
	return results, nil
}

func (s *SearchService) nearest(ctx context.Context, query string, topK int) (neighbors []domain.Neighbor, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	neighbors, err = s.index.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return neighbors, nil
}

// Ready reports whether Ingest has completed successfully.
func (s *SearchService) Ready() bool { return s.ready.Load() }

// Len returns the number of indexed documents, or 0 before Ready.
func (s *SearchService) Len() int {
	if !s.ready.Load() {
		return 0
	}
	return len(s.records)
}

// Summary returns the corpus summary computed during Ingest.
func (s *SearchService) Summary() string {
	if !s.ready.Load() {
		return ""
	}
	return s.summary
}
