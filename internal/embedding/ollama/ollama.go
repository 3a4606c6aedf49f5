package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// ErrNoEmbedding is returned when the server answers without vectors.
var ErrNoEmbedding = errors.New("no embedding returned")

// Config configures the Ollama embedder.
type Config struct {
	ServerURL string
	Model     string
	BatchSize int
	Logger    *slog.Logger
}

// Embedder implements domain.Embedder on a local Ollama server through langchaingo.
type Embedder struct {
	embedder embeddings.Embedder
	model    string
	logger   *slog.Logger

	mu        sync.Mutex
	dimension int
}

// NewEmbedder creates an Ollama-backed embedder. No request is made until
// the first Embed call.
func NewEmbedder(cfg Config) (*Embedder, error) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "all-minilm"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	client, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	emb, err := embeddings.NewEmbedder(client,
		embeddings.WithBatchSize(cfg.BatchSize),
		embeddings.WithStripNewLines(true),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama embedder: %w", err)
	}
	return &Embedder{
		embedder: emb,
		model:    cfg.Model,
		logger:   cfg.Logger.With("component", "ollama-embedder", "model", cfg.Model),
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "ollama" }

// Prepare is not required for a pretrained model.
func (e *Embedder) Prepare([]string) error { return nil }

// Dimension returns the vector size learned from the first response, or 0.
func (e *Embedder) Dimension() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dimension
}

// Embed generates a vector embedding for a single text string.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))
	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if len(vec) == 0 {
		return nil, ErrNoEmbedding
	}
	e.learnDimension(len(vec))
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts, in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for batch", "count", len(texts))
	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "err", err)
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", ErrNoEmbedding, len(texts), len(vecs))
	}
	if len(vecs) > 0 {
		e.learnDimension(len(vecs[0]))
	}
	return vecs, nil
}

func (e *Embedder) learnDimension(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dimension == 0 {
		e.dimension = n
	}
}
