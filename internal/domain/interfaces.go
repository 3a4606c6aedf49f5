package domain

import "context"

// DocumentRecord represents a single readable, non-empty file loaded into the corpus.
type DocumentRecord struct {
	Name    string
	Path    string
	Text    string
	Preview string
}

// Neighbor is a single nearest-neighbour hit: a position in the indexed
// matrix and its squared L2 distance to the query.
type Neighbor struct {
	Position int
	Distance float64
}

// QueryResult is the read-only projection of a DocumentRecord returned to callers.
type QueryResult struct {
	Name     string
	Path     string
	Preview  string
	Distance float64
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex stores an embedding matrix and answers k-nearest-neighbour
// queries by squared Euclidean distance. It is built once and read-only after.
type VectorIndex interface {
	Build(vectors [][]float32) error
	Search(query []float32, k int) ([]Neighbor, error)
	Len() int
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Searcher defines the query operation exposed by the application core.
// User interfaces depend on this and nothing else.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]QueryResult, error)
}
