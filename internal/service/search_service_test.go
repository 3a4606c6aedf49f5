package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/corpus"
	"docsearch/internal/domain"
	"docsearch/internal/embedding/tfidf"
	"docsearch/internal/reader"
	"docsearch/internal/sample"
	"docsearch/internal/summarizer"
	"docsearch/internal/vectorstore/memory"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newService(opts ...Option) *SearchService {
	loader := corpus.NewLoader(reader.New())
	return NewSearchService(loader, tfidf.NewEmbedder(), memory.NewStorage(), opts...)
}

func TestRoundTripSingleDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "fox.txt"), "The quick brown fox")

	svc := newService()
	stats, err := svc.Ingest(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.True(t, svc.Ready())

	got, err := svc.Search(context.Background(), "quick brown fox", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fox.txt", got[0].Name)
	assert.Equal(t, filepath.Join(root, "fox.txt"), got[0].Path)
	assert.InDelta(t, 0, got[0].Distance, 1e-9)
}

func TestCorpusWithoutIndexableWords(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "The and of")
	writeFile(t, filepath.Join(root, "b.txt"), "!!! ---")

	svc := newService()
	stats, err := svc.Ingest(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 1, stats.Dimension)
	assert.True(t, svc.Ready())

	got, err := svc.Search(context.Background(), "anything at all", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.txt", got[0].Name)
	assert.Equal(t, "b.txt", got[1].Name)
	for _, r := range got {
		assert.Zero(t, r.Distance)
	}
}

func fixtureCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "HR", "leave.txt"), "Employees accrue annual leave every month. Leave requests need manager approval.")
	writeFile(t, filepath.Join(root, "IT", "passwords.txt"), "Passwords must rotate every ninety days. Use a password manager.")
	writeFile(t, filepath.Join(root, "Finance", "budget.txt"), "The budget forecast covers travel and training expenses.")
	writeFile(t, filepath.Join(root, "blank.txt"), "   \n\t ")
	writeFile(t, filepath.Join(root, "broken.pdf"), "%PDF-1.4 not really a pdf")
	require.NoError(t, sample.WriteDocx(filepath.Join(root, "IT", "vpn.docx"), []string{"Connect to the VPN before accessing internal systems."}))
	return root
}

func TestSearchProperties(t *testing.T) {
	root := fixtureCorpus(t)
	svc := newService()
	stats, err := svc.Ingest(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Documents)
	assert.Equal(t, 4, svc.Len())
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Failed)
	assert.Positive(t, stats.Dimension)

	ctx := context.Background()

	t.Run("bounded and ordered", func(t *testing.T) {
		got, err := svc.Search(ctx, "password rotation policy", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "passwords.txt", got[0].Name)
		assert.LessOrEqual(t, got[0].Distance, got[1].Distance)
	})

	t.Run("k larger than corpus returns everything", func(t *testing.T) {
		got, err := svc.Search(ctx, "leave", 50)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
		}
		for _, r := range got {
			assert.NotEqual(t, "blank.txt", r.Name)
			assert.NotEqual(t, "broken.pdf", r.Name)
		}
	})

	t.Run("zero and negative k", func(t *testing.T) {
		got, err := svc.Search(ctx, "leave", 0)
		require.NoError(t, err)
		assert.Empty(t, got)
		got, err = svc.Search(ctx, "leave", -3)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := svc.Search(ctx, "vpn internal systems", 3)
		require.NoError(t, err)
		second, err := svc.Search(ctx, "vpn internal systems", 3)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, "vpn.docx", first[0].Name)
	})
}

func TestPositionsStayAligned(t *testing.T) {
	root := fixtureCorpus(t)
	svc := newService()
	_, err := svc.Ingest(context.Background(), root)
	require.NoError(t, err)

	for _, r := range svc.records {
		got, err := svc.Search(context.Background(), r.Text, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, r.Path, got[0].Path)
		assert.InDelta(t, 0, got[0].Distance, 1e-9)
	}
}

func TestLifecycle(t *testing.T) {
	svc := newService()
	_, err := svc.Search(context.Background(), "anything", 3)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 0, svc.Len())

	_, err = svc.Ingest(context.Background(), filepath.Join(t.TempDir(), "missing"))
	var cfgErr *corpus.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.False(t, svc.Ready())

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha beta")
	_, err = svc.Ingest(context.Background(), root)
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), root)
	assert.ErrorIs(t, err, ErrAlreadyReady)
}

func TestEmptyCorpusIsConfigurationError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "image.png"), "png")
	writeFile(t, filepath.Join(root, "sheet.xlsx"), "xlsx")

	svc := newService()
	_, err := svc.Ingest(context.Background(), root)
	assert.ErrorIs(t, err, corpus.ErrEmptyCorpus)
	assert.False(t, svc.Ready())
}

func TestSummary(t *testing.T) {
	root := fixtureCorpus(t)
	svc := newService(WithSummarizer(summarizer.NewFrequencySummarizer()), WithSummarySentences(2))
	stats, err := svc.Ingest(context.Background(), root)
	require.NoError(t, err)
	assert.NotEmpty(t, stats.Summary)
	assert.Equal(t, stats.Summary, svc.Summary())
}

// flakyEmbedder wraps tfidf and fails or panics on chosen queries.
type flakyEmbedder struct {
	*tfidf.Embedder
}

func (f flakyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	switch text {
	case "fail":
		return nil, errors.New("provider unavailable")
	case "panic":
		panic("boom")
	case "wrong-dim":
		return []float32{1}, nil
	}
	return f.Embedder.Embed(ctx, text)
}

func TestQueryErrorsKeepServiceReady(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha beta gamma")
	writeFile(t, filepath.Join(root, "b.txt"), "delta epsilon")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	svc := NewSearchService(corpus.NewLoader(reader.New()), flakyEmbedder{tfidf.NewEmbedder()}, memory.NewStorage(), WithLogger(logger))
	_, err := svc.Ingest(context.Background(), root)
	require.NoError(t, err)

	for _, q := range []string{"fail", "panic", "wrong-dim"} {
		_, err := svc.Search(context.Background(), q, 1)
		var qe *QueryError
		require.ErrorAs(t, err, &qe, q)
		assert.Equal(t, q, qe.Query)
		assert.True(t, svc.Ready())
	}
	assert.Contains(t, logs.String(), "query failed")

	got, err := svc.Search(context.Background(), "alpha", 1)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got[0].Name)
}

type shortEmbedder struct {
	*tfidf.Embedder
}

func (s shortEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	all, err := s.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	return all[:len(all)-1], nil
}

func TestMisalignedEmbeddingsFailIngest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "b.txt"), "beta")

	svc := NewSearchService(corpus.NewLoader(reader.New()), shortEmbedder{tfidf.NewEmbedder()}, memory.NewStorage())
	_, err := svc.Ingest(context.Background(), root)
	assert.ErrorIs(t, err, ErrMisaligned)
	assert.False(t, svc.Ready())
}

var _ domain.Searcher = (*SearchService)(nil)
