package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "DummySharePoint/Documents", cfg.Corpus.Root)
	assert.Equal(t, 300, cfg.Corpus.PreviewLength)
	assert.Equal(t, 3, cfg.Search.TopK)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsearch.yaml")
	content := `
corpus:
  root: /srv/docs
embedder:
  type: openai
  openai: {}
vector_store:
  type: qdrant
  qdrant:
    url: http://localhost:6333
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.Corpus.Root)
	assert.Equal(t, 300, cfg.Corpus.PreviewLength)
	assert.Equal(t, 1, cfg.Corpus.Workers)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, 32, cfg.Embedder.OpenAI.BatchSize)
	require.NotNil(t, cfg.VectorStore.Qdrant)
	assert.Equal(t, "docsearch", cfg.VectorStore.Qdrant.Collection)
}

func TestLoadOpenAIWithoutSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder:\n  type: openai\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, 30, cfg.Embedder.OpenAI.TimeoutSecs)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Corpus.Root = "/data"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRoot, "/from/env")
	t.Setenv(EnvTopK, "7")

	cfg := defaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/from/env", cfg.Corpus.Root)
	assert.Equal(t, 7, cfg.Search.TopK)
}

func TestApplyEnvInvalidTopK(t *testing.T) {
	t.Setenv(EnvTopK, "many")

	cfg := defaultConfig()
	assert.Error(t, cfg.ApplyEnv())
}
