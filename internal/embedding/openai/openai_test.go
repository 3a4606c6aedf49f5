package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbeddings answers /embeddings with vector [len(input), index].
func fakeEmbeddings(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		type item struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		for i, in := range req.Input {
			data[i] = item{Object: "embedding", Embedding: []float32{float32(len(in)), float32(i)}, Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("DOCSEARCH_TEST_KEY", "")
	_, err := NewClient(Config{APIKeyEnv: "DOCSEARCH_TEST_KEY"})
	assert.Error(t, err)
}

func TestEmbedAndBatch(t *testing.T) {
	var calls atomic.Int32
	srv := fakeEmbeddings(t, &calls)
	defer srv.Close()
	t.Setenv("DOCSEARCH_TEST_KEY", "sk-test")

	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "DOCSEARCH_TEST_KEY", Model: "local-model", BatchSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Dimension())
	ctx := context.Background()

	v, err := c.Embed(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 0}, v)
	assert.Equal(t, 2, c.Dimension())

	calls.Store(0)
	vecs, err := c.EmbedBatch(ctx, []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {2, 1}, {3, 0}}, vecs)
	assert.Equal(t, int32(2), calls.Load())
}

func TestKnownModelDimension(t *testing.T) {
	t.Setenv("DOCSEARCH_TEST_KEY", "sk-test")
	c, err := NewClient(Config{APIKeyEnv: "DOCSEARCH_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, 1536, c.Dimension())
	assert.Equal(t, "openai", c.Name())
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("DOCSEARCH_TEST_KEY", "sk-test")

	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "DOCSEARCH_TEST_KEY"})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), "hello")
	assert.Error(t, err)
}
