package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/config"
	"docsearch/internal/vectorstore/memory"
	"docsearch/internal/vectorstore/qdrant"
	"docsearch/internal/vectorstore/vptree"
)

func TestNewSelectsImplementation(t *testing.T) {
	idx, err := New(config.VectorStoreConfig{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, idx)

	idx, err = New(config.VectorStoreConfig{Type: "vptree"})
	require.NoError(t, err)
	assert.IsType(t, &vptree.Index{}, idx)

	idx, err = New(config.VectorStoreConfig{Type: "qdrant", Qdrant: &config.QdrantConfig{
		URL:        "http://localhost:6333",
		Collection: "docs",
	}})
	require.NoError(t, err)
	assert.IsType(t, &qdrant.Storage{}, idx)
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.VectorStoreConfig{Type: "faiss"})
	assert.ErrorIs(t, err, ErrUnknownStore)

	_, err = New(config.VectorStoreConfig{Type: "qdrant"})
	assert.Error(t, err)
}
