package vectorstore

import (
	"errors"
	"fmt"
	"time"

	"docsearch/internal/config"
	"docsearch/internal/domain"
	"docsearch/internal/vectorstore/memory"
	"docsearch/internal/vectorstore/qdrant"
	"docsearch/internal/vectorstore/vptree"
)

// ErrUnknownStore is returned for an unrecognised vector store type.
var ErrUnknownStore = errors.New("unknown vector store")

// New returns an unbuilt index selected by cfg.Type.
func New(cfg config.VectorStoreConfig) (domain.VectorIndex, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.NewStorage(), nil
	case "vptree":
		return vptree.New(), nil
	case "qdrant":
		if cfg.Qdrant == nil {
			return nil, errors.New("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.Qdrant.URL,
			APIKey:     cfg.Qdrant.APIKey,
			Collection: cfg.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, cfg.Type)
	}
}
