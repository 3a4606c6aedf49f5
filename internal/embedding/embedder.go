package embedding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"docsearch/internal/config"
	"docsearch/internal/domain"
	"docsearch/internal/embedding/ollama"
	"docsearch/internal/embedding/openai"
	"docsearch/internal/embedding/tfidf"
)

// ErrUnknownEmbedder is returned for an unrecognised embedder type.
var ErrUnknownEmbedder = errors.New("unknown embedder")

// New builds the embedder selected by cfg.Type. It is meant to be called
// once per process; the returned provider is reused for every query.
func New(cfg config.EmbedderConfig, logger *slog.Logger) (domain.Embedder, error) {
	switch cfg.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		oc := config.OpenAIEmbedderConfig{}
		if cfg.OpenAI != nil {
			oc = *cfg.OpenAI
		}
		return openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
			BatchSize: oc.BatchSize,
			Logger:    logger,
		})
	case "ollama":
		oc := config.OllamaEmbedderConfig{}
		if cfg.Ollama != nil {
			oc = *cfg.Ollama
		}
		return ollama.NewEmbedder(ollama.Config{
			ServerURL: oc.ServerURL,
			Model:     oc.Model,
			BatchSize: oc.BatchSize,
			Logger:    logger,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmbedder, cfg.Type)
	}
}
