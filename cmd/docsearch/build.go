package main

import (
	"context"
	"fmt"

	"docsearch/internal/config"
	"docsearch/internal/corpus"
	"docsearch/internal/embedding"
	"docsearch/internal/reader"
	"docsearch/internal/service"
	"docsearch/internal/summarizer"
	"docsearch/internal/vectorstore"
)

// buildService assembles the pipeline from cfg and ingests the corpus.
// Any failure here is a startup failure.
func buildService(ctx context.Context, cfg *config.AppConfig) (*service.SearchService, service.IngestStats, error) {
	emb, err := embedding.New(cfg.Embedder, logger)
	if err != nil {
		return nil, service.IngestStats{}, fmt.Errorf("embedder: %w", err)
	}
	index, err := vectorstore.New(cfg.VectorStore)
	if err != nil {
		return nil, service.IngestStats{}, fmt.Errorf("vector store: %w", err)
	}

	loader := corpus.NewLoader(
		reader.New(reader.WithLogger(logger)),
		corpus.WithPreviewLength(cfg.Corpus.PreviewLength),
		corpus.WithWorkers(cfg.Corpus.Workers),
		corpus.WithLogger(logger),
	)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithSummarySentences(cfg.Summarizer.MaxSentences),
	}
	switch cfg.Summarizer.Type {
	case "frequency", "":
		opts = append(opts, service.WithSummarizer(summarizer.NewFrequencySummarizer()))
	case "none":
	default:
		return nil, service.IngestStats{}, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	svc := service.NewSearchService(loader, emb, index, opts...)
	stats, err := svc.Ingest(ctx, cfg.Corpus.Root)
	if err != nil {
		return nil, service.IngestStats{}, err
	}
	return svc, stats, nil
}
