package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by Search before a successful Ingest.
	ErrNotReady = errors.New("search service not ready")

	// ErrAlreadyReady is returned by Ingest once the service is Ready.
	ErrAlreadyReady = errors.New("search service already ingested")

	// ErrMisaligned is returned when the embedder output does not match the corpus.
	ErrMisaligned = errors.New("embeddings not aligned with documents")
)

// QueryError reports a failure to answer one query. The service stays usable.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
