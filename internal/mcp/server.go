// Package mcp exposes document search as an MCP tool server over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"docsearch/internal/domain"
)

// Server wraps the MCP server around a Searcher.
type Server struct {
	mcp      *gomcp.Server
	searcher domain.Searcher
	topK     int
	logger   *slog.Logger
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithTopK sets the result count used when a call omits top_k.
func WithTopK(k int) ServerOption {
	return func(s *Server) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server with the search_documents tool.
func NewServer(searcher domain.Searcher, version string, opts ...ServerOption) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}

	s := &Server{
		mcp: gomcp.NewServer(
			&gomcp.Implementation{
				Name:    "docsearch",
				Version: version,
			},
			nil,
		),
		searcher: searcher,
		topK:     3,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "mcp")

	s.registerSearchTools()
	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
