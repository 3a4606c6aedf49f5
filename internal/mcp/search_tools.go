package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerSearchTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_documents",
		Description: "Search the indexed document folder by meaning. Returns the closest documents with their file name, path, preview and distance (lower is closer).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Free text search query"},
				"top_k": {"type": "number", "description": "Maximum number of documents to return (default 3; larger than the corpus returns every document)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchDocuments)
}

func (s *Server) handleSearchDocuments(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		TopK  *int   `json:"top_k"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	args.Query = strings.TrimSpace(args.Query)
	if args.Query == "" {
		return toolError("query is required"), nil
	}
	topK := s.topK
	if args.TopK != nil {
		if *args.TopK < 1 {
			return toolError("top_k must be at least 1"), nil
		}
		topK = *args.TopK
	}

	results, err := s.searcher.Search(ctx, args.Query, topK)
	if err != nil {
		s.logger.Warn("search_documents failed", "query", args.Query, "err", err)
		return toolError("search failed: %v", err), nil
	}
	if len(results) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No matching documents found."}},
		}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d document(s):\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %s (distance %.4f)\n   %s\n   %s\n", i+1, r.Name, r.Distance, r.Path, r.Preview)
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
