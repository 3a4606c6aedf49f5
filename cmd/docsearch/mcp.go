package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "docsearch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Index the folder, then serve the search_documents tool over the
Model Context Protocol on stdin/stdout. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, _, err := buildService(ctx, globalConfig)
	if err != nil {
		return err
	}
	server, err := mcppkg.NewServer(svc, version,
		mcppkg.WithTopK(globalConfig.Search.TopK),
		mcppkg.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}
