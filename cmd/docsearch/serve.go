package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docsearch/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the folder and serve the HTML search form",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, _, err := buildService(ctx, globalConfig)
	if err != nil {
		return err
	}
	addr := globalConfig.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	handler := web.NewHandler(svc, web.WithTopK(globalConfig.Search.TopK), web.WithLogger(logger))
	return web.Serve(ctx, addr, handler, logger)
}
