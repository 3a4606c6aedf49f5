package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docsearch/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Index the folder and start the interactive terminal search",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, stats, err := buildService(cmd.Context(), globalConfig)
	if err != nil {
		return err
	}
	m := tui.New(svc, tui.Options{
		TopK:      globalConfig.Search.TopK,
		Documents: stats.Documents,
		Summary:   stats.Summary,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
