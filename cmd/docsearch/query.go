package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queryTopK int

var queryCmd = &cobra.Command{
	Use:   "query <text...>",
	Short: "Run a single search and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top", "k", 0, "number of results (default from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService(cmd.Context(), globalConfig)
	if err != nil {
		return err
	}
	// an explicit -k, even zero or negative, goes to the service as given
	topK := globalConfig.Search.TopK
	if cmd.Flags().Changed("top") {
		topK = queryTopK
	}

	query := strings.Join(args, " ")
	results, err := svc.Search(cmd.Context(), query, topK)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	fmt.Fprintf(out, "Found %d relevant document(s):\n", len(results))
	for i, r := range results {
		fmt.Fprintf(out, "\n%d. %s  (distance %.4f)\n   %s\n", i+1, r.Name, r.Distance, r.Path)
		for _, line := range strings.Split(r.Preview, "\n") {
			fmt.Fprintf(out, "   | %s\n", line)
		}
	}
	return nil
}
