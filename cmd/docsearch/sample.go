package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsearch/internal/sample"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [dir]",
	Short: "Write a demo document folder with txt, docx and pdf files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "DummySharePoint/Documents"
		if len(args) == 1 {
			dir = args[0]
		}
		written, err := sample.Generate(dir)
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sample folder ready at %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
