package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "sb-omnicore",
	Short:   "MCP server exposing Somesh Bagadiya's portfolio to AI assistants",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand: run the stdio MCP server, the mode IDE
		// integrations expect.
		return runStdio()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
