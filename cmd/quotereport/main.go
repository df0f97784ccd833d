// quotereport is the offline companion to the web tool: it reads a quote
// dataset from a CSV/xlsx file and writes the grouped price comparison
// without going through the browser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quotereport",
	Short: "Generate grouped supplier price comparisons from quote datasets",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
