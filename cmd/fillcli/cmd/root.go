package cmd

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var verbosity int

var rootCmd = &cobra.Command{
	Use:     "fillcli",
	Short:   "Crossword grid generator and auto-fill solver",
	Long:    `fillcli generates black/white grid masks and fills them with dictionary words using constraint propagation and backtracking search.`,
	Version: version,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level (0=errors only, 1=info)")
}
