package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dreamware/kaspan/internal/kerr"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "kaspan",
	Short: "A distributed strongly connected components engine",
	Long: `kaspan finds the strongly connected components of a directed graph
using a bulk-synchronous distributed pipeline: trimming, pivot-based
reachability, coloring, and a replicated serial residual solver.`,
}

// Execute runs the root command, exiting with the code the design's
// error taxonomy maps to (0/1/2/3).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(kerr.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging (accepted; no subcommand reads it)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a kaspan.yaml config file (accepted; no subcommand reads it)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(coordinatorCmd)
	rootCmd.AddCommand(rankdCmd)
}

// BinName returns the base name of the current executable, for usage text.
func BinName() string {
	return filepath.Base(os.Args[0])
}
