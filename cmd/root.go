package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clipper",
	Short: "Query-driven video clipping service",
	Long: `clipper indexes uploaded videos with a video-intelligence service and
extracts shareable clips matching natural-language queries.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
