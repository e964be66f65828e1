package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mbox-analyzer",
	Short:        "Index a Gmail mbox export and report storage usage by label, year and sender",
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
