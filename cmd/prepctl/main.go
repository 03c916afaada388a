package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prepctl",
		Short: "Offline placement-prep tools",
		Long: `prepctl runs the JD analysis and resume ATS scoring locally.

Available subcommands:
  analyze - Analyze a job description file
  ats     - Score a resume JSON file
  token   - Sign a development access token`,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newATSCmd(), newTokenCmd())
	return root
}
