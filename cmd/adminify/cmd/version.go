package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("adminify %s (commit %s, built %s)\n",
			application.Version(), application.Commit(), application.Date())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
