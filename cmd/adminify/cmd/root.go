// Package cmd implements the adminify CLI commands.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BLewisDesDev/ADMINify/cmd/adminify/app"
)

// application is the shared app instance commands pull dependencies from.
var application *app.App

// Global flags.
var (
	flagVerbose bool
	flagQuiet   bool
	flagNoColor bool
	flagOutput  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "adminify",
	Short: "Roster reconciliation for client administration",
	Long: `ADMINify reconciles two client rosters that share no common key,
matching records by name: exact matches on canonicalized names first,
then bounded fuzzy matches over whatever remains.

Examples:
  adminify reconcile reference.csv checked.csv
  adminify reconcile reference.csv checked.csv --threshold 0.9 --output json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		application.Config().UpdateFromFlags(flagVerbose, flagQuiet, flagNoColor, flagOutput)
		logger := app.NewLogger(application.Config())
		*application.Logger() = logger
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format (summary, json, yaml)")
}

// Execute runs the CLI with the given application and arguments.
func Execute(ctx context.Context, a *app.App, args []string) error {
	application = a
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
