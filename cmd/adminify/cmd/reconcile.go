package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/BLewisDesDev/ADMINify/internal/dataset"
	"github.com/BLewisDesDev/ADMINify/pkg/errors"
	"github.com/BLewisDesDev/ADMINify/pkg/reconcile"
)

var (
	flagThreshold  float64
	flagBatchSize  int
	flagIDColumn   string
	flagNameColumn string
)

// reconcileCmd matches a checked roster against a reference roster.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <reference> <checked>",
	Short: "Reconcile two rosters by name",
	Long: `Reconcile loads two roster files (CSV, JSON or YAML), treats the first
as the reference population and the second as the set being checked, and
reports which records on each side denote the same person.

Examples:
  adminify reconcile clients.csv timesheet.csv
  adminify reconcile clients.csv timesheet.csv --threshold 0.9
  adminify reconcile a.yaml b.yaml --output json > report.json`,
	Args: cobra.ExactArgs(2),
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().Float64VarP(&flagThreshold, "threshold", "t", 0, "fuzzy acceptance threshold in (0, 1)")
	reconcileCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "fuzzy pass batch size")
	reconcileCmd.Flags().StringVar(&flagIDColumn, "id-column", "", "CSV column holding record identifiers")
	reconcileCmd.Flags().StringVar(&flagNameColumn, "name-column", "", "CSV column holding the full name")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg := application.Config()
	logger := application.Logger()

	threshold := cfg.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = flagThreshold
	}
	batchSize := cfg.BatchSize
	if cmd.Flags().Changed("batch-size") {
		batchSize = flagBatchSize
	}

	loadOpts := dataset.Options{
		IDColumn:   firstNonEmpty(flagIDColumn, cfg.IDColumn),
		NameColumn: firstNonEmpty(flagNameColumn, cfg.NameColumn),
	}

	reference, err := dataset.Load(args[0], loadOpts)
	if err != nil {
		return err
	}
	checked, err := dataset.Load(args[1], loadOpts)
	if err != nil {
		return err
	}
	logger.Info().
		Int("reference", len(reference)).
		Int("checked", len(checked)).
		Msg("Rosters loaded")

	matcher, err := reconcile.NewMatcher(
		reconcile.WithThreshold(threshold),
		reconcile.WithBatchSize(batchSize),
		reconcile.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	report, err := matcher.Run(cmd.Context(),
		reconcile.NewDataset(reference),
		reconcile.NewDataset(checked))
	if err != nil {
		if errors.IsCanceled(err) {
			logger.Warn().Msg("Reconciliation canceled")
		}
		return err
	}

	return renderReport(report, cfg.Output)
}

// renderReport writes the report to stdout in the requested format.
func renderReport(report *reconcile.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	case "", "summary":
		fmt.Println(report.Summary())
		for _, o := range report.CheckedOutcomes {
			if o.Matched {
				fmt.Printf("  %-12s %-30s -> %-12s (%s, %.3f)\n",
					o.ID, o.RawText, o.PeerID, o.Match, o.Score)
			} else {
				fmt.Printf("  %-12s %-30s    unmatched\n", o.ID, o.RawText)
			}
		}
		for _, o := range report.ReferenceOutcomes {
			if !o.Matched {
				fmt.Printf("  %-12s %-30s    unmatched (reference)\n", o.ID, o.RawText)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
