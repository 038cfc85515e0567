package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/compute"
	"github.com/qmat-labs/corridor-cli/internal/crs"
	"github.com/qmat-labs/corridor-cli/internal/refdata"
)

var (
	computeCSVPath     string
	computeOutput      string
	computeFormat      string
	computeStore       bool
	computeConcurrency int
	computeLimit       int
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Batch-compute mixing quantities and risk scores for a case table",
	Long:  "Reads a cases CSV, computes R, sin²φ, Δmix, thermal diagnostics, and a risk score per row, and writes the enriched table to CSV or XLSX. Insufficient rows keep their inputs but carry the unclassified label.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		path := computeCSVPath
		if path == "" {
			path = cfg.Data.CasesPath
		}

		cases, err := refdata.LoadCasesFile(path)
		if err != nil {
			return eris.Wrap(err, "compute")
		}
		if computeLimit > 0 && computeLimit < len(cases) {
			cases = cases[:computeLimit]
		}

		concurrency := computeConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Data.Concurrency
		}

		rows, err := compute.Batch(ctx, cases, classifierOrDefault(), concurrency)
		if err != nil {
			return eris.Wrap(err, "compute batch")
		}

		if computeStore {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err := st.SaveRun(ctx, path, rows)
			if err != nil {
				return eris.Wrap(err, "compute save run")
			}
			zap.L().Info("run saved",
				zap.String("run_id", run.ID),
				zap.Int("rows", run.RowCount),
			)
		}

		switch computeFormat {
		case "xlsx":
			out := computeOutput
			if out == "" {
				out = "cases_computed.xlsx"
			}
			if err := compute.WriteXLSX(out, rows); err != nil {
				return err
			}
			zap.L().Info("compute complete",
				zap.Int("rows", len(rows)),
				zap.String("output", out),
			)
			return nil
		case "csv", "":
			w := os.Stdout
			if computeOutput != "" {
				f, err := os.Create(computeOutput)
				if err != nil {
					return eris.Wrap(err, "compute: create output")
				}
				defer f.Close() //nolint:errcheck
				w = f
			}
			if err := compute.WriteCSV(w, rows); err != nil {
				return err
			}
			if computeOutput != "" {
				zap.L().Info("compute complete",
					zap.Int("rows", len(rows)),
					zap.String("output", computeOutput),
				)
			}
			return nil
		default:
			return eris.Errorf("compute: unknown format %q", computeFormat)
		}
	},
}

// classifierOrDefault loads the configured classifier, logging and falling
// back to defaults if the rule file is bad rather than aborting a batch.
func classifierOrDefault() *crs.Classifier {
	cl, err := loadClassifier()
	if err != nil {
		zap.L().Warn("bad rule table, using defaults", zap.Error(err))
		return crs.Default()
	}
	return cl
}

func init() {
	computeCmd.Flags().StringVar(&computeCSVPath, "csv", "", "path to cases CSV (default from config)")
	computeCmd.Flags().StringVarP(&computeOutput, "output", "o", "", "output path (default stdout for csv)")
	computeCmd.Flags().StringVar(&computeFormat, "format", "csv", "output format: csv or xlsx")
	computeCmd.Flags().BoolVar(&computeStore, "store", false, "persist the computed batch as a run")
	computeCmd.Flags().IntVar(&computeConcurrency, "concurrency", 0, "parallel workers (default from config)")
	computeCmd.Flags().IntVar(&computeLimit, "limit", 0, "compute at most N rows (0 = all)")
	rootCmd.AddCommand(computeCmd)
}
