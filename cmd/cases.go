package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/qmat-labs/corridor-cli/internal/compute"
	"github.com/qmat-labs/corridor-cli/internal/refdata"
)

var (
	casesSymbol string
	casesStatus string
	casesJSON   bool
)

var casesCmd = &cobra.Command{
	Use:   "cases [dmc]",
	Short: "List computed cases, or show one case in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cases, err := refdata.LoadCasesFile(cfg.Data.CasesPath)
		if err != nil {
			return eris.Wrap(err, "cases")
		}

		rows, err := compute.Batch(ctx, cases, classifierOrDefault(), cfg.Data.Concurrency)
		if err != nil {
			return eris.Wrap(err, "cases")
		}

		if len(args) == 1 {
			for _, row := range rows {
				if strings.EqualFold(row.DMC, args[0]) {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(row)
				}
			}
			return eris.Errorf("cases: unknown case %q", args[0])
		}

		if casesSymbol != "" {
			rows = keepRows(rows, func(r compute.Row) bool {
				return strings.EqualFold(r.Symbol, casesSymbol)
			})
		}
		if casesStatus != "" {
			want := refdata.ParseStatus(casesStatus)
			rows = keepRows(rows, func(r compute.Row) bool {
				return r.Status == want
			})
		}

		if len(rows) == 0 {
			fmt.Fprintln(os.Stderr, "No cases found.")
			return nil
		}

		if casesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		formatCaseList(os.Stdout, rows)
		return nil
	},
}

func keepRows(rows []compute.Row, keep func(compute.Row) bool) []compute.Row {
	out := rows[:0:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// formatCaseList writes a tabular case summary to w.
func formatCaseList(out io.Writer, rows []compute.Row) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SYMBOL\tDMC\tDELTA_eV\tV_eV\tR\tSIN2PHI\tSTATUS\tCRS")
	_, _ = fmt.Fprintln(w, "------\t---\t--------\t----\t-\t-------\t------\t---")

	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Symbol,
			r.DMC,
			formatQuantity(r.DeltaEV),
			formatQuantity(r.VEV),
			formatQuantity(r.R),
			formatQuantity(r.Sin2Phi),
			r.Status,
			r.CRSLabel,
		)
	}
	_ = w.Flush()
}

func init() {
	casesCmd.Flags().StringVar(&casesSymbol, "symbol", "", "filter by element symbol")
	casesCmd.Flags().StringVar(&casesStatus, "status", "", "filter by status (high, low, insufficient)")
	casesCmd.Flags().BoolVar(&casesJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(casesCmd)
}
