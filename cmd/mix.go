package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qmat-labs/corridor-cli/internal/mixing"
	"github.com/qmat-labs/corridor-cli/internal/numparse"
)

var mixJSON bool

var mixCmd = &cobra.Command{
	Use:   "mix <delta_eV> <V_eV> [T_K]",
	Short: "Compute mixing quantities for one (Δ, V) pair",
	Long:  "Computes R = |Δ|/|V|, sin²φ, and Δmix for a single level pair, plus thermal diagnostics at the given (or default 300 K) temperature. Inputs accept decimal commas; unparseable values propagate as NaN.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta := numparse.Float(args[0], math.NaN())
		v := numparse.Float(args[1], math.NaN())
		t := math.NaN()
		if len(args) == 3 {
			t = numparse.Float(args[2], math.NaN())
		}

		d := mixing.Diagnostics(delta, v, t)

		if mixJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "R:\t%s\n", formatQuantity(d.R))
		fmt.Fprintf(w, "sin2phi:\t%s\n", formatQuantity(d.Sin2Phi))
		fmt.Fprintf(w, "DeltaMix_eV:\t%s\n", formatQuantity(d.DeltaMix))
		fmt.Fprintf(w, "T_used_K:\t%d\n", d.TUsed)
		fmt.Fprintf(w, "kBT_eV:\t%.6g\n", d.KBT)
		fmt.Fprintf(w, "thetaT:\t%s\n", formatQuantity(d.ThetaT))
		fmt.Fprintf(w, "tau:\t%s\n", formatQuantity(d.Tau))
		return w.Flush()
	},
}

// formatQuantity renders a diagnostic value for terminal output; NaN prints
// as a dash so missing inputs read as "no result" rather than an error.
func formatQuantity(f float64) string {
	switch {
	case math.IsNaN(f):
		return "-"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%.6g", f)
	}
}

func init() {
	mixCmd.Flags().BoolVar(&mixJSON, "json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(mixCmd)
}
