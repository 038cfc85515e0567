package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qmat-labs/corridor-cli/internal/crs"
	"github.com/qmat-labs/corridor-cli/internal/numparse"
)

var classifyRulesPath string

var classifyCmd = &cobra.Command{
	Use:   "classify <gap_eV> <R>",
	Short: "Assign a corridor risk score to a (gap, R) pair",
	Long:  "Runs the ordered threshold rules over an operational gap and mixing ratio. Pass \"inf\" for R to classify an uncoupled pair; unparseable inputs fall through to the fallback category.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := loadClassifier()
		if err != nil {
			return err
		}
		if classifyRulesPath != "" {
			if cl, err = crs.LoadRules(classifyRulesPath); err != nil {
				return err
			}
		}

		gap := numparse.Float(args[0], math.NaN())
		r := numparse.Float(args[1], math.NaN())
		if args[1] == "inf" {
			r = math.Inf(1)
		}

		category := cl.Classify(gap, r)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "gap_eV:\t%s\n", formatQuantity(gap))
		fmt.Fprintf(w, "R:\t%s\n", formatQuantity(r))
		fmt.Fprintf(w, "CRS:\t%d\n", category)
		return w.Flush()
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyRulesPath, "rules", "", "path to a YAML rule table (overrides config)")
	rootCmd.AddCommand(classifyCmd)
}
