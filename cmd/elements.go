package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/qmat-labs/corridor-cli/internal/refdata"
)

var elementsCmd = &cobra.Command{
	Use:   "elements [symbol]",
	Short: "Look up the periodic-element reference table",
	Long:  "Lists the element table, or shows one element by symbol (case-insensitive). The table is optional; without it the command reports that no element data is available.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := refdata.LoadElementsFile(cfg.Data.ElementsPath)
		if err != nil {
			return eris.New("elements: no element data")
		}

		if len(args) == 1 {
			e := table.BySymbol(args[0])
			if e == nil {
				return eris.Errorf("elements: unknown element %q", args[0])
			}
			formatElements(os.Stdout, []refdata.Element{*e})
			return nil
		}

		formatElements(os.Stdout, table.Elements)
		return nil
	},
}

func formatElements(out io.Writer, elements []refdata.Element) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SYMBOL\tNAME\tZ\tCATEGORY")
	for _, e := range elements {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Symbol, e.Name, e.Z, e.Category)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(elementsCmd)
}
