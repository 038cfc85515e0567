package main

import (
	"math"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/mixing"
	"github.com/qmat-labs/corridor-cli/internal/numparse"
	"github.com/qmat-labs/corridor-cli/internal/sweep"
)

var (
	sweepMode   string
	sweepDelta  string
	sweepV      string
	sweepT      string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	sweepOutput string
	sweepReport bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep one mixing parameter and emit a curve",
	Long:  "Holds two of (Δ, V, T) fixed and sweeps the third (or the ratio R), writing x,y pairs as CSV or rendering an HTML chart report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		delta := numparse.Float(sweepDelta, math.NaN())
		v := numparse.Float(sweepV, math.NaN())
		t := numparse.Float(sweepT, float64(mixing.DefaultTemperature))

		if sweepReport {
			if math.IsNaN(delta) || math.IsNaN(v) {
				return eris.New("sweep: --delta and --v are required for a report")
			}
			w := os.Stdout
			if sweepOutput != "" {
				f, err := os.Create(sweepOutput)
				if err != nil {
					return eris.Wrap(err, "sweep: create output")
				}
				defer f.Close() //nolint:errcheck
				w = f
			}
			if err := sweep.RenderReport(w, delta, v); err != nil {
				return err
			}
			if sweepOutput != "" {
				zap.L().Info("report written", zap.String("output", sweepOutput))
			}
			return nil
		}

		var (
			pts    []sweep.Point
			xLabel string
			yLabel string
		)
		switch sweepMode {
		case "temperature", "":
			if math.IsNaN(delta) || math.IsNaN(v) {
				return eris.New("sweep: --delta and --v are required")
			}
			pts = sweep.Temperature(delta, v, sweepMin, sweepMax, sweepPoints)
			xLabel, yLabel = "T_K", "tau"
		case "separation":
			if math.IsNaN(v) {
				return eris.New("sweep: --v is required")
			}
			pts = sweep.Separation(v, sweepMin, sweepMax, sweepPoints)
			xLabel, yLabel = "delta_eV", "sin2phi"
		case "ratio":
			if math.IsNaN(v) {
				return eris.New("sweep: --v is required")
			}
			pts = sweep.Ratio(v, t, sweepMin, sweepMax, sweepPoints)
			xLabel, yLabel = "R", "tau"
		default:
			return eris.Errorf("sweep: unknown mode %q", sweepMode)
		}

		w := os.Stdout
		if sweepOutput != "" {
			f, err := os.Create(sweepOutput)
			if err != nil {
				return eris.Wrap(err, "sweep: create output")
			}
			defer f.Close() //nolint:errcheck
			w = f
		}
		return sweep.WriteCSV(w, xLabel, yLabel, pts)
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepMode, "mode", "temperature", "sweep mode: temperature, separation, or ratio")
	sweepCmd.Flags().StringVar(&sweepDelta, "delta", "", "level separation Δ in eV")
	sweepCmd.Flags().StringVar(&sweepV, "v", "", "coupling V in eV")
	sweepCmd.Flags().StringVar(&sweepT, "t", "", "temperature in K (ratio mode, default 300)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "sweep range lower bound")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 600, "sweep range upper bound")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 200, "number of sample points")
	sweepCmd.Flags().StringVarP(&sweepOutput, "output", "o", "", "output path (default stdout)")
	sweepCmd.Flags().BoolVar(&sweepReport, "report", false, "render an HTML chart report instead of CSV")
	rootCmd.AddCommand(sweepCmd)
}
