// Package sweep evaluates the mixing diagnostics over parameter grids for
// plots and tabular export.
package sweep

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"

	"github.com/qmat-labs/corridor-cli/internal/mixing"
)

// Point is one sample of a swept quantity.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Temperature sweeps tau over [tmin, tmax] Kelvin for a fixed (delta, v).
func Temperature(delta, v, tmin, tmax float64, n int) []Point {
	return sample(tmin, tmax, n, func(t float64) float64 {
		return mixing.Diagnostics(delta, v, t).Tau
	})
}

// Separation sweeps sin2phi over bare separations [dmin, dmax] eV for a
// fixed coupling v.
func Separation(v, dmin, dmax float64, n int) []Point {
	return sample(dmin, dmax, n, func(d float64) float64 {
		return mixing.Mix(d, v).Sin2Phi
	})
}

// Ratio sweeps tau over mixing ratios R in [rmin, rmax] at fixed coupling v
// and temperature t, taking delta = R*|v|.
func Ratio(v, t, rmin, rmax float64, n int) []Point {
	return sample(rmin, rmax, n, func(r float64) float64 {
		return mixing.Diagnostics(r*math.Abs(v), v, t).Tau
	})
}

func sample(lo, hi float64, n int, f func(float64) float64) []Point {
	if n < 2 {
		n = 2
	}
	xs := floats.Span(make([]float64, n), lo, hi)
	pts := make([]Point, n)
	for i, x := range xs {
		pts[i] = Point{X: x, Y: f(x)}
	}
	return pts
}

// WriteCSV writes a swept curve as a two-column CSV.
func WriteCSV(w io.Writer, xLabel, yLabel string, pts []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{xLabel, yLabel}); err != nil {
		return eris.Wrap(err, "sweep: write csv header")
	}
	for _, p := range pts {
		rec := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "sweep: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "sweep: flush csv")
}
