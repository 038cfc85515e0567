// Package mixing implements the two-level avoided-crossing calculation and
// the thermal diagnostics derived from it. All functions are pure; NaN inputs
// propagate to NaN outputs rather than raising errors.
package mixing

import "math"

// KB is the Boltzmann constant in eV/K.
const KB = 8.617333262e-5

// DefaultTemperature is assumed when no usable temperature is supplied.
const DefaultTemperature = 300

// gapFloor prevents division by zero when the mixed gap is exactly zero.
const gapFloor = 1e-12

// Result holds the mixing quantities for one (delta, V) pair.
type Result struct {
	// R is the dimensionless ratio |delta|/|V|. +Inf when V is zero.
	R float64
	// Sin2Phi is the mixing weight, clamped into [0,1].
	Sin2Phi float64
	// DeltaMix is the post-mixing gap in eV. Always >= |delta|.
	DeltaMix float64
}

// Diag extends a Result with thermal diagnostics at a given temperature.
type Diag struct {
	Result
	// TUsed is the temperature actually applied: rounded to the nearest
	// Kelvin, floored at 1, defaulting to 300 when the input is unusable.
	TUsed int
	// KBT is the thermal energy scale KB*TUsed in eV.
	KBT float64
	// ThetaT is the thermal access ratio KBT/max(DeltaMix, floor).
	ThetaT float64
	// Tau is the toggle-propensity proxy in [0,1).
	Tau float64
}

// Mix computes the avoided-crossing quantities for bare separation delta and
// coupling v, both in eV.
//
// When v is zero the general formula is undefined, so the limiting convention
// is applied: DeltaMix = |delta|, R = +Inf, and Sin2Phi is 0 for delta >= 0
// and 1 for delta < 0. The delta = 0, v = 0 point deliberately falls into the
// delta >= 0 branch; downstream consumers rely on that exact convention.
//
// A non-finite delta or v yields all-NaN outputs.
func Mix(delta, v float64) Result {
	if !finite(delta) || !finite(v) {
		return Result{R: math.NaN(), Sin2Phi: math.NaN(), DeltaMix: math.NaN()}
	}

	if v == 0 {
		s := 0.0
		if delta < 0 {
			s = 1.0
		}
		return Result{R: math.Inf(1), Sin2Phi: s, DeltaMix: math.Abs(delta)}
	}

	deltaMix := math.Sqrt(delta*delta + 4*v*v)
	r := math.Abs(delta) / math.Abs(v)
	// The unclamped expression is already in [0,1]; the clamp only absorbs
	// rounding error near the endpoints.
	s := clamp(0.5*(1-delta/deltaMix), 0, 1)
	return Result{R: r, Sin2Phi: s, DeltaMix: deltaMix}
}

// Diagnostics computes Mix(delta, v) plus the thermal metrics at temperature
// t (Kelvin). ThetaT and Tau are NaN exactly when the mixing outputs are NaN;
// KBT and TUsed are always defined so callers can still display the thermal
// scale for unknown inputs.
func Diagnostics(delta, v, t float64) Diag {
	res := Mix(delta, v)
	tUsed := NormalizeTemperature(t)
	kbt := KB * float64(tUsed)

	d := Diag{Result: res, TUsed: tUsed, KBT: kbt}
	if math.IsNaN(res.DeltaMix) || math.IsNaN(res.Sin2Phi) {
		d.ThetaT = math.NaN()
		d.Tau = math.NaN()
		return d
	}

	gap := math.Max(res.DeltaMix, gapFloor)
	d.ThetaT = kbt / gap

	// mixAmp peaks at 1 for Sin2Phi = 0.5 and vanishes at the endpoints.
	mixAmp := 2 * math.Sqrt(math.Max(0, res.Sin2Phi*(1-res.Sin2Phi)))
	d.Tau = mixAmp * math.Tanh(d.ThetaT)
	return d
}

// NormalizeTemperature rounds t to the nearest whole Kelvin, substituting
// DefaultTemperature for non-finite input and flooring at 1 K so the thermal
// energy is always positive.
func NormalizeTemperature(t float64) int {
	if !finite(t) {
		t = DefaultTemperature
	}
	n := int(math.Round(t))
	if n < 1 {
		n = 1
	}
	return n
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
