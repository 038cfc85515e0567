package mixing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMix_GeneralCase(t *testing.T) {
	res := Mix(0.3, 0.1)

	assert.InDelta(t, math.Sqrt(0.3*0.3+4*0.1*0.1), res.DeltaMix, 1e-15)
	assert.InDelta(t, 3.0, res.R, 1e-15)
	assert.InDelta(t, 0.5*(1-0.3/res.DeltaMix), res.Sin2Phi, 1e-15)
}

func TestMix_GapNeverNarrows(t *testing.T) {
	cases := []struct{ delta, v float64 }{
		{0.5, 0.1}, {-0.5, 0.1}, {0, 0.2}, {1e-9, 1e3}, {-42, 0.01},
	}
	for _, tc := range cases {
		res := Mix(tc.delta, tc.v)
		assert.GreaterOrEqual(t, res.DeltaMix, math.Abs(tc.delta),
			"delta=%v v=%v", tc.delta, tc.v)
		assert.GreaterOrEqual(t, res.Sin2Phi, 0.0)
		assert.LessOrEqual(t, res.Sin2Phi, 1.0)
		assert.InDelta(t, math.Abs(tc.delta)/math.Abs(tc.v), res.R, 1e-12)
	}
}

func TestMix_NegativeDeltaFavorsUpperState(t *testing.T) {
	res := Mix(-0.3, 0.1)
	assert.Greater(t, res.Sin2Phi, 0.5)

	mirror := Mix(0.3, 0.1)
	assert.InDelta(t, 1.0, res.Sin2Phi+mirror.Sin2Phi, 1e-15)
}

func TestMix_ZeroCoupling(t *testing.T) {
	res := Mix(0.4, 0)
	assert.True(t, math.IsInf(res.R, 1))
	assert.Equal(t, 0.0, res.Sin2Phi)
	assert.Equal(t, 0.4, res.DeltaMix)

	res = Mix(-0.4, 0)
	assert.True(t, math.IsInf(res.R, 1))
	assert.Equal(t, 1.0, res.Sin2Phi)
	assert.Equal(t, 0.4, res.DeltaMix)
}

func TestMix_TrueDegeneracy(t *testing.T) {
	// delta = 0, V = 0 follows the delta >= 0 branch by convention.
	res := Mix(0, 0)
	assert.True(t, math.IsInf(res.R, 1))
	assert.Equal(t, 0.0, res.Sin2Phi)
	assert.Equal(t, 0.0, res.DeltaMix)
}

func TestMix_NaNPropagation(t *testing.T) {
	for _, res := range []Result{
		Mix(math.NaN(), 0.1),
		Mix(0.3, math.NaN()),
		Mix(math.NaN(), math.NaN()),
		Mix(math.Inf(1), 0.1),
		Mix(0.3, math.Inf(-1)),
	} {
		assert.True(t, math.IsNaN(res.R))
		assert.True(t, math.IsNaN(res.Sin2Phi))
		assert.True(t, math.IsNaN(res.DeltaMix))
	}
}

func TestMix_ClampAbsorbsRounding(t *testing.T) {
	// Extreme ratio where 0.5*(1 - delta/deltaMix) can round past the
	// mathematical endpoint.
	res := Mix(1e150, 1e-150)
	assert.GreaterOrEqual(t, res.Sin2Phi, 0.0)
	assert.LessOrEqual(t, res.Sin2Phi, 1.0)
}

func TestDiagnostics_RoomTemperature(t *testing.T) {
	d := Diagnostics(0.3, 0.1, 300)

	require.Equal(t, 300, d.TUsed)
	assert.InDelta(t, KB*300, d.KBT, 1e-18)
	assert.InDelta(t, d.KBT/d.DeltaMix, d.ThetaT, 1e-15)

	s := d.Sin2Phi
	wantTau := 2 * math.Sqrt(s*(1-s)) * math.Tanh(d.ThetaT)
	assert.InDelta(t, wantTau, d.Tau, 1e-15)
	assert.GreaterOrEqual(t, d.Tau, 0.0)
	assert.Less(t, d.Tau, 1.0)
}

func TestDiagnostics_TemperatureNormalization(t *testing.T) {
	assert.Equal(t, 300, Diagnostics(0.1, 0.1, math.NaN()).TUsed)
	assert.Equal(t, 300, Diagnostics(0.1, 0.1, math.Inf(1)).TUsed)
	assert.Equal(t, 77, Diagnostics(0.1, 0.1, 77.4).TUsed)
	assert.Equal(t, 78, Diagnostics(0.1, 0.1, 77.5).TUsed)
	assert.Equal(t, 1, Diagnostics(0.1, 0.1, 0).TUsed)
	assert.Equal(t, 1, Diagnostics(0.1, 0.1, -40).TUsed)
}

func TestDiagnostics_GapFloor(t *testing.T) {
	// True degeneracy: DeltaMix = 0, so the floor keeps ThetaT finite.
	d := Diagnostics(0, 0, 300)
	assert.False(t, math.IsNaN(d.ThetaT))
	assert.False(t, math.IsInf(d.ThetaT, 0))
	// Endpoint mixing weight means zero toggle amplitude.
	assert.Equal(t, 0.0, d.Tau)
}

func TestDiagnostics_NaNPropagation(t *testing.T) {
	d := Diagnostics(math.NaN(), 0.1, 300)
	assert.True(t, math.IsNaN(d.ThetaT))
	assert.True(t, math.IsNaN(d.Tau))
	// Thermal scale is still reported.
	assert.Equal(t, 300, d.TUsed)
	assert.InDelta(t, KB*300, d.KBT, 1e-18)
}

func TestDiagnostics_TauBounds(t *testing.T) {
	for _, tc := range []struct{ delta, v, t float64 }{
		{0, 0.1, 300},     // maximal mixing
		{0.5, 0.001, 4},   // cold, weak coupling
		{-0.2, 0.3, 1000}, // hot
		{1e-6, 1e-6, 300},
	} {
		d := Diagnostics(tc.delta, tc.v, tc.t)
		assert.GreaterOrEqual(t, d.Tau, 0.0, "%+v", tc)
		assert.Less(t, d.Tau, 1.0, "%+v", tc)
	}
}

func TestDiagnostics_Idempotent(t *testing.T) {
	a := Diagnostics(0.27, 0.09, 312.6)
	b := Diagnostics(0.27, 0.09, 312.6)
	assert.Equal(t, a, b)
}
