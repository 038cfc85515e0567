package sweep

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperature_MonotoneForFixedPoint(t *testing.T) {
	pts := Temperature(0.1, 0.1, 1, 1000, 50)
	require.Len(t, pts, 50)

	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 1000.0, pts[len(pts)-1].X)

	// tanh is monotone, so tau never decreases with T at fixed mixing,
	// modulo whole-Kelvin rounding of adjacent samples.
	for i := 1; i < len(pts); i++ {
		assert.GreaterOrEqual(t, pts[i].Y+1e-12, pts[i-1].Y)
	}
}

func TestSeparation_CrossesHalfAtZero(t *testing.T) {
	pts := Separation(0.1, -1, 1, 201)
	require.Len(t, pts, 201)

	mid := pts[100]
	assert.InDelta(t, 0.0, mid.X, 1e-12)
	assert.InDelta(t, 0.5, mid.Y, 1e-12)

	// sin2phi decreases monotonically with delta.
	for i := 1; i < len(pts); i++ {
		assert.Less(t, pts[i].Y, pts[i-1].Y)
	}
}

func TestRatio_DecaysWithR(t *testing.T) {
	pts := Ratio(0.1, 300, 0, 10, 11)
	require.Len(t, pts, 11)
	assert.Greater(t, pts[0].Y, pts[len(pts)-1].Y)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "T_K", "tau", []Point{{1, 0}, {2, 0.5}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "T_K,tau", lines[0])
	assert.Equal(t, "2,0.5", lines[2])
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, 0.3, 0.1))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Toggle propensity vs temperature")
}

func TestRenderReport_ZeroCoupling(t *testing.T) {
	// Degenerate coupling must still produce a finite sweep span.
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, 0.3, 0))
	assert.NotEmpty(t, buf.String())
}
