package sweep

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"
)

// RenderReport writes an HTML report for one operating point: sin2phi across
// the avoided crossing and tau against temperature.
func RenderReport(w io.Writer, delta, v float64) error {
	span := 10 * math.Abs(v)
	if span == 0 {
		span = math.Max(math.Abs(delta), 0.1)
	}

	page := components.NewPage()
	page.PageTitle = "corridor report"
	page.AddCharts(
		lineChart(
			"Mixing weight across the crossing",
			fmt.Sprintf("V = %g eV", v),
			"delta (eV)", "sin2phi",
			Separation(v, -span, span, 201),
		),
		lineChart(
			"Toggle propensity vs temperature",
			fmt.Sprintf("delta = %g eV, V = %g eV", delta, v),
			"T (K)", "tau",
			Temperature(delta, v, 1, 1000, 200),
		),
	)

	return eris.Wrap(page.Render(w), "sweep: render report")
}

func lineChart(title, subtitle, xName, yName string, pts []Point) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)

	xs := make([]string, len(pts))
	data := make([]opts.LineData, len(pts))
	for i, p := range pts {
		xs[i] = fmt.Sprintf("%.4g", p.X)
		data[i] = opts.LineData{Value: p.Y}
	}
	line.SetXAxis(xs).AddSeries(yName, data)
	return line
}
