package plots

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineChart builds the echarts line chart for r.
func LineChart(r Ramp) *charts.Line {
	xs, ys := r.Sample(Samples)
	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = fmt.Sprintf("%.2f", x)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "HUD ramps", Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: r.Title, Subtitle: r.XLabel}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: r.YLabel}),
	)
	line.SetXAxis(labels)
	for j, s := range r.Series {
		data := make([]opts.LineData, len(ys[j]))
		for i, y := range ys[j] {
			data[i] = opts.LineData{Value: y}
		}
		line.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line
}

// RenderHTML writes one page with a chart per ramp.
func RenderHTML(w io.Writer, ramps []Ramp) error {
	page := components.NewPage()
	for _, r := range ramps {
		page.AddCharts(LineChart(r))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// Handler serves the ramp page.
func Handler(ramps []Ramp) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		if err := RenderHTML(&buf, ramps); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}
