// Package plots charts the HUD's colour and opacity ramps so tuning changes
// can be eyeballed: PNG files via gonum/plot for reports and an HTML page
// via go-echarts for the debug server.
package plots

import (
	"github.com/banshee-data/velocity.hud/internal/gradient"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
	"github.com/banshee-data/velocity.hud/internal/status"
)

// Series is one curve of a ramp.
type Series struct {
	Name string
	Fn   func(x float64) float64
}

// Ramp is a set of curves over one input range.
type Ramp struct {
	Name   string // file-safe
	Title  string
	XLabel string
	YLabel string
	Min    float64
	Max    float64
	Series []Series
}

// Sample evaluates every series at n evenly spaced inputs. It returns the
// inputs and one row of outputs per series.
func (r Ramp) Sample(n int) ([]float64, [][]float64) {
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = r.Min + (r.Max-r.Min)*float64(i)/float64(n-1)
	}
	ys := make([][]float64, len(r.Series))
	for j, s := range r.Series {
		ys[j] = make([]float64, n)
		for i, x := range xs {
			ys[j][i] = s.Fn(x)
		}
	}
	return xs, ys
}

func thermalChannel(pick func(r, g, b uint8) uint8) func(float64) float64 {
	return func(t float64) float64 {
		c := status.ThermalOf(snapshot.Device{CPUTempC: t}, true).Color
		return float64(pick(c.R, c.G, c.B))
	}
}

// Ramps returns the ramps the HUD draws with.
func Ramps() []Ramp {
	return []Ramp{
		{
			Name: "accel_hue", Title: "Corridor hue by acceleration",
			XLabel: "Acceleration (m/s²)", YLabel: "Hue (°)",
			Min: -4, Max: 4,
			Series: []Series{{Name: "hue", Fn: gradient.AccelHue}},
		},
		{
			Name: "lane_alpha", Title: "Lane overlay opacity",
			XLabel: "Probability / std", YLabel: "Alpha",
			Min: 0, Max: 2,
			Series: []Series{
				{Name: "lane line", Fn: gradient.LaneLineAlpha},
				{Name: "road edge", Fn: gradient.RoadEdgeAlpha},
			},
		},
		{
			Name: "thermal", Title: "Thermal badge colour",
			XLabel: "CPU temperature (°C)", YLabel: "Channel",
			Min: 30, Max: 110,
			Series: []Series{
				{Name: "red", Fn: thermalChannel(func(r, _, _ uint8) uint8 { return r })},
				{Name: "green", Fn: thermalChannel(func(_, g, _ uint8) uint8 { return g })},
				{Name: "blue", Fn: thermalChannel(func(_, _, b uint8) uint8 { return b })},
			},
		},
		{
			Name: "gps_opacity", Title: "GPS badge opacity",
			XLabel: "Accuracy (m)", YLabel: "Opacity",
			Min: 0, Max: 15,
			Series: []Series{{Name: "opacity", Fn: func(acc float64) float64 {
				return status.GPSOf(snapshot.GPS{HasFix: true, AccuracyM: acc}, true).Opacity
			}}},
		},
	}
}
