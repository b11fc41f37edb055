package gradient

import (
	"testing"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewHeight = 1080.0

// corridor returns a path polygon whose right boundary climbs from the
// bottom of the view toward the horizon, followed by a mirrored left side.
func corridor(n int) []geom.Point {
	right := make([]geom.Point, n)
	for i := range right {
		right[i] = geom.Point{X: 1200 - float64(i)*10, Y: viewHeight - float64(i)*40}
	}
	path := append([]geom.Point(nil), right...)
	for i := n - 1; i >= 0; i-- {
		path = append(path, geom.Point{X: 720 + float64(i)*10, Y: right[i].Y})
	}
	return path
}

func TestBuild_OrderingAndRange(t *testing.T) {
	path := corridor(20)
	accel := make([]float64, 20)
	for i := range accel {
		accel[i] = float64(i-10) * 0.3
	}

	stops := Build(path, accel, viewHeight, Options{QuantizeHue: true})
	require.Len(t, stops, 20)
	for i, s := range stops {
		assert.GreaterOrEqual(t, s.Pos, 0.0)
		assert.LessOrEqual(t, s.Pos, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, s.Pos, stops[i-1].Pos)
		}
		assert.GreaterOrEqual(t, s.Hue, 0.0)
		assert.LessOrEqual(t, s.Hue, 148.0)
	}
}

func TestBuild_StopValues(t *testing.T) {
	path := []geom.Point{
		{X: 0, Y: 1080}, // p = 0
		{X: 0, Y: 540},  // p = 0.5
		{X: 0, Y: 0},    // p = 1
		{X: 0, Y: 0}, {X: 0, Y: 540}, {X: 0, Y: 1080},
	}
	accel := []float64{0, 1, -2}

	stops := Build(path, accel, viewHeight, Options{})
	require.Len(t, stops, 3)

	assert.Equal(t, Stop{Pos: 0, Hue: 60, Saturation: 0, Lightness: 0.95, Alpha: 0.4}, stops[0])

	assert.InDelta(t, 0.5, stops[1].Pos, 1e-12)
	assert.InDelta(t, 95, stops[1].Hue, 1e-12)
	assert.InDelta(t, 1.0, stops[1].Saturation, 1e-12)
	assert.InDelta(t, 0.62, stops[1].Lightness, 1e-12)
	assert.InDelta(t, 0.2, stops[1].Alpha, 1e-12)

	assert.InDelta(t, 1.0, stops[2].Pos, 1e-12)
	assert.Equal(t, 0.0, stops[2].Hue)
	assert.Equal(t, 0.0, stops[2].Alpha)
}

func TestBuild_TruncatesAtShortAccelSeries(t *testing.T) {
	stops := Build(corridor(20), []float64{0.1, 0.2, 0.3}, viewHeight, Options{})
	assert.Len(t, stops, 3)
}

func TestBuild_SkipsOffscreenPoints(t *testing.T) {
	path := []geom.Point{
		{Y: 1200}, // below the view
		{Y: 900},
		{Y: -50}, // above the view
		{Y: -50}, {Y: 900}, {Y: 1200},
	}
	stops := Build(path, []float64{0, 0, 0}, viewHeight, Options{})
	require.Len(t, stops, 1)
	assert.InDelta(t, 180.0/1080.0, stops[0].Pos, 1e-12)
}

func TestBuild_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		path   []geom.Point
		accel  []float64
		height float64
	}{
		{"empty path", nil, []float64{1, 2}, viewHeight},
		{"single point", []geom.Point{{Y: 500}}, []float64{1}, viewHeight},
		{"no accel", corridor(5), nil, viewHeight},
		{"zero height", corridor(5), []float64{1, 1, 1, 1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops := Build(tt.path, tt.accel, tt.height, Options{})
			assert.Equal(t, []Stop{Default}, stops)
		})
	}
}

func TestBuild_QuantizeHue(t *testing.T) {
	path := []geom.Point{{Y: 540}, {Y: 540}}
	accel := []float64{0.123456}

	raw := Build(path, accel, viewHeight, Options{})
	q := Build(path, accel, viewHeight, Options{QuantizeHue: true})

	assert.InDelta(t, 60+0.123456*35, raw[0].Hue, 1e-12)
	assert.Equal(t, 64.32, q[0].Hue)
}

func TestAppend_ReusesBuffer(t *testing.T) {
	buf := make([]Stop, 0, 32)
	out := Append(buf, corridor(10), make([]float64, 10), viewHeight, Options{})
	assert.Len(t, out, 10)
	assert.Equal(t, cap(buf), cap(out))

	out = Append(out, nil, nil, viewHeight, Options{})
	assert.Equal(t, []Stop{Default}, out)
}

func TestClassic(t *testing.T) {
	c := Classic()
	require.Len(t, c, 3)
	assert.Equal(t, 0.0, c[0].Pos)
	assert.Equal(t, 1.0, c[2].Pos)
	assert.Equal(t, Default, c[0])
}

func TestLaneAlphas(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"confident line", LaneLineAlpha, 0.95, 1},
		{"half probability line", LaneLineAlpha, 0.4, 0.8},
		{"weak line floors at half", LaneLineAlpha, 0.1, 0.5},
		{"negative probability", LaneLineAlpha, -1, 0.5},
		{"tight edge", RoadEdgeAlpha, -0.2, 1},
		{"edge at 1.5 std", RoadEdgeAlpha, 1.6, 0.8},
		{"edge at 1.75 std", RoadEdgeAlpha, 1.75, 0.5},
		{"loose edge floors at half", RoadEdgeAlpha, 3, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fn(tt.in), 1e-12)
		})
	}
}

func TestAccelHue(t *testing.T) {
	assert.Equal(t, 60.0, AccelHue(0))
	assert.Equal(t, 148.0, AccelHue(10))
	assert.Equal(t, 0.0, AccelHue(-10))
}
