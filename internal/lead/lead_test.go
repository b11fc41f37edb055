package lead

import (
	"fmt"
	"testing"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vp = Viewport{Width: 1920, Height: 1080}

func metres(m float64) string { return fmt.Sprintf("%.0f m", m) }

func testConfig() Config {
	return Config{Distance: metres}
}

// testPath is a 10-point corridor: right boundary near to far, then left
// boundary far to near.
var testPath = []geom.Point{
	{X: 1300, Y: 1080}, {X: 1200, Y: 900}, {X: 1100, Y: 700}, {X: 1050, Y: 600}, {X: 1000, Y: 500},
	{X: 900, Y: 500}, {X: 850, Y: 600}, {X: 800, Y: 700}, {X: 700, Y: 900}, {X: 600, Y: 1080},
}

func TestPlace_ClampsTrackedLead(t *testing.T) {
	tests := []struct {
		name   string
		screen geom.Point
		wantX  float64
		wantY  float64
	}{
		{"far left and above", geom.Point{X: -10000, Y: -5000}, 220, 300},
		{"far right and below", geom.Point{X: 1e6, Y: 1e6}, 1700, 900},
		{"inside", geom.Point{X: 960, Y: 600}, 960, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := Place(Target{Screen: tt.screen, Status: true, Radar: true, DRel: 30}, testPath, vp, testConfig())
			require.True(t, pl.Visible)
			assert.Equal(t, tt.wantX, pl.Anchor.X)
			assert.Equal(t, tt.wantY, pl.Anchor.Y)
			assert.Equal(t, pl.Anchor.X, pl.Position.X)
		})
	}
}

func TestPlace_ClampProperty(t *testing.T) {
	for x := -20000.0; x <= 20000; x += 1234.5 {
		for y := -20000.0; y <= 20000; y += 1987.25 {
			for _, d := range []float64{0, 5, 50, 250} {
				pl := Place(Target{Screen: geom.Point{X: x, Y: y}, Status: true, Radar: true, DRel: d}, nil, vp, testConfig())
				assert.GreaterOrEqual(t, pl.Anchor.X, 220.0)
				assert.LessOrEqual(t, pl.Anchor.X, vp.Width-220)
				assert.GreaterOrEqual(t, pl.Anchor.Y, 300.0)
				assert.LessOrEqual(t, pl.Anchor.Y, vp.Height-180)
				assert.LessOrEqual(t, pl.Position.Y, vp.Height-400)
				assert.GreaterOrEqual(t, pl.Position.Y, 0.0)
			}
		}
	}
}

func TestPlace_DistanceOffset(t *testing.T) {
	screen := geom.Point{X: 960, Y: 600}
	tests := []struct {
		d     float64
		wantY float64
	}{
		{0, 472},
		{5, 477},
		{120, 592},
		{128, 600},
		{300, 680}, // re-clamped to height-400
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("d=%v", tt.d), func(t *testing.T) {
			pl := Place(Target{Screen: screen, Status: true, Radar: true, DRel: tt.d}, nil, vp, testConfig())
			assert.Equal(t, 600.0, pl.Anchor.Y)
			assert.Equal(t, tt.wantY, pl.Position.Y)
		})
	}

	near := Place(Target{Screen: screen, Status: true, Radar: true, DRel: 5}, nil, vp, testConfig())
	far := Place(Target{Screen: screen, Status: true, Radar: true, DRel: 120}, nil, vp, testConfig())
	assert.Less(t, near.Position.Y, far.Position.Y, "closer lead is lifted further")
}

func TestPlace_Labels(t *testing.T) {
	tests := []struct {
		name      string
		target    Target
		wantLabel string
		wantIcon  Icon
	}{
		{"radar preferred", Target{Status: true, Radar: true, DRel: 42, Prob: 0.9, VisionDist: 10}, "42 m", IconChevron},
		{"vision when radar return missing", Target{Status: true, Radar: false, DRel: 42, Prob: 0.9, VisionDist: 10}, "10 m", IconVisionTarget},
		{"vision only", Target{Prob: 0.51, VisionDist: 33}, "33 m", IconVisionTarget},
		{"probability at threshold", Target{Prob: 0.5, VisionDist: 33}, "", IconStatus},
		{"nothing", Target{}, "", IconStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := Place(tt.target, testPath, vp, testConfig())
			assert.Equal(t, tt.wantLabel, pl.Label)
			assert.Equal(t, tt.wantIcon, pl.Icon)
		})
	}
}

func TestPlace_NoRadarFallback(t *testing.T) {
	center, ok := PathCenter(testPath, vp)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 950, Y: 500}, center)

	pl := Place(Target{Screen: geom.Point{X: 5, Y: 5}, Status: false, Prob: 0.2, VisionDist: 18}, testPath, vp, testConfig())
	assert.True(t, pl.Visible)
	assert.Equal(t, center, pl.Position)
	assert.Equal(t, center, pl.Anchor)
	assert.Empty(t, pl.Label)
	assert.Equal(t, 0.0, pl.Distance)
	assert.Equal(t, IconStatus, pl.Icon)
	assert.Equal(t, ToneNeutral, pl.Tone)
}

func TestPlace_FallbackReclamped(t *testing.T) {
	low := make([]geom.Point, len(testPath))
	for i, p := range testPath {
		low[i] = geom.Point{X: p.X, Y: geom.Clamp(p.Y+500, 0, vp.Height)}
	}
	center, ok := PathCenter(low, vp)
	require.True(t, ok)
	require.Equal(t, 1000.0, center.Y)

	pl := Place(Target{Prob: 0.2}, low, vp, testConfig())
	require.True(t, pl.Visible)
	assert.Equal(t, center, pl.Anchor)
	assert.Equal(t, geom.Point{X: 950, Y: 680}, pl.Position)
}

func TestPlace_ShortPathUsesDefaultTarget(t *testing.T) {
	short := testPath[:8]
	pl := Place(Target{Prob: 0.9, VisionDist: 12}, short, vp, testConfig())
	require.True(t, pl.Visible)
	assert.Equal(t, geom.Point{X: 960, Y: 880}, pl.Anchor)
	assert.Equal(t, geom.Point{X: 960, Y: 680}, pl.Position)
	assert.Equal(t, "12 m", pl.Label)
}

func TestPlace_HiddenWithoutPath(t *testing.T) {
	pl := Place(Target{Prob: 0.9, VisionDist: 12}, nil, vp, testConfig())
	assert.False(t, pl.Visible)
	assert.Empty(t, pl.Label)
}

func TestPlace_NoFormatter(t *testing.T) {
	pl := Place(Target{Status: true, Radar: true, DRel: 12}, nil, vp, Config{})
	assert.Empty(t, pl.Label)
	assert.Equal(t, 12.0, pl.Distance)
}

func TestPlace_Tone(t *testing.T) {
	tests := []struct {
		vRel float64
		want Tone
	}{
		{-5, ToneWarning},
		{-0.11, ToneWarning},
		{-0.1, ToneNeutral},
		{0, ToneNeutral},
		{0.1, ToneNeutral},
		{0.2, ToneSafe},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("vRel=%v", tt.vRel), func(t *testing.T) {
			pl := Place(Target{Status: true, Radar: true, DRel: 20, VRel: tt.vRel}, nil, vp, testConfig())
			assert.Equal(t, tt.want, pl.Tone)
		})
	}

	vision := Place(Target{Prob: 0.9, VisionDist: 20, VRel: -5}, testPath, vp, testConfig())
	assert.Equal(t, ToneNeutral, vision.Tone, "vision-only leads carry no radar velocity")
}

func TestPathCenter_Degenerate(t *testing.T) {
	_, ok := PathCenter(nil, vp)
	assert.False(t, ok)

	for _, n := range []int{1, 2, 9} {
		c, ok := PathCenter(testPath[:n], vp)
		assert.True(t, ok, "n=%d", n)
		assert.Equal(t, geom.Point{X: 960, Y: 880}, c, "n=%d", n)
	}
}

func TestChevronAndFill(t *testing.T) {
	assert.InDelta(t, 58.75, ChevronSize(0), 1e-9)
	assert.InDelta(t, 35.25, ChevronSize(300), 1e-9)

	assert.Equal(t, 0.0, FillAlpha(40, -10))
	assert.Equal(t, 0.0, FillAlpha(80, 0))
	assert.Equal(t, 63.0, FillAlpha(30, 0))
	assert.Equal(t, 255.0, FillAlpha(20, -5))
	assert.Equal(t, 255.0, FillAlpha(1, -30))
	assert.Equal(t, 127.0, FillAlpha(20, 3))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "warning", ToneWarning.String())
	assert.Equal(t, "safe", ToneSafe.String())
	assert.Equal(t, "neutral", ToneNeutral.String())
	assert.Equal(t, "chevron", IconChevron.String())
	assert.Equal(t, "vision_target", IconVisionTarget.String())
	assert.Equal(t, "status", IconStatus.String())
}
