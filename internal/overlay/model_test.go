package overlay

import (
	"testing"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/gradient"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBundle_AddAndLookup(t *testing.T) {
	var b Bundle
	tri := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}}

	b.AddPolygon("path", tri, GradientPaint(gradient.Classic()))
	b.AddPolygon("degenerate", tri[:2], SolidPaint(White))
	b.AddLabel("speed", geom.Point{X: 960, Y: 210}, "88", White, 176)
	b.AddLabel("empty", geom.Point{}, "", White, 10)
	b.AddIcon("dm", geom.Point{X: 100, Y: 900}, "driver_face", 0.65, 0)
	b.AddIcon("hidden", geom.Point{}, "x", 0, 0)

	assert.Len(t, b.Polygons, 1)
	assert.Len(t, b.Labels, 1)
	assert.Len(t, b.Icons, 1)

	want := Label{Name: "speed", Pos: geom.Point{X: 960, Y: 210}, Text: "88", Color: White, FontSize: 176}
	got, ok := b.Label("speed")
	assert.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("label mismatch (-want +got):\n%s", diff)
	}

	p, ok := b.Polygon("path")
	assert.True(t, ok)
	assert.Nil(t, p.Paint.Solid)
	assert.Len(t, p.Paint.Gradient, 3)

	_, ok = b.Icon("hidden")
	assert.False(t, ok)
	_, ok = b.Polygon("degenerate")
	assert.False(t, ok)

	dm, ok := b.Icon("dm")
	assert.True(t, ok)
	assert.Equal(t, 1.0, dm.Scale)
}

func TestBundle_AddScaledIcon(t *testing.T) {
	var b Bundle
	b.AddScaledIcon("chevron", geom.Point{X: 1, Y: 2}, "chevron_left", 0.4, 0, 8.0/9)
	b.AddScaledIcon("flat", geom.Point{}, "chevron_left", 0.4, 0, 0)

	want := Icon{Name: "chevron", Pos: geom.Point{X: 1, Y: 2}, Image: "chevron_left", Opacity: 0.4, Scale: 8.0 / 9}
	got, ok := b.Icon("chevron")
	assert.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("icon mismatch (-want +got):\n%s", diff)
	}
	_, ok = b.Icon("flat")
	assert.False(t, ok)
}

func TestColor_WithAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), White.WithAlpha(-1).A)
	assert.Equal(t, uint8(255), White.WithAlpha(2).A)
	assert.Equal(t, uint8(128), White.WithAlpha(0.5).A)
	assert.Equal(t, uint8(255), White.A, "receiver is not modified")
}

func TestSolidPaint_Copies(t *testing.T) {
	c := White
	p := SolidPaint(c)
	c.R = 0
	assert.Equal(t, uint8(255), p.Solid.R)
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name       string
		h, s, l, a float64
		want       Color
	}{
		{"red", 0, 1, 0.5, 1, RGBA(255, 0, 0, 255)},
		{"green", 120, 1, 0.5, 1, RGBA(0, 255, 0, 255)},
		{"blue half alpha", 240, 1, 0.5, 0.5, RGBA(0, 0, 255, 128)},
		{"negative hue wraps", -120, 1, 0.5, 1, RGBA(0, 0, 255, 255)},
		{"yellow", 60, 1, 0.5, 1, RGBA(255, 255, 0, 255)},
		{"unsaturated is grey", 148, 0, 0.95, 1, RGBA(242, 242, 242, 255)},
		{"black", 30, 1, 0, 1, RGBA(0, 0, 0, 255)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HSL(tt.h, tt.s, tt.l, tt.a))
		})
	}
}
