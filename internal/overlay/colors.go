package overlay

import "math"

// Color is 8-bit RGBA.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGBA builds a colour.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func (c Color) WithAlpha(a float64) Color {
	switch {
	case a <= 0:
		c.A = 0
	case a >= 1:
		c.A = 255
	default:
		c.A = uint8(a*255 + 0.5)
	}
	return c
}

// Common colours for the display.
var (
	White     = RGBA(255, 255, 255, 255)
	WhiteDim  = RGBA(255, 255, 255, 85)
	Grey      = RGBA(166, 166, 166, 255)
	Black     = RGBA(0, 0, 0, 255)
	BlackTint = RGBA(0, 0, 0, 166)

	// Lead tones
	Warning = RGBA(201, 34, 49, 255)
	Safe    = RGBA(23, 134, 68, 255)

	// Alert backgrounds
	AlertNormal     = RGBA(21, 21, 21, 241)
	AlertUserPrompt = RGBA(254, 140, 52, 241)
	AlertCritical   = RGBA(201, 34, 49, 241)

	// Badges
	Caution  = RGBA(218, 202, 37, 255)
	RoadEdge = RGBA(255, 0, 0, 255)
	Engaged  = RGBA(23, 134, 68, 241)
)

// HSL converts a hue in degrees and saturation, lightness and alpha in
// [0,1] to RGBA, as the gradient stops are specified.
func HSL(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := l - c/2
	return Color{R: byte8(r + m), G: byte8(g + m), B: byte8(b + m)}.WithAlpha(a)
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(v, 1)) }

func byte8(v float64) uint8 { return uint8(math.Round(clamp01(v) * 255)) }
