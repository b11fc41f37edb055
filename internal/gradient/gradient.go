// Package gradient builds the paint for the projected driving corridor and
// the lane overlays.
package gradient

import (
	"math"
	"slices"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/interp"
)

// Stop is one colour stop on a vertical gradient. Pos runs from 0 at the
// bottom of the view to 1 at the top. Hue is in degrees; the other channels
// are in [0,1].
type Stop struct {
	Pos        float64 `json:"pos"`
	Hue        float64 `json:"h"`
	Saturation float64 `json:"s"`
	Lightness  float64 `json:"l"`
	Alpha      float64 `json:"a"`
}

// Options tunes stop generation.
type Options struct {
	// QuantizeHue rounds hues to two decimals so the fill backend sees
	// fewer distinct colours.
	QuantizeHue bool
}

const (
	hueNeutral  = 60.0
	huePerAccel = 35.0
	hueMax      = 148.0
	satPerAccel = 1.5
	lightGrey   = 0.95
	lightFull   = 0.62
)

// alphaFade fades the corridor toward the horizon.
var alphaFade = interp.MustTable([]float64{0.375, 0.625}, []float64{0.4, 0.0})

// Default is the flat paint used when no stop could be derived.
var Default = Stop{Pos: 0, Hue: 148, Saturation: 0.94, Lightness: 0.51, Alpha: 0.4}

// Classic returns the fixed three-stop corridor paint used outside
// experimental mode.
func Classic() []Stop {
	return []Stop{
		{Pos: 0.0, Hue: 148, Saturation: 0.94, Lightness: 0.51, Alpha: 0.4},
		{Pos: 0.5, Hue: 112, Saturation: 1.0, Lightness: 0.68, Alpha: 0.35},
		{Pos: 1.0, Hue: 112, Saturation: 1.0, Lightness: 0.68, Alpha: 0.0},
	}
}

// Build returns the acceleration-coloured stops for path. See Append.
func Build(path []geom.Point, accel []float64, viewHeight float64, opts Options) []Stop {
	return Append(nil, path, accel, viewHeight, opts)
}

// Append derives stops from the right-boundary half of path, which is
// index-aligned with accel, and appends them to dst[:0]. Points outside the
// view are skipped and the walk stops at the end of accel. The result is
// ordered by Pos and is never empty.
func Append(dst []Stop, path []geom.Point, accel []float64, viewHeight float64, opts Options) []Stop {
	dst = dst[:0]
	if viewHeight > 0 {
		half := len(path) / 2
		for i := 0; i < half; i++ {
			if i >= len(accel) {
				break
			}
			p := (viewHeight - path[i].Y) / viewHeight
			if p < 0 || p > 1 {
				continue
			}
			dst = append(dst, stopFor(p, accel[i], opts))
		}
	}
	if len(dst) == 0 {
		return append(dst, Default)
	}
	slices.SortStableFunc(dst, func(a, b Stop) int {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		}
		return 0
	})
	return dst
}

func stopFor(p, a float64, opts Options) Stop {
	hue := AccelHue(a)
	if opts.QuantizeHue {
		hue = math.Round(hue*100) / 100
	}
	sat := geom.Clamp(math.Abs(a)*satPerAccel, 0, 1)
	return Stop{
		Pos:        p,
		Hue:        hue,
		Saturation: sat,
		Lightness:  geom.Lerp(lightGrey, lightFull, sat),
		Alpha:      alphaFade.At(p),
	}
}

// AccelHue maps a longitudinal acceleration in m/s² to a hue: green when
// speeding up, yellow at zero, red when slowing.
func AccelHue(a float64) float64 {
	return geom.Clamp(hueNeutral+a*huePerAccel, 0, hueMax)
}

// LaneLineAlpha is the fill alpha for a lane line of the given probability.
// Lines stay at least half visible.
func LaneLineAlpha(prob float64) float64 {
	return geom.Clamp(prob*2, 0.5, 1)
}

// RoadEdgeAlpha is the fill alpha for a road edge of the given standard
// deviation. Edges stay at least half visible.
func RoadEdgeAlpha(std float64) float64 {
	return geom.Clamp((2-std)*2, 0.5, 1)
}
