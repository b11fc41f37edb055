// Package lead places the lead-vehicle marker and derives its label and
// colour from the fused radar and vision lead.
package lead

import (
	"math"

	"github.com/banshee-data/velocity.hud/internal/geom"
)

// Target is the primary lead for one frame.
type Target struct {
	// Screen is the projected position of the lead.
	Screen geom.Point
	// Status is the radar lead validity flag, Radar the radar-return flag.
	Status bool
	Radar  bool
	DRel   float64 // radar distance, m
	VRel   float64 // radar relative velocity, m/s
	// Prob and VisionDist come from the vision-only lead head.
	Prob       float64
	VisionDist float64
}

// Tracked reports whether the lead is backed by a radar return.
func (t Target) Tracked() bool {
	return t.Status && t.Radar
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Tone is the colour coding of the marker.
type Tone int

const (
	ToneNeutral Tone = iota // steady gap
	ToneWarning             // closing in
	ToneSafe                // pulling away
)

func (t Tone) String() string {
	switch t {
	case ToneWarning:
		return "warning"
	case ToneSafe:
		return "safe"
	}
	return "neutral"
}

// Icon selects the marker artwork.
type Icon int

const (
	IconChevron      Icon = iota // radar-tracked chevron
	IconVisionTarget             // path target with a vision distance
	IconStatus                   // path target, status icon only
)

func (i Icon) String() string {
	switch i {
	case IconChevron:
		return "chevron"
	case IconVisionTarget:
		return "vision_target"
	}
	return "status"
}

// Config holds placement tuning.
type Config struct {
	// Distance formats a distance in metres for display.
	Distance func(m float64) string
}

// Placement is the derived marker.
type Placement struct {
	Visible bool
	// Anchor is the clamped position before the distance offset.
	Anchor geom.Point
	// Position is where the marker is drawn.
	Position geom.Point
	// Label is empty when no distance is trusted.
	Label     string
	Distance  float64
	Tone      Tone
	Icon      Icon
	Size      float64
	FillAlpha float64
}

const (
	marginX      = 220.0
	marginTop    = 300.0
	marginBottom = 180.0
	maxBottom    = 400.0

	// offsetBias lifts a tracked marker by offsetBias-d pixels, so a close
	// lead sits well above its projected point and a lead beyond the bias
	// drops below it.
	offsetBias = 128.0

	// minPathPoints is the smallest corridor the path target is read from.
	minPathPoints = 10
	pathDefaultY  = 200.0 // from the bottom of the view

	closingThreshold = 0.1
	visionMinProb    = 0.5

	leadBuff  = 40.0 // m, fill starts inside this distance
	speedBuff = 10.0 // m/s, closing speed for full fill
)

// Place derives the marker for t. A radar-tracked lead is drawn at its
// projected position, clamped to the view margins and offset by distance.
// Anything else is drawn at the path target from PathCenter, or hidden when
// there is no path at all. Either way the marker never sits lower than
// maxBottom from the bottom of the view.
func Place(t Target, path []geom.Point, vp Viewport, cfg Config) Placement {
	var pl Placement

	switch {
	case t.Tracked():
		pl.Distance = t.DRel
		pl.Icon = IconChevron
	case t.Prob > visionMinProb:
		pl.Distance = t.VisionDist
		pl.Icon = IconVisionTarget
	default:
		pl.Distance = math.NaN()
		pl.Icon = IconStatus
	}

	var y float64
	if t.Tracked() {
		pl.Visible = true
		pl.Anchor = geom.Point{
			X: geom.Clamp(t.Screen.X, marginX, vp.Width-marginX),
			Y: geom.Clamp(t.Screen.Y, marginTop, vp.Height-marginBottom),
		}
		y = pl.Anchor.Y - (offsetBias - t.DRel)
		pl.Size = ChevronSize(t.DRel)
		pl.FillAlpha = FillAlpha(t.DRel, t.VRel)
		pl.Tone = toneFor(t.VRel)
	} else if c, ok := PathCenter(path, vp); ok {
		pl.Visible = true
		pl.Anchor = c
		y = c.Y
	}

	if !pl.Visible {
		pl.Distance = 0
		return pl
	}
	pl.Position = geom.Point{X: pl.Anchor.X, Y: math.Max(0, math.Min(y, vp.Height-maxBottom))}

	if math.IsNaN(pl.Distance) {
		pl.Distance = 0
		return pl
	}
	if cfg.Distance != nil {
		pl.Label = cfg.Distance(pl.Distance)
	}
	return pl
}

func toneFor(vRel float64) Tone {
	switch {
	case vRel < -closingThreshold:
		return ToneWarning
	case vRel > closingThreshold:
		return ToneSafe
	}
	return ToneNeutral
}

// PathCenter returns the path target: the corridor polygon runs out along
// the right boundary and back along the left, so path[n/2-1] and path[n/2]
// are the far ends of the two boundaries. The target sits midway between
// them at the height of path[n/2]. Corridors shorter than minPathPoints use
// a fixed point above the bottom centre of the view. An empty path has no
// target.
func PathCenter(path []geom.Point, vp Viewport) (geom.Point, bool) {
	n := len(path)
	if n == 0 {
		return geom.Point{}, false
	}
	if n < minPathPoints {
		return geom.Point{X: vp.Width / 2, Y: vp.Height - pathDefaultY}, true
	}
	right, left := path[n/2-1], path[n/2]
	return geom.Point{X: (right.X + left.X) / 2, Y: left.Y}, true
}

// ChevronSize is the chevron half-width in pixels for a lead at d metres.
func ChevronSize(d float64) float64 {
	return geom.Clamp((25*30)/(d/3+30), 15, 30) * 2.35
}

// FillAlpha is the chevron fill opacity in [0,255]: it grows as the lead
// gets closer than leadBuff and faster when closing in.
func FillAlpha(d, vRel float64) float64 {
	if d >= leadBuff {
		return 0
	}
	a := 255 * (1 - d/leadBuff)
	if vRel < 0 {
		a += 255 * (-vRel / speedBuff)
	}
	return math.Min(math.Floor(a), 255)
}
