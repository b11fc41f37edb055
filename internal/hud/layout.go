package hud

import (
	"math"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/lead"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
)

// Element names in the bundle. The compositor keys artwork and animation
// off these.
const (
	namePath            = "path"
	nameLeadGlow        = "lead_glow"
	nameLeadChevron     = "lead_chevron"
	nameLeadMarker      = "lead_marker"
	nameLeadDistance    = "lead_distance"
	nameSpeed           = "speed"
	nameSpeedUnit       = "speed_unit"
	nameCruiseBox       = "cruise_box"
	nameCruise          = "cruise_speed"
	nameSpeedLimitSign  = "speed_limit_sign"
	nameSpeedLimit      = "speed_limit"
	nameSpeedLimitDist  = "speed_limit_dist"
	nameThermal         = "thermal"
	nameStorage         = "storage"
	nameGPS             = "gps"
	nameAccelGauge      = "accel_gauge"
	nameFPS             = "fps"
	nameAlertBackground = "alert_background"
	nameAlertText1      = "alert_text_1"
	nameAlertText2      = "alert_text_2"
	nameDriverMonitor   = "driver_monitor"
	nameDriverFace      = "driver_face"
)

var tireNames = [4]string{"tpms_fl", "tpms_fr", "tpms_rl", "tpms_rr"}

const (
	fontTiny   = 30
	fontSmall  = 45
	fontMedium = 66
	fontLarge  = 90
	fontHuge   = 176

	blinkerY     = 300.0
	blinkerGap   = 260.0
	blinkerStep  = 70.0
	blinkerAlpha = 0.8

	gaugeHeight = 300.0
	gaugeWidth  = 24.0
)

// layout holds the fixed badge anchors for one viewport.
type layout struct {
	speed     geom.Point
	speedUnit geom.Point
	cruise    geom.Point
	limit     geom.Point
	limitDist geom.Point
	thermal   geom.Point
	storage   geom.Point
	gps       geom.Point
	gauge     geom.Point
	fps       geom.Point
	tires     [4]geom.Point
}

func newLayout(vp lead.Viewport) layout {
	cx := vp.Width / 2
	l := layout{
		speed:     point(cx, 210),
		speedUnit: point(cx, 290),
		cruise:    point(60+92, 45+101),
		limit:     point(60+92, 45+202+150),
		limitDist: point(60+92, 45+202+150+140),
		thermal:   point(vp.Width-150, 60),
		storage:   point(vp.Width-150, 120),
		gps:       point(vp.Width-300, 60),
		gauge:     point(vp.Width-60, vp.Height/2),
		fps:       point(cx, vp.Height-30),
	}
	tx := vp.Width - 260
	ty := vp.Height - 320
	l.tires = [4]geom.Point{
		point(tx, ty), point(tx+120, ty),
		point(tx, ty+140), point(tx+120, ty+140),
	}
	return l
}

func point(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

// rect is an axis-aligned rectangle, clockwise from the top-left.
func rect(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// box is a w×h rectangle centred on c.
func box(c geom.Point, w, h float64) []geom.Point {
	return rect(c.X-w/2, c.Y-h/2, c.X+w/2, c.Y+h/2)
}

// chevron is the lead triangle with its tip at pos.
func chevron(pos geom.Point, size float64) []geom.Point {
	return []geom.Point{
		{X: pos.X + size*1.25, Y: pos.Y + size},
		{X: pos.X, Y: pos.Y},
		{X: pos.X - size*1.25, Y: pos.Y + size},
	}
}

// labelBelow places the lead label under a marker of the given size.
func labelBelow(pos geom.Point, size float64) geom.Point {
	return geom.Point{X: pos.X, Y: pos.Y + math.Max(size, 30) + 40}
}

// gaugeBar grows up from base for positive levels and down for negative.
func gaugeBar(base geom.Point, level float64) []geom.Point {
	h := level * gaugeHeight / 2
	if math.Abs(h) < 1 {
		h = math.Copysign(1, level)
	}
	return rect(base.X-gaugeWidth/2, base.Y-math.Max(h, 0), base.X+gaugeWidth/2, base.Y-math.Min(h, 0))
}

// alertHeight is the banner height for a size.
func alertHeight(sz snapshot.AlertSize, viewHeight float64) float64 {
	switch sz {
	case snapshot.AlertSmall:
		return 271
	case snapshot.AlertMid:
		return 420
	case snapshot.AlertFull:
		return viewHeight
	}
	return 0
}
