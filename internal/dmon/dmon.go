// Package dmon derives the driver-monitoring icon: where it sits, how
// opaque it is, and the face outline drawn inside it.
package dmon

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/velocity.hud/internal/blink"
	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/lead"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
)

const (
	templatePoints = 16
	fadeStep       = 0.2

	opacityActive   = 1.0
	opacityInactive = 0.35
)

// faceTemplate is a unit face outline in model space, one row per keypoint
// (x, y, z). The contour bulges toward the camera at the chin and forehead.
var faceTemplate = newTemplate(templatePoints)

func newTemplate(n int) *mat.Dense {
	data := make([]float64, 0, n*3)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		x := 0.75 * math.Sin(th)
		y := -math.Cos(th)
		z := 0.25 * math.Abs(y)
		data = append(data, x, y, z)
	}
	return mat.NewDense(n, 3, data)
}

// Layout places the icon inside the viewport.
type Layout struct {
	Radius float64
	Margin float64
}

// DefaultLayout matches the bottom-corner icon of the onroad view.
func DefaultLayout() Layout {
	return Layout{Radius: 96, Margin: 30}
}

// Center returns the icon centre on the driver's side of the bottom edge.
func (l Layout) Center(vp lead.Viewport, rhd bool) geom.Point {
	x := l.Margin + l.Radius
	if rhd {
		x = vp.Width - l.Margin - l.Radius
	}
	return geom.Point{X: x, Y: vp.Height - l.Margin - l.Radius}
}

// Rotation returns R = Rz(roll)·Ry(yaw)·Rx(pitch).
func Rotation(pitch, yaw, roll float64) *mat.Dense {
	sp, cp := math.Sincos(pitch)
	sy, cy := math.Sincos(yaw)
	sr, cr := math.Sincos(roll)

	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cp, -sp,
		0, sp, cp,
	})
	ry := mat.NewDense(3, 3, []float64{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	})
	rz := mat.NewDense(3, 3, []float64{
		cr, -sr, 0,
		sr, cr, 0,
		0, 0, 1,
	})

	var r mat.Dense
	r.Mul(rz, ry)
	r.Mul(&r, rx)
	return &r
}

// Outline rotates the face template by orientation (pitch, yaw, roll) and
// projects it orthographically onto the screen around center.
func Outline(orientation [3]float64, center geom.Point, scale float64) []geom.Point {
	r := Rotation(orientation[0], orientation[1], orientation[2])

	var rotated mat.Dense
	rotated.Mul(faceTemplate, r.T())

	n, _ := rotated.Dims()
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		out[i] = geom.Point{
			X: center.X + scale*rotated.At(i, 0),
			Y: center.Y + scale*rotated.At(i, 1),
		}
	}
	return out
}

// Icon is the derived driver-monitoring icon for one frame.
type Icon struct {
	Visible bool
	Center  geom.Point
	Opacity float64
	// Outline is empty when no face is tracked.
	Outline []geom.Point
}

// Monitor owns the icon fade across frames.
type Monitor struct {
	Layout Layout
	fade   *blink.Fade
}

// NewMonitor returns a monitor whose icon fades in from the inactive
// opacity.
func NewMonitor(l Layout) *Monitor {
	return &Monitor{Layout: l, fade: blink.NewFade(fadeStep)}
}

// Update advances the fade and derives the icon. The icon is hidden while
// the monitoring policy output is stale.
func (m *Monitor) Update(s *snapshot.Snapshot, g snapshot.Guard, vp lead.Viewport) Icon {
	if !g.Fresh(s, snapshot.DriverMonitoring) {
		return Icon{}
	}
	dm := s.DriverMonitoring
	m.fade.Update(dm.IsActiveMode)

	ic := Icon{
		Visible: true,
		Center:  m.Layout.Center(vp, dm.IsRHD),
		Opacity: m.fade.Opacity(opacityActive, opacityInactive),
	}
	if dm.FaceDetected && g.Fresh(s, snapshot.DriverState) {
		ic.Outline = Outline(s.Driver.FaceOrientation, ic.Center, m.Layout.Radius*0.5)
	}
	return ic
}
