package dmon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/lead"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
)

var vp = lead.Viewport{Width: 1920, Height: 1080}

func TestRotation_Orthonormal(t *testing.T) {
	r := Rotation(0.3, -0.5, 0.1)

	var p mat.Dense
	p.Mul(r, r.T())
	assert.True(t, mat.EqualApprox(&p, eye(3), 1e-12))
	assert.InDelta(t, 1.0, mat.Det(r), 1e-12)
}

func TestRotation_Identity(t *testing.T) {
	assert.True(t, mat.EqualApprox(Rotation(0, 0, 0), eye(3), 0))
}

func TestOutline_NoRotation(t *testing.T) {
	c := geom.Point{X: 100, Y: 200}
	pts := Outline([3]float64{}, c, 10)
	require.Len(t, pts, templatePoints)

	// First keypoint is the chin at (0, -1).
	assert.InDelta(t, 100, pts[0].X, 1e-9)
	assert.InDelta(t, 190, pts[0].Y, 1e-9)
	// A quarter turn round the contour is the widest point.
	assert.InDelta(t, 107.5, pts[templatePoints/4].X, 1e-9)
}

func TestOutline_YawMirrors(t *testing.T) {
	c := geom.Point{}
	flat := Outline([3]float64{}, c, 1)
	turned := Outline([3]float64{0, math.Pi, 0}, c, 1)
	for i := range flat {
		assert.InDelta(t, -flat[i].X, turned[i].X, 1e-9, "point %d", i)
		assert.InDelta(t, flat[i].Y, turned[i].Y, 1e-9, "point %d", i)
	}
}

func TestLayout_Center(t *testing.T) {
	l := DefaultLayout()
	assert.Equal(t, geom.Point{X: 126, Y: 954}, l.Center(vp, false))
	assert.Equal(t, geom.Point{X: 1794, Y: 954}, l.Center(vp, true))
}

func TestMonitor_Update(t *testing.T) {
	g := snapshot.Guard{Start: 10}
	s := &snapshot.Snapshot{Frame: 20}
	s.DriverMonitoring.RecvFrame = 20
	s.DriverMonitoring.IsActiveMode = false
	s.DriverMonitoring.FaceDetected = true

	m := NewMonitor(DefaultLayout())

	ic := m.Update(s, g, vp)
	require.True(t, ic.Visible)
	assert.InDelta(t, opacityInactive, ic.Opacity, 1e-12, "starts faded out")
	assert.Empty(t, ic.Outline, "driver state is stale")

	s.Driver.RecvFrame = 20
	for i := 0; i < 10; i++ {
		ic = m.Update(s, g, vp)
	}
	assert.InDelta(t, opacityInactive, ic.Opacity, 1e-12)
	assert.Len(t, ic.Outline, templatePoints)

	s.DriverMonitoring.IsActiveMode = true
	for i := 0; i < 10; i++ {
		ic = m.Update(s, g, vp)
	}
	assert.InDelta(t, opacityActive, ic.Opacity, 1e-12)
}

func TestMonitor_FadesInAtStart(t *testing.T) {
	s := &snapshot.Snapshot{Frame: 20}
	s.DriverMonitoring.RecvFrame = 20
	s.DriverMonitoring.IsActiveMode = true

	m := NewMonitor(DefaultLayout())
	first := m.Update(s, snapshot.Guard{Start: 10}, vp)
	assert.InDelta(t, 1.0*0.1+0.35*0.9, first.Opacity, 1e-12)
	second := m.Update(s, snapshot.Guard{Start: 10}, vp)
	assert.Greater(t, second.Opacity, first.Opacity)
}

func TestMonitor_StaleHidden(t *testing.T) {
	s := &snapshot.Snapshot{Frame: 20}
	s.DriverMonitoring.RecvFrame = 5
	ic := NewMonitor(DefaultLayout()).Update(s, snapshot.Guard{Start: 10}, vp)
	assert.False(t, ic.Visible)
	assert.False(t, NewMonitor(DefaultLayout()).Update(nil, snapshot.Guard{}, vp).Visible)
}

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}
