// Package hud runs the per-frame overlay pipeline: it owns the state that
// persists across frames for one driving session and turns each snapshot
// into an overlay.Bundle.
package hud

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/velocity.hud/internal/blink"
	"github.com/banshee-data/velocity.hud/internal/dmon"
	"github.com/banshee-data/velocity.hud/internal/filter"
	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/gradient"
	"github.com/banshee-data/velocity.hud/internal/lead"
	"github.com/banshee-data/velocity.hud/internal/overlay"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
	"github.com/banshee-data/velocity.hud/internal/status"
	"github.com/banshee-data/velocity.hud/internal/units"
)

// Session is the compositor state for one drive. It is owned by the render
// goroutine and not safe for concurrent use.
type Session struct {
	ID       string
	settings Settings
	guard    snapshot.Guard

	fps   *filter.FirstOrder
	accel *filter.FirstOrder

	blinkers blink.Pair
	dm       *dmon.Monitor

	skipLeft int
	lay      layout
}

// NewSession starts a session whose channels count as fresh once received
// after startFrame.
func NewSession(st Settings, startFrame uint64) *Session {
	hz := 0.0
	if st.FrameDT > 0 {
		hz = 1 / st.FrameDT
	}
	return &Session{
		ID:       uuid.NewString(),
		settings: st,
		guard:    snapshot.Guard{Start: startFrame},
		fps:      filter.New(hz, st.FPSFilterTau, st.FrameDT),
		accel:    filter.New(0, st.AccelFilterTau, st.FrameDT),
		blinkers: blink.NewPair(st.Blink),
		dm:       dmon.NewMonitor(st.DriverMonitor),
		skipLeft: st.FrameSkipBudget,
		lay:      newLayout(st.Viewport),
	}
}

// StartFrame is the freshness reference of the session.
func (s *Session) StartFrame() uint64 { return s.guard.Start }

// ObserveInterval feeds the measured time between rendered frames to the
// frame-rate filter.
func (s *Session) ObserveInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.fps.Update(1 / d.Seconds())
}

// FPS returns the smoothed frame rate.
func (s *Session) FPS() float64 { return s.fps.Value() }

// Frame derives the bundle for snap. While the camera is not ready the frame
// is skipped, up to the skip budget in a row; after that the pass runs
// without imagery. The second result is false for a skipped frame.
func (s *Session) Frame(snap *snapshot.Snapshot, cameraReady bool) (*overlay.Bundle, bool) {
	if cameraReady {
		s.skipLeft = s.settings.FrameSkipBudget
	} else if s.skipLeft > 0 {
		s.skipLeft--
		return nil, false
	}

	b := &overlay.Bundle{SessionID: s.ID, Frame: snap.Frame}
	s.drawModel(b, snap)
	s.drawLead(b, snap)
	s.drawBadges(b, snap)
	s.drawAlert(b, snap)
	s.drawBlinkers(b, snap)
	s.drawDriverMonitor(b, snap)
	return b, true
}

func (s *Session) fresh(snap *snapshot.Snapshot, ch snapshot.Channel) bool {
	return s.guard.Fresh(snap, ch)
}

func (s *Session) drawModel(b *overlay.Bundle, snap *snapshot.Snapshot) {
	if !s.fresh(snap, snapshot.ModelV2) {
		return
	}
	m := snap.Model
	for i, line := range m.LaneLines {
		a := gradient.LaneLineAlpha(at(m.LaneLineProbs, i))
		if a <= 0 {
			continue
		}
		b.AddPolygon(fmt.Sprintf("lane_line_%d", i), line, overlay.SolidPaint(overlay.White.WithAlpha(a)))
	}
	for i, edge := range m.RoadEdges {
		a := gradient.RoadEdgeAlpha(at(m.RoadEdgeStds, i))
		if a <= 0 {
			continue
		}
		b.AddPolygon(fmt.Sprintf("road_edge_%d", i), edge, overlay.SolidPaint(overlay.RoadEdge.WithAlpha(a)))
	}

	var stops []gradient.Stop
	if snap.Controls.ExperimentalMode && s.fresh(snap, snapshot.ControlsState) {
		var accel []float64
		if s.fresh(snap, snapshot.UIPlan) {
			accel = snap.Plan.Accel
		}
		stops = gradient.Build(m.Path, accel, s.settings.Viewport.Height, s.settings.Gradient)
	} else {
		stops = gradient.Classic()
	}
	b.AddPolygon(namePath, m.Path, overlay.GradientPaint(stops))
}

// at returns xs[i] or 0 when the series is short.
func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func (s *Session) drawLead(b *overlay.Bundle, snap *snapshot.Snapshot) {
	if !s.fresh(snap, snapshot.RadarState) {
		return
	}
	l := snap.Radar.LeadOne
	t := lead.Target{
		Status: l.Status,
		Radar:  l.Radar,
		DRel:   l.DRel,
		VRel:   l.VRel,
	}
	var path []geom.Point
	if s.fresh(snap, snapshot.ModelV2) {
		t.Screen = snap.Model.LeadScreen
		t.Prob = snap.Model.LeadProb
		t.VisionDist = snap.Model.LeadDist
		path = snap.Model.Path
	}
	unit := s.settings.Units
	cfg := lead.Config{
		Distance: func(m float64) string { return units.FormatDistance(m, unit) },
	}
	pl := lead.Place(t, path, s.settings.Viewport, cfg)
	if !pl.Visible {
		return
	}

	tone := toneColor(pl.Tone)
	if pl.Icon == lead.IconChevron {
		b.AddPolygon(nameLeadGlow, chevron(pl.Position, pl.Size*1.15), overlay.SolidPaint(overlay.Caution))
		b.AddPolygon(nameLeadChevron, chevron(pl.Position, pl.Size), overlay.SolidPaint(overlay.Warning.WithAlpha(pl.FillAlpha/255)))
	} else {
		b.AddIcon(nameLeadMarker, pl.Position, pl.Icon.String(), 1, 0)
	}
	b.AddLabel(nameLeadDistance, labelBelow(pl.Position, pl.Size), pl.Label, tone, fontSmall)
}

func toneColor(t lead.Tone) overlay.Color {
	switch t {
	case lead.ToneWarning:
		return overlay.Warning
	case lead.ToneSafe:
		return overlay.Safe
	}
	return overlay.White
}

func (s *Session) drawBadges(b *overlay.Bundle, snap *snapshot.Snapshot) {
	unit := s.settings.Units
	carFresh := s.fresh(snap, snapshot.CarState)

	if sp := status.SpeedOf(snap.Car, carFresh, unit); sp.Visible {
		b.AddLabel(nameSpeed, s.lay.speed, sp.Text, overlay.White, fontHuge)
		b.AddLabel(nameSpeedUnit, s.lay.speedUnit, sp.Unit, overlay.WhiteDim, fontMedium)
	}

	ctlFresh := s.fresh(snap, snapshot.ControlsState)
	if c := status.CruiseOf(snap.Controls, snap.Car, ctlFresh && carFresh, unit); c.Visible {
		b.AddPolygon(nameCruiseBox, box(s.lay.cruise, 184, 202), overlay.SolidPaint(overlay.BlackTint))
		b.AddLabel(nameCruise, s.lay.cruise, c.Text, c.Color, fontLarge)
	}

	lim := status.SpeedLimitOf(
		snap.Longitudinal, s.fresh(snap, snapshot.LongitudinalPlan),
		snap.Nav, s.fresh(snap, snapshot.NavInstruction),
		unit)
	if lim.Visible() {
		b.AddIcon(nameSpeedLimitSign, s.lay.limit, "speed_limit_"+lim.Source.String(), 1, 0)
		b.AddLabel(nameSpeedLimit, s.lay.limit, lim.Text, overlay.Black, fontLarge)
		if lim.DistText != "" {
			b.AddLabel(nameSpeedLimitDist, s.lay.limitDist, lim.DistText, overlay.White, fontSmall)
		}
	}

	devFresh := s.fresh(snap, snapshot.DeviceState)
	if th := status.ThermalOf(snap.Device, devFresh); th.Visible {
		b.AddLabel(nameThermal, s.lay.thermal, th.Text, th.Color, fontSmall)
	}
	if st := status.StorageOf(snap.Device, devFresh); st.Visible {
		c := overlay.White
		if st.Warning {
			c = overlay.Warning
		}
		b.AddLabel(nameStorage, s.lay.storage, st.Text, c, fontSmall)
	}
	if g := status.GPSOf(snap.GPS, s.fresh(snap, snapshot.GPSLocation)); g.Visible {
		b.AddIcon(nameGPS, s.lay.gps, "gps", g.Opacity, 0)
	}
	for i, tire := range status.TPMSOf(snap.Car, carFresh, s.settings.TPMS) {
		if tire.Visible {
			b.AddLabel(tireNames[i], s.lay.tires[i], tire.Text, tire.Color, fontSmall)
		}
	}

	a := s.accel.Value()
	if carFresh {
		a = s.accel.Update(snap.Car.AEgo)
	}
	if g := status.AccelGaugeOf(a, carFresh); g.Visible {
		col := overlay.HSL(g.Hue, 1, 0.5, 1)
		b.AddPolygon(nameAccelGauge, gaugeBar(s.lay.gauge, g.Level), overlay.SolidPaint(col))
	}

	b.AddLabel(nameFPS, s.lay.fps, fmt.Sprintf("%.0f fps", s.fps.Value()), overlay.WhiteDim, fontTiny)
}

func (s *Session) drawAlert(b *overlay.Bundle, snap *snapshot.Snapshot) {
	a := status.AlertOf(snap, s.guard, s.settings.ControlsTimeoutFrames)
	if !a.Visible() {
		return
	}
	vp := s.settings.Viewport
	h := alertHeight(a.Size, vp.Height)
	top := vp.Height - h
	b.AddPolygon(nameAlertBackground, rect(0, top, vp.Width, vp.Height), overlay.SolidPaint(a.Background))

	size1, size2 := fontLarge, fontMedium
	if a.Size == snapshot.AlertSmall {
		size1 = fontMedium
	}
	mid := top + h/2
	b.AddLabel(nameAlertText1, point(vp.Width/2, mid-40), a.Text1, overlay.White, size1)
	if a.Size != snapshot.AlertSmall {
		b.AddLabel(nameAlertText2, point(vp.Width/2, mid+50), a.Text2, overlay.White, size2)
	}
}

func (s *Session) drawBlinkers(b *overlay.Bundle, snap *snapshot.Snapshot) {
	left, right := false, false
	if s.fresh(snap, snapshot.CarState) {
		left, right = snap.Car.LeftBlinker, snap.Car.RightBlinker
	}
	s.blinkers.Update(left, right)

	vp := s.settings.Viewport
	scales := s.blinkers.Left.Scales()
	for i, a := range s.blinkers.Left.Alphas(blinkerAlpha) {
		b.AddScaledIcon(fmt.Sprintf("blinker_left_%d", i), point(vp.Width/2-blinkerGap-float64(i)*blinkerStep, blinkerY), "chevron_left", a, 0, scales[i])
	}
	scales = s.blinkers.Right.Scales()
	for i, a := range s.blinkers.Right.Alphas(blinkerAlpha) {
		b.AddScaledIcon(fmt.Sprintf("blinker_right_%d", i), point(vp.Width/2+blinkerGap+float64(i)*blinkerStep, blinkerY), "chevron_right", a, 0, scales[i])
	}
}

func (s *Session) drawDriverMonitor(b *overlay.Bundle, snap *snapshot.Snapshot) {
	ic := s.dm.Update(snap, s.guard, s.settings.Viewport)
	if !ic.Visible {
		return
	}
	b.AddIcon(nameDriverMonitor, ic.Center, "driver_face", ic.Opacity, 0)
	b.AddPolygon(nameDriverFace, ic.Outline, overlay.SolidPaint(overlay.White.WithAlpha(ic.Opacity)))
}
