package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
	"github.com/banshee-data/velocity.hud/internal/timeutil"
)

// Generator produces a plausible drive for demos and soak tests: speed
// drifting around 20 m/s, a lead closing and opening, a periodic lane
// change with the blinker on, and a corridor that sways.
type Generator struct {
	// Width and Height are the view the projected geometry targets.
	Width  float64
	Height float64
	// PathPoints per corridor boundary.
	PathPoints int

	rng *rand.Rand
	t   float64 // seconds since start
}

// NewGenerator returns a generator. The same seed yields the same drive.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Width:      1920,
		Height:     1080,
		PathPoints: 16,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Next advances the drive by dt seconds and returns one envelope per
// channel.
func (g *Generator) Next(dt float64) ([]Envelope, error) {
	g.t += dt
	t := g.t

	v := 20 + 5*math.Sin(0.1*t)
	a := 0.5 * math.Cos(0.1*t)
	signalling := math.Mod(t, 30) > 24
	dRel := 40 + 20*math.Sin(0.2*t)
	sway := 120 * math.Sin(0.15*t)

	path := g.corridor(sway)
	half := len(path) / 2
	accel := make([]float64, half)
	for i := range accel {
		accel[i] = a + 0.05*float64(i)*math.Sin(0.3*t)
	}
	lead := geom.Point{X: g.Width/2 + sway*0.6, Y: g.Height*0.55 + 200*(1-dRel/60)}

	msgs := []struct {
		ch   snapshot.Channel
		data any
	}{
		{snapshot.CarState, snapshot.Car{
			VEgo:             v,
			AEgo:             a,
			SteeringAngleDeg: sway / 20,
			LeftBlinker:      signalling,
			CruiseAvailable:  true,
			TirePressureKPa:  [4]float64{250, 252, 246, 249},
		}},
		{snapshot.ControlsState, snapshot.Controls{
			Enabled:          true,
			ExperimentalMode: math.Mod(t, 120) > 60,
			VCruiseKph:       100,
		}},
		{snapshot.RadarState, snapshot.Radar{
			LeadOne: snapshot.Lead{Status: true, Radar: dRel < 55, DRel: dRel, VRel: 4 * math.Cos(0.2*t)},
		}},
		{snapshot.ModelV2, snapshot.Model{
			LaneLines:     g.laneLines(sway),
			LaneLineProbs: []float64{0.3, 0.9, 0.9, 0.3},
			RoadEdges:     [][]geom.Point{g.line(sway, -560), g.line(sway, 560)},
			RoadEdgeStds:  []float64{0.4, 0.4},
			Path:          path,
			LeadScreen:    lead,
			LeadProb:      0.8,
			LeadDist:      dRel + g.rng.NormFloat64(),
		}},
		{snapshot.UIPlan, snapshot.Plan{Accel: accel}},
		{snapshot.DeviceState, snapshot.Device{
			Started:          true,
			CPUTempC:         60 + 10*math.Sin(0.01*t) + g.rng.Float64(),
			FreeSpacePercent: 42,
		}},
		{snapshot.GPSLocation, snapshot.GPS{HasFix: true, AccuracyM: 3 + 2*math.Sin(0.05*t)}},
		{snapshot.DriverMonitoring, snapshot.DriverMonitoringState{IsActiveMode: true, FaceDetected: true}},
		{snapshot.DriverState, snapshot.Driver{
			FaceOrientation: [3]float64{0.1 * math.Sin(0.5*t), 0.3 * math.Sin(0.3*t), 0},
		}},
		{snapshot.LongitudinalPlan, snapshot.Longitudinal{SectionSpeedLimit: 27.78, SectionLeftDist: 2000 - math.Mod(25*t, 2000)}},
	}

	out := make([]Envelope, 0, len(msgs))
	for _, m := range msgs {
		b, err := json.Marshal(m.data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", m.ch, err)
		}
		out = append(out, Envelope{Channel: m.ch.String(), Data: b})
	}
	return out, nil
}

func (g *Generator) corridor(sway float64) []geom.Point {
	n := g.PathPoints
	if n < 2 {
		n = 2
	}
	right := make([]geom.Point, n)
	left := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n-1)
		y := g.Height - f*g.Height*0.45
		cx := g.Width/2 + sway*f*f
		w := 30 + 220*(1-f)
		right[i] = geom.Point{X: cx + w, Y: y}
		left[n-1-i] = geom.Point{X: cx - w, Y: y}
	}
	return append(right, left...)
}

func (g *Generator) line(sway, offset float64) []geom.Point {
	bottom := g.Height
	top := g.Height * 0.55
	bx := g.Width/2 + offset
	tx := g.Width/2 + offset*0.15 + sway
	return []geom.Point{{X: bx - 5, Y: bottom}, {X: tx - 2, Y: top}, {X: tx + 2, Y: top}, {X: bx + 5, Y: bottom}}
}

func (g *Generator) laneLines(sway float64) [][]geom.Point {
	return [][]geom.Point{
		g.line(sway, -750), g.line(sway, -250), g.line(sway, 250), g.line(sway, 750),
	}
}

// Run feeds f from the generator every interval until ctx is done.
func (g *Generator) Run(ctx context.Context, f *Feed, clock timeutil.Clock, interval time.Duration) error {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	t := clock.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C():
			envs, err := g.Next(interval.Seconds())
			if err != nil {
				return err
			}
			for _, e := range envs {
				if err := f.ApplyEnvelope(e); err != nil {
					return err
				}
			}
		}
	}
}
