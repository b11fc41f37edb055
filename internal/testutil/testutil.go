// Package testutil provides shared test utilities and fixtures.
//
// The fixtures build snapshots that look like a car driving on a straight
// road, so derivation tests start from a realistic frame and change only
// the field under test.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
)

// ViewWidth and ViewHeight are the fixture viewport.
const (
	ViewWidth  = 1920.0
	ViewHeight = 1080.0
)

// Corridor returns a path polygon with n points per boundary: the right
// boundary from the bottom of the view toward the horizon, then the left
// boundary back down. The corridor narrows toward mid-screen.
func Corridor(n int) []geom.Point {
	if n < 2 {
		n = 2
	}
	right := make([]geom.Point, n)
	left := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		y := ViewHeight - t*ViewHeight*0.5
		half := 20 + 200*(1-t)
		right[i] = geom.Point{X: ViewWidth/2 + half, Y: y}
		left[n-1-i] = geom.Point{X: ViewWidth/2 - half, Y: y}
	}
	return append(right, left...)
}

// Line returns a thin four-point polygon from (x, bottom) to (x, top).
func Line(x, bottom, top float64) []geom.Point {
	return []geom.Point{{X: x - 4, Y: bottom}, {X: x - 2, Y: top}, {X: x + 2, Y: top}, {X: x + 4, Y: bottom}}
}

// Accel returns n copies of a.
func Accel(n int, a float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a
	}
	return out
}

// Driving returns a snapshot at frame with every channel received at that
// frame: engaged at 25 m/s behind a radar lead 30 m ahead.
func Driving(frame uint64) *snapshot.Snapshot {
	path := Corridor(8)
	s := &snapshot.Snapshot{
		Frame: frame,
		Car: snapshot.Car{
			VEgo:            25,
			AEgo:            0.2,
			CruiseAvailable: true,
			TirePressureKPa: [4]float64{250, 250, 248, 252},
		},
		Controls: snapshot.Controls{Enabled: true, VCruiseKph: 100},
		Radar: snapshot.Radar{
			LeadOne: snapshot.Lead{Status: true, Radar: true, DRel: 30, VRel: 0},
		},
		Model: snapshot.Model{
			LaneLines: [][]geom.Point{
				Line(600, ViewHeight, 560),
				Line(840, ViewHeight, 560),
				Line(1080, ViewHeight, 560),
				Line(1320, ViewHeight, 560),
			},
			LaneLineProbs: []float64{0.2, 0.9, 0.95, 0.3},
			RoadEdges:     [][]geom.Point{Line(400, ViewHeight, 560), Line(1520, ViewHeight, 560)},
			RoadEdgeStds:  []float64{0.3, 0.6},
			Path:          path,
			LeadScreen:    geom.Point{X: ViewWidth / 2, Y: 640},
			LeadProb:      0.9,
			LeadDist:      31,
		},
		Plan:   snapshot.Plan{Accel: Accel(8, 0.2)},
		Device: snapshot.Device{Started: true, CPUTempC: 55, FreeSpacePercent: 60},
		GPS:    snapshot.GPS{HasFix: true, AccuracyM: 2},
		DriverMonitoring: snapshot.DriverMonitoringState{
			IsActiveMode: true,
			FaceDetected: true,
		},
	}
	Stamp(s, frame, snapshot.Channels()...)
	return s
}

// Stamp marks chs as received at frame.
func Stamp(s *snapshot.Snapshot, frame uint64, chs ...snapshot.Channel) {
	for _, ch := range chs {
		s.Stamp(ch, frame)
	}
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
