// Package snapshot defines the typed per-frame state the overlay core reads.
// The upstream producer fills one Snapshot per publish; the render loop
// takes one handle per frame from a Store and never mutates it.
package snapshot

import "github.com/banshee-data/velocity.hud/internal/geom"

// Channel identifies an independently timestamped group of fields.
type Channel int

const (
	CarState Channel = iota
	ControlsState
	RadarState
	ModelV2
	UIPlan
	DeviceState
	GPSLocation
	DriverMonitoring
	DriverState
	LongitudinalPlan
	NavInstruction

	numChannels
)

var channelNames = [numChannels]string{
	CarState:         "carState",
	ControlsState:    "controlsState",
	RadarState:       "radarState",
	ModelV2:          "modelV2",
	UIPlan:           "uiPlan",
	DeviceState:      "deviceState",
	GPSLocation:      "gpsLocation",
	DriverMonitoring: "driverMonitoringState",
	DriverState:      "driverStateV2",
	LongitudinalPlan: "longitudinalPlan",
	NavInstruction:   "navInstruction",
}

// String returns the wire name of the channel.
func (c Channel) String() string {
	if c < 0 || c >= numChannels {
		return "unknown"
	}
	return channelNames[c]
}

// Channels lists every channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, numChannels)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// ParseChannel maps a wire name back to a Channel.
func ParseChannel(name string) (Channel, bool) {
	for i, n := range channelNames {
		if n == name {
			return Channel(i), true
		}
	}
	return 0, false
}

// Header carries the UI frame at which a channel was last received.
type Header struct {
	RecvFrame uint64 `json:"-"`
}

// Snapshot is one consistent view of every channel.
type Snapshot struct {
	// Frame is the UI frame counter at the time the snapshot was taken.
	Frame uint64

	Car              Car
	Controls         Controls
	Radar            Radar
	Model            Model
	Plan             Plan
	Device           Device
	GPS              GPS
	DriverMonitoring DriverMonitoringState
	Driver           Driver
	Longitudinal     Longitudinal
	Nav              Nav
}

// LastReceiveFrame returns the frame at which ch was last updated.
func (s *Snapshot) LastReceiveFrame(ch Channel) uint64 {
	switch ch {
	case CarState:
		return s.Car.RecvFrame
	case ControlsState:
		return s.Controls.RecvFrame
	case RadarState:
		return s.Radar.RecvFrame
	case ModelV2:
		return s.Model.RecvFrame
	case UIPlan:
		return s.Plan.RecvFrame
	case DeviceState:
		return s.Device.RecvFrame
	case GPSLocation:
		return s.GPS.RecvFrame
	case DriverMonitoring:
		return s.DriverMonitoring.RecvFrame
	case DriverState:
		return s.Driver.RecvFrame
	case LongitudinalPlan:
		return s.Longitudinal.RecvFrame
	case NavInstruction:
		return s.Nav.RecvFrame
	}
	return 0
}

// header returns a pointer to the channel's header for stamping.
func (s *Snapshot) header(ch Channel) *Header {
	switch ch {
	case CarState:
		return &s.Car.Header
	case ControlsState:
		return &s.Controls.Header
	case RadarState:
		return &s.Radar.Header
	case ModelV2:
		return &s.Model.Header
	case UIPlan:
		return &s.Plan.Header
	case DeviceState:
		return &s.Device.Header
	case GPSLocation:
		return &s.GPS.Header
	case DriverMonitoring:
		return &s.DriverMonitoring.Header
	case DriverState:
		return &s.Driver.Header
	case LongitudinalPlan:
		return &s.Longitudinal.Header
	case NavInstruction:
		return &s.Nav.Header
	}
	return nil
}

// Stamp marks ch as received at frame. Unknown channels are ignored.
func (s *Snapshot) Stamp(ch Channel, frame uint64) {
	if h := s.header(ch); h != nil {
		h.RecvFrame = frame
	}
}

// Clone returns a deep copy. Slices are copied so producers can mutate the
// clone without touching a snapshot a reader may hold.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Model.LaneLines = clonePolys(s.Model.LaneLines)
	c.Model.LaneLineProbs = append([]float64(nil), s.Model.LaneLineProbs...)
	c.Model.RoadEdges = clonePolys(s.Model.RoadEdges)
	c.Model.RoadEdgeStds = append([]float64(nil), s.Model.RoadEdgeStds...)
	c.Model.Path = append([]geom.Point(nil), s.Model.Path...)
	c.Plan.Accel = append([]float64(nil), s.Plan.Accel...)
	return &c
}

func clonePolys(in [][]geom.Point) [][]geom.Point {
	if in == nil {
		return nil
	}
	out := make([][]geom.Point, len(in))
	for i, p := range in {
		out[i] = append([]geom.Point(nil), p...)
	}
	return out
}

// Car is vehicle state from the car interface.
type Car struct {
	Header
	VEgo             float64    `json:"vEgo"`
	AEgo             float64    `json:"aEgo"`
	SteeringAngleDeg float64    `json:"steeringAngleDeg"`
	LeftBlinker      bool       `json:"leftBlinker"`
	RightBlinker     bool       `json:"rightBlinker"`
	CruiseAvailable  bool       `json:"cruiseAvailable"`
	TirePressureKPa  [4]float64 `json:"tirePressureKPa"`
}

// AlertStatus is the severity of an onroad alert.
type AlertStatus int

const (
	AlertNormal AlertStatus = iota
	AlertUserPrompt
	AlertCritical
)

// AlertSize is the banner size requested by controls.
type AlertSize int

const (
	AlertNone AlertSize = iota
	AlertSmall
	AlertMid
	AlertFull
)

// Controls is the control-loop state.
type Controls struct {
	Header
	Enabled          bool        `json:"enabled"`
	ExperimentalMode bool        `json:"experimentalMode"`
	VCruiseKph       float64     `json:"vCruise"`
	AlertText1       string      `json:"alertText1"`
	AlertText2       string      `json:"alertText2"`
	AlertSize        AlertSize   `json:"alertSize"`
	AlertStatus      AlertStatus `json:"alertStatus"`
}

// Lead is one fused lead detection.
type Lead struct {
	Status bool    `json:"status"`
	Radar  bool    `json:"radar"`
	DRel   float64 `json:"dRel"`
	VRel   float64 `json:"vRel"`
}

// Radar holds the primary lead from radar fusion.
type Radar struct {
	Header
	LeadOne Lead `json:"leadOne"`
}

// Model is the screen-projected vision model output. Polygons are already
// in view coordinates.
type Model struct {
	Header
	LaneLines     [][]geom.Point `json:"laneLines"`
	LaneLineProbs []float64      `json:"laneLineProbs"`
	RoadEdges     [][]geom.Point `json:"roadEdges"`
	RoadEdgeStds  []float64      `json:"roadEdgeStds"`
	// Path is the corridor polygon: right boundary near to far, then left
	// boundary far to near.
	Path []geom.Point `json:"path"`
	// LeadScreen is the projected position of the primary lead.
	LeadScreen geom.Point `json:"leadScreen"`
	// LeadProb and LeadDist come from the vision lead head.
	LeadProb float64 `json:"leadProb"`
	LeadDist float64 `json:"leadDist"`
}

// Plan carries the UI plan, including predicted acceleration per path point.
type Plan struct {
	Header
	Accel []float64 `json:"accel"`
}

// ThermalStatus is the device thermal band.
type ThermalStatus int

const (
	ThermalGreen ThermalStatus = iota
	ThermalYellow
	ThermalRed
	ThermalDanger
)

// Device is device telemetry.
type Device struct {
	Header
	Started          bool          `json:"started"`
	CPUTempC         float64       `json:"cpuTempC"`
	ThermalStatus    ThermalStatus `json:"thermalStatus"`
	FreeSpacePercent float64       `json:"freeSpacePercent"`
}

// GPS is the location fix quality.
type GPS struct {
	Header
	HasFix    bool    `json:"hasFix"`
	AccuracyM float64 `json:"accuracy"`
}

// DriverMonitoringState is the driver-monitoring policy output.
type DriverMonitoringState struct {
	Header
	IsActiveMode bool `json:"isActiveMode"`
	IsRHD        bool `json:"isRHD"`
	FaceDetected bool `json:"faceDetected"`
}

// Driver is the raw driver-state model output for the driver's seat.
type Driver struct {
	Header
	// FaceOrientation is pitch, yaw, roll in radians.
	FaceOrientation [3]float64 `json:"faceOrientation"`
	// FacePosition is the normalized face offset in the camera frame.
	FacePosition [2]float64 `json:"facePosition"`
}

// Longitudinal carries speed-limit advisories from the planner. Each limit
// comes with the distance left until the enforced zone, in metres.
type Longitudinal struct {
	Header
	CameraSpeedLimit         float64 `json:"cameraSpeedLimit"`
	CameraSpeedLimitLeftDist float64 `json:"cameraSpeedLimitLeftDist"`
	SectionSpeedLimit        float64 `json:"sectionSpeedLimit"`
	SectionLeftDist          float64 `json:"sectionLeftDist"`
}

// Nav is the navigation device's advisory.
type Nav struct {
	Header
	SpeedLimit float64 `json:"speedLimit"`
	// Dist is the distance to the next limit change in metres.
	Dist float64 `json:"dist"`
}
