// Package status derives the HUD badges: speed, cruise set speed, speed
// limit, alerts and device telemetry. Every function is total; stale or
// missing inputs produce a hidden badge rather than a zero value.
package status

import (
	"fmt"
	"math"

	"github.com/banshee-data/velocity.hud/internal/geom"
	"github.com/banshee-data/velocity.hud/internal/gradient"
	"github.com/banshee-data/velocity.hud/internal/interp"
	"github.com/banshee-data/velocity.hud/internal/overlay"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
	"github.com/banshee-data/velocity.hud/internal/units"
)

// Placeholder is shown when a value exists but is not set.
const Placeholder = "–"

// Speed is the current vehicle speed.
type Speed struct {
	Visible bool
	Text    string
	Unit    string
}

// SpeedOf formats the ego speed in the display unit.
func SpeedOf(car snapshot.Car, fresh bool, unit string) Speed {
	if !fresh {
		return Speed{}
	}
	v := math.Max(0, units.ConvertSpeed(car.VEgo, unit))
	return Speed{
		Visible: true,
		Text:    fmt.Sprintf("%.0f", v),
		Unit:    units.SpeedLabel(unit),
	}
}

// Cruise is the set-speed box.
type Cruise struct {
	Visible bool
	Text    string
	Engaged bool
	Color   overlay.Color
}

const cruiseUnset = 255.0

// CruiseOf formats the cruise set speed. A set speed outside (0, 255) km/h
// is reported by controls as unset.
func CruiseOf(ctl snapshot.Controls, car snapshot.Car, fresh bool, unit string) Cruise {
	if !fresh {
		return Cruise{}
	}
	c := Cruise{Visible: true, Text: Placeholder, Engaged: ctl.Enabled, Color: overlay.Grey}
	if ctl.Enabled {
		c.Color = overlay.White
	}
	if car.CruiseAvailable && ctl.VCruiseKph > 0 && ctl.VCruiseKph < cruiseUnset {
		c.Text = fmt.Sprintf("%.0f", units.ConvertKPH(ctl.VCruiseKph, unit))
	}
	return c
}

// LimitSource names where a speed limit came from.
type LimitSource int

const (
	LimitNone LimitSource = iota
	LimitCamera
	LimitSection
	LimitNavigation
)

func (s LimitSource) String() string {
	switch s {
	case LimitCamera:
		return "camera"
	case LimitSection:
		return "section"
	case LimitNavigation:
		return "navigation"
	}
	return "none"
}

// SpeedLimit is the advisory limit sign.
type SpeedLimit struct {
	Source LimitSource
	Value  float64 // display units
	Text   string
	// LeftDist is the distance to the limit in metres; DistText is empty
	// when it is not known.
	LeftDist float64
	DistText string
}

// Visible reports whether a limit sign is drawn.
func (l SpeedLimit) Visible() bool { return l.Source != LimitNone }

// SpeedLimitOf picks the limit in fixed precedence: the camera-based limit,
// then the section limit, then the navigation device. Planner limits only
// count while a distance to them remains. Limits are in m/s.
func SpeedLimitOf(lp snapshot.Longitudinal, lpFresh bool, nav snapshot.Nav, navFresh bool, unit string) SpeedLimit {
	var l SpeedLimit
	var mps float64
	switch {
	case lpFresh && lp.CameraSpeedLimit > 0 && lp.CameraSpeedLimitLeftDist > 0:
		l.Source, mps, l.LeftDist = LimitCamera, lp.CameraSpeedLimit, lp.CameraSpeedLimitLeftDist
	case lpFresh && lp.SectionSpeedLimit > 0 && lp.SectionLeftDist > 0:
		l.Source, mps, l.LeftDist = LimitSection, lp.SectionSpeedLimit, lp.SectionLeftDist
	case navFresh && nav.SpeedLimit > 0:
		l.Source, mps, l.LeftDist = LimitNavigation, nav.SpeedLimit, math.Max(0, nav.Dist)
	default:
		return l
	}
	l.Value = math.Round(units.ConvertSpeed(mps, unit))
	l.Text = fmt.Sprintf("%.0f", l.Value)
	if l.LeftDist > 0 {
		l.DistText = units.FormatRemaining(l.LeftDist, unit)
	}
	return l
}

// Thermal colour ramps over CPU temperature in °C. Blue and alpha are
// fixed.
var (
	thermalR = interp.MustTable([]float64{50, 90}, []float64{200, 255})
	thermalG = interp.MustTable([]float64{50, 90}, []float64{255, 200})
)

const (
	thermalB     = 200
	thermalAlpha = 200
)

// Thermal is the device temperature badge.
type Thermal struct {
	Visible bool
	Text    string
	Color   overlay.Color
	Status  snapshot.ThermalStatus
}

// ThermalOf colours the CPU temperature. Readings outside the ramp are
// clamped.
func ThermalOf(dev snapshot.Device, fresh bool) Thermal {
	if !fresh {
		return Thermal{}
	}
	t := dev.CPUTempC
	return Thermal{
		Visible: true,
		Text:    fmt.Sprintf("%.0f°C", t),
		Color:   overlay.RGBA(channel(thermalR.At(t)), channel(thermalG.At(t)), thermalB, thermalAlpha),
		Status:  dev.ThermalStatus,
	}
}

// channel truncates a ramp output to a colour channel.
func channel(v float64) uint8 {
	return uint8(geom.Clamp(math.Floor(v), 0, 255))
}

// Storage is the free-space badge.
type Storage struct {
	Visible bool
	Text    string
	Warning bool
}

const storageLowPercent = 10.0

// StorageOf formats the free-space percentage.
func StorageOf(dev snapshot.Device, fresh bool) Storage {
	if !fresh {
		return Storage{}
	}
	p := geom.Clamp(dev.FreeSpacePercent, 0, 100)
	return Storage{Visible: true, Text: fmt.Sprintf("%.0f%%", p), Warning: p < storageLowPercent}
}

var gpsOpacity = interp.MustTable([]float64{1, 10}, []float64{1.0, 0.3})

// GPSBadge is the location-quality icon.
type GPSBadge struct {
	Visible bool
	Opacity float64
}

// GPSOf hides the icon without a fix and dims it as accuracy degrades.
func GPSOf(g snapshot.GPS, fresh bool) GPSBadge {
	if !fresh || !g.HasFix {
		return GPSBadge{}
	}
	return GPSBadge{Visible: true, Opacity: gpsOpacity.At(g.AccuracyM)}
}

// TPMSConfig bounds a healthy tyre pressure in psi.
type TPMSConfig struct {
	LowPSI  float64
	HighPSI float64
}

// Tire is one wheel's pressure readout.
type Tire struct {
	Visible bool
	Text    string
	Color   overlay.Color
}

// TPMSOf formats the four tyre pressures, front-left first. Non-positive
// readings are treated as missing.
func TPMSOf(car snapshot.Car, fresh bool, cfg TPMSConfig) [4]Tire {
	var out [4]Tire
	if !fresh {
		return out
	}
	for i, kpa := range car.TirePressureKPa {
		if kpa <= 0 {
			continue
		}
		psi := units.PSIFromKPa(kpa)
		c := overlay.White
		switch {
		case psi < cfg.LowPSI:
			c = overlay.Warning
		case psi > cfg.HighPSI:
			c = overlay.Caution
		}
		out[i] = Tire{Visible: true, Text: fmt.Sprintf("%.0f", psi), Color: c}
	}
	return out
}

var accelLevel = interp.MustTable([]float64{-3, 3}, []float64{-1, 1})

// AccelGauge is the longitudinal acceleration bar.
type AccelGauge struct {
	Visible bool
	// Level is in [-1,1]; positive is speeding up.
	Level float64
	Hue   float64
}

// AccelGaugeOf maps a filtered acceleration in m/s² onto the bar, reusing
// the corridor hue ramp.
func AccelGaugeOf(filtered float64, fresh bool) AccelGauge {
	if !fresh {
		return AccelGauge{}
	}
	return AccelGauge{Visible: true, Level: accelLevel.At(filtered), Hue: gradient.AccelHue(filtered)}
}
