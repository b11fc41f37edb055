// Package units converts the SI values carried on the snapshot into the
// units shown on the display.
package units

import "fmt"

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

const (
	msToMPH     = 2.2369362920544
	msToKPH     = 3.6
	metersToFt  = 3.280839895
	metersPerMi = 1609.344
	kpaToPSI    = 0.1450377377
	kphToMPH    = msToMPH / msToKPH
	shortRangeM = 10.0
)

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph"
}

// IsMetric reports whether distances are shown in metres for unit.
func IsMetric(unit string) bool {
	return unit != MPH
}

// ConvertSpeed converts a speed from meters per second to the target units
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedMPS
	case MPH:
		return speedMPS * msToMPH
	case KMPH, KPH:
		return speedMPS * msToKPH
	default:
		return speedMPS
	}
}

// ConvertKPH converts a speed in km/h, as cruise set speeds are reported,
// to the target units.
func ConvertKPH(kph float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return kph * kphToMPH
	case MPS:
		return kph / msToKPH
	default:
		return kph
	}
}

// SpeedLabel returns the unit caption drawn under the speed.
func SpeedLabel(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case MPS:
		return "m/s"
	default:
		return "km/h"
	}
}

// FormatDistance renders a distance in metres for the lead label. Short
// metric ranges keep one decimal.
func FormatDistance(meters float64, unit string) string {
	if !IsMetric(unit) {
		return fmt.Sprintf("%.0f ft", meters*metersToFt)
	}
	if meters < shortRangeM {
		return fmt.Sprintf("%.1f m", meters)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// FormatRemaining renders the distance left to a speed-limit zone: whole
// metres below a kilometre, then kilometres with one decimal. Imperial
// units switch from feet to miles at 1000 ft.
func FormatRemaining(meters float64, unit string) string {
	if !IsMetric(unit) {
		if ft := meters * metersToFt; ft < 1000 {
			return fmt.Sprintf("%dft", int(ft))
		}
		return fmt.Sprintf("%.1fmi", meters/metersPerMi)
	}
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(meters))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// PSIFromKPa converts a tyre pressure.
func PSIFromKPa(kpa float64) float64 {
	return kpa * kpaToPSI
}
