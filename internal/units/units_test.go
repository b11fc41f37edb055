package units

import (
	"math"
	"testing"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		units    string
		expected float64
	}{
		{"10 m/s to mph", 10.0, MPH, 22.3694},
		{"10 m/s to kph", 10.0, KPH, 36.0},
		{"10 m/s to mps", 10.0, MPS, 10.0},
		{"unknown units default to mps", 10.0, "unknown", 10.0},
		{"highway speed 31.29 m/s to mph", 31.29, MPH, 70.0}, // ~70 mph
		{"city speed 13.89 m/s to kmph", 13.89, KMPH, 50.004},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedMPS, tt.units)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedMPS, tt.units, result, tt.expected)
			}
		})
	}
}

func TestConvertKPH(t *testing.T) {
	tests := []struct {
		name     string
		kph      float64
		units    string
		expected float64
	}{
		{"set speed in mph", 112.65, MPH, 70.0},
		{"set speed in kph", 100, KPH, 100},
		{"set speed in m/s", 36, MPS, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertKPH(tt.kph, tt.units)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ConvertKPH(%f, %s) = %f, want %f", tt.kph, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mps", MPS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid kph", KPH, true},
		{"invalid unit", "invalid", false},
		{"case sensitive", "MPH", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsValid(tt.unit); result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
	if got := GetValidUnitsString(); got != "mps, mph, kmph, kph" {
		t.Errorf("GetValidUnitsString() = %s", got)
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		unit   string
		want   string
	}{
		{"metric long range", 42.4, KPH, "42 m"},
		{"metric short range", 7.26, KPH, "7.3 m"},
		{"imperial", 30, MPH, "98 ft"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDistance(tt.meters, tt.unit); got != tt.want {
				t.Errorf("FormatDistance(%v, %s) = %q, want %q", tt.meters, tt.unit, got, tt.want)
			}
		})
	}

	remaining := []struct {
		meters float64
		unit   string
		want   string
	}{
		{350.7, KPH, "350m"},
		{999, KPH, "999m"},
		{1340, KPH, "1.3km"},
		{100, MPH, "328ft"},
		{3218.688, MPH, "2.0mi"},
	}
	for _, tt := range remaining {
		if got := FormatRemaining(tt.meters, tt.unit); got != tt.want {
			t.Errorf("FormatRemaining(%v, %s) = %q, want %q", tt.meters, tt.unit, got, tt.want)
		}
	}

	if SpeedLabel(MPH) != "mph" || SpeedLabel(KPH) != "km/h" || SpeedLabel(MPS) != "m/s" {
		t.Error("unexpected speed captions")
	}
	if psi := PSIFromKPa(250); math.Abs(psi-36.26) > 0.01 {
		t.Errorf("PSIFromKPa(250) = %f", psi)
	}
}
