package geom

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		v, lo, hi, ok float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"inverted bounds", 5, 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.ok {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.ok)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0.95, 0.62, 1); got != 0.62 {
		t.Errorf("Lerp end = %v", got)
	}
}
