// Package geom holds the screen-space primitives shared by the overlay
// derivation packages.
package geom

import "math"

// Point is a pixel coordinate. Y grows downward from the top of the view.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp bounds v to [lo, hi]. If lo > hi, lo wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Lerp blends a to b by t without clamping t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
