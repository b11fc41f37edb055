// Package filter provides the first-order low-pass filter used to steady
// noisy per-frame signals such as the frame rate and ego acceleration.
package filter

import "math"

// FirstOrder is an exponential smoothing filter with a fixed sample period.
// The zero value passes samples through unchanged.
type FirstOrder struct {
	value float64
	alpha float64
	tau   float64
	dt    float64
}

// New returns a filter seeded at initial with time constant tau and sample
// period dt, both in seconds. dt must be non-negative. A non-positive tau
// disables smoothing.
func New(initial, tau, dt float64) *FirstOrder {
	f := &FirstOrder{value: initial}
	f.SetTimeConstant(tau, dt)
	return f
}

// SetTimeConstant updates tau and dt, keeping the current value.
func (f *FirstOrder) SetTimeConstant(tau, dt float64) {
	f.tau, f.dt = tau, dt
	if tau <= 0 {
		f.alpha = 1
		return
	}
	f.alpha = 1 - math.Exp(-dt/tau)
}

// Update folds raw into the smoothed value and returns it. Non-finite
// samples are dropped so the output stays finite.
func (f *FirstOrder) Update(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return f.value
	}
	alpha := f.alpha
	if f.tau <= 0 {
		alpha = 1
	}
	f.value += (raw - f.value) * alpha
	return f.value
}

// Value returns the current smoothed value.
func (f *FirstOrder) Value() float64 {
	return f.value
}

// Reset forces the smoothed value to v. Only called at session start.
func (f *FirstOrder) Reset(v float64) {
	f.value = v
}
