package blink

import "github.com/banshee-data/velocity.hud/internal/geom"

// Fade is a hysteresis-guarded opacity ramp. Each frame it moves by Step
// toward 0 while active and toward 1 while inactive, so a flapping input
// settles instead of flickering.
type Fade struct {
	Step  float64
	value float64
}

// NewFade returns a fade with the given step, starting fully faded out so
// the icon ramps in rather than appearing at full opacity.
func NewFade(step float64) *Fade {
	return &Fade{Step: step, value: 1}
}

// Update advances the ramp and returns the new value in [0,1].
func (f *Fade) Update(active bool) float64 {
	a := 0.0
	if active {
		a = 1
	}
	f.value = geom.Clamp(f.value+f.Step*(0.5-a), 0, 1)
	return f.value
}

// Value returns the current fade in [0,1]; 0 means fully visible.
func (f *Fade) Value() float64 { return f.value }

// Opacity blends between the active and inactive opacities by the fade.
func (f *Fade) Opacity(active, inactive float64) float64 {
	return geom.Lerp(active, inactive, f.value)
}
