// Package blink drives the turn-signal chevron sweep and the fade of the
// driver-monitoring icon. State is owned by the caller and advanced once
// per frame.
package blink

import "math"

// State is the phase of a chevron sweep.
type State int

const (
	Idle State = iota
	Pulsing
	Cooldown
)

func (s State) String() string {
	switch s {
	case Pulsing:
		return "pulsing"
	case Cooldown:
		return "cooldown"
	}
	return "idle"
}

// Config sets the sweep timing in frames.
type Config struct {
	Chevrons       int
	FramesPerPulse int
	CooldownFrames int
}

// DefaultConfig is tuned for a 20 Hz UI: an 8-chevron sweep advancing
// every frame, then a quarter-second pause.
func DefaultConfig() Config {
	return Config{Chevrons: 8, FramesPerPulse: 1, CooldownFrames: 5}
}

func (c Config) normalized() Config {
	if c.Chevrons < 1 {
		c.Chevrons = 1
	}
	if c.FramesPerPulse < 1 {
		c.FramesPerPulse = 1
	}
	if c.CooldownFrames < 0 {
		c.CooldownFrames = 0
	}
	return c
}

// Machine is the sweep state for one direction.
type Machine struct {
	cfg      Config
	state    State
	index    int
	frames   int // frames spent on the current index
	cooldown int
}

// NewMachine returns an idle machine.
func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg.normalized()}
}

// Update advances the machine by one frame given the signal flag.
func (m *Machine) Update(active bool) {
	if !active {
		m.reset()
		return
	}
	switch m.state {
	case Idle:
		m.state = Pulsing
		m.index = 0
		m.frames = 0
	case Pulsing:
		m.frames++
		if m.frames < m.cfg.FramesPerPulse {
			return
		}
		m.frames = 0
		if m.index < m.cfg.Chevrons-1 {
			m.index++
			return
		}
		m.state = Cooldown
		m.index = 0
		m.cooldown = m.cfg.CooldownFrames
		if m.cooldown == 0 {
			m.restart()
		}
	case Cooldown:
		if m.cooldown > 0 {
			m.cooldown--
		}
		if m.cooldown == 0 {
			m.restart()
		}
	}
}

func (m *Machine) restart() {
	m.state = Pulsing
	m.index = 0
	m.frames = 0
	m.cooldown = 0
}

func (m *Machine) reset() {
	m.state = Idle
	m.index = 0
	m.frames = 0
	m.cooldown = 0
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Index returns the lit chevron, always in [0, Chevrons-1]. It rests at 0
// outside Pulsing.
func (m *Machine) Index() int { return m.index }

// CooldownRemaining returns the frames left in the pause.
func (m *Machine) CooldownRemaining() int { return m.cooldown }

// Alphas returns the opacity of every chevron: base at the lit index and
// base/(2*|index-i|) elsewhere. All zero unless pulsing; the pause between
// sweeps draws nothing.
func (m *Machine) Alphas(base float64) []float64 {
	out := make([]float64, m.cfg.Chevrons)
	if m.state != Pulsing {
		return out
	}
	for i := range out {
		if i == m.index {
			out[i] = base
			continue
		}
		out[i] = base / (2 * math.Abs(float64(m.index-i)))
	}
	return out
}

// Scales returns the size factor of every chevron, N/(i+N): the first is
// full size and each one further out is drawn smaller.
func (m *Machine) Scales() []float64 {
	n := float64(m.cfg.Chevrons)
	out := make([]float64, m.cfg.Chevrons)
	for i := range out {
		out[i] = n / (float64(i) + n)
	}
	return out
}

// Pair holds the left and right sweeps.
type Pair struct {
	Left  *Machine
	Right *Machine
}

// NewPair returns two idle machines sharing cfg.
func NewPair(cfg Config) Pair {
	return Pair{Left: NewMachine(cfg), Right: NewMachine(cfg)}
}

// Update advances both directions.
func (p Pair) Update(left, right bool) {
	p.Left.Update(left)
	p.Right.Update(right)
}
