package hud

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/banshee-data/velocity.hud/internal/monitoring"
	"github.com/banshee-data/velocity.hud/internal/overlay"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
	"github.com/banshee-data/velocity.hud/internal/timeutil"
)

// Sink receives every rendered bundle. Publish is called on the render
// goroutine and must not block.
type Sink interface {
	Publish(ctx context.Context, b *overlay.Bundle) error
}

// SessionObserver is implemented by sinks that track session boundaries.
type SessionObserver interface {
	SessionStarted(ctx context.Context, info SessionInfo) error
	SessionEnded(ctx context.Context, info SessionInfo) error
}

// SessionInfo describes a session boundary.
type SessionInfo struct {
	ID         string
	StartFrame uint64
	StartedAt  time.Time
	EndFrame   uint64 // zero until the session ends
	EndedAt    time.Time
}

// Stats is a point-in-time view of the runner.
type Stats struct {
	Frames    uint64  `json:"frames"`
	Rendered  uint64  `json:"rendered"`
	Skipped   uint64  `json:"skipped"`
	Sessions  uint64  `json:"sessions"`
	SessionID string  `json:"session_id,omitempty"`
	FPS       float64 `json:"fps"`
}

// Runner ticks the render loop: one Store.Advance and one snapshot per
// frame, with a session opened while the device reports started.
type Runner struct {
	store    *snapshot.Store
	clock    timeutil.Clock
	settings Settings
	interval time.Duration

	// CameraReady reports whether road imagery is available. Nil means
	// always ready.
	CameraReady func() bool

	sinks []Sink

	session  *Session
	info     SessionInfo
	lastTick time.Time

	frames, rendered, skipped, sessions atomic.Uint64

	mu      sync.Mutex // guards the fields read by Stats
	current string
	fps     float64
}

// NewRunner returns a runner ticking every interval on clock.
func NewRunner(store *snapshot.Store, clock timeutil.Clock, st Settings, interval time.Duration) *Runner {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Runner{store: store, clock: clock, settings: st, interval: interval}
}

// AddSink registers s. Call before Run.
func (r *Runner) AddSink(s Sink) {
	r.sinks = append(r.sinks, s)
}

// Run ticks until ctx is done, then ends any open session.
func (r *Runner) Run(ctx context.Context) error {
	t := r.clock.NewTicker(r.interval)
	defer t.Stop()
	monitoring.Logf("hud: render loop started at %v per frame", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.endSession(context.WithoutCancel(ctx), r.store.Frame())
			monitoring.Logf("hud: render loop stopped after %d frames", r.frames.Load())
			return nil
		case <-t.C():
			r.Step(ctx)
		}
	}
}

// Step renders one frame. Run calls it on every tick; tests may call it
// directly.
func (r *Runner) Step(ctx context.Context) {
	snap := r.store.Advance()
	r.frames.Add(1)

	now := r.clock.Now()
	started := snap.Device.Started
	switch {
	case started && r.session == nil:
		r.startSession(ctx, snap, now)
	case !started && r.session != nil:
		r.endSession(ctx, snap.Frame)
	}
	if r.session == nil {
		r.lastTick = time.Time{}
		return
	}

	if !r.lastTick.IsZero() {
		r.session.ObserveInterval(now.Sub(r.lastTick))
	}
	r.lastTick = now

	ready := r.CameraReady == nil || r.CameraReady()
	b, ok := r.session.Frame(snap, ready)
	if !ok {
		r.skipped.Add(1)
		return
	}
	r.rendered.Add(1)

	r.mu.Lock()
	r.fps = r.session.FPS()
	r.mu.Unlock()

	for _, s := range r.sinks {
		if err := s.Publish(ctx, b); err != nil {
			monitoring.Logf("hud: publish frame %d: %v", b.Frame, err)
		}
	}
}

func (r *Runner) startSession(ctx context.Context, snap *snapshot.Snapshot, now time.Time) {
	// Data received after the device reported started belongs to this drive.
	r.session = NewSession(r.settings, snap.Device.RecvFrame)
	r.info = SessionInfo{ID: r.session.ID, StartFrame: r.session.StartFrame(), StartedAt: now}
	r.sessions.Add(1)

	r.mu.Lock()
	r.current = r.session.ID
	r.mu.Unlock()

	monitoring.Logf("hud: session %s started at frame %d", r.info.ID, r.info.StartFrame)
	for _, s := range r.sinks {
		if o, ok := s.(SessionObserver); ok {
			if err := o.SessionStarted(ctx, r.info); err != nil {
				monitoring.Logf("hud: session %s start: %v", r.info.ID, err)
			}
		}
	}
}

func (r *Runner) endSession(ctx context.Context, frame uint64) {
	if r.session == nil {
		return
	}
	info := r.info
	info.EndFrame = frame
	info.EndedAt = r.clock.Now()
	r.session = nil
	r.lastTick = time.Time{}

	r.mu.Lock()
	r.current = ""
	r.fps = 0
	r.mu.Unlock()

	monitoring.Logf("hud: session %s ended at frame %d", info.ID, frame)
	for _, s := range r.sinks {
		if o, ok := s.(SessionObserver); ok {
			if err := o.SessionEnded(ctx, info); err != nil {
				monitoring.Logf("hud: session %s end: %v", info.ID, err)
			}
		}
	}
}

// Stats is safe to call from any goroutine.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Frames:    r.frames.Load(),
		Rendered:  r.rendered.Load(),
		Skipped:   r.skipped.Load(),
		Sessions:  r.sessions.Load(),
		SessionID: r.current,
		FPS:       r.fps,
	}
}
