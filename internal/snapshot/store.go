package snapshot

import (
	"sync"
	"sync/atomic"
)

// Store publishes snapshots with last-value-wins semantics. Readers get an
// immutable handle from Load; writers go through Apply and Advance, which
// copy, mutate and swap so a reader never sees a half-written frame.
type Store struct {
	mu    sync.Mutex // serializes writers
	frame uint64
	cur   atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty snapshot at frame 0.
func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&Snapshot{})
	return s
}

// Load returns the current snapshot. Callers must treat it as read-only.
func (s *Store) Load() *Snapshot {
	return s.cur.Load()
}

// Advance increments the UI frame counter and returns the snapshot taken at
// the new frame. The render loop calls it once per tick.
func (s *Store) Advance() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame++
	next := s.cur.Load().Clone()
	next.Frame = s.frame
	s.cur.Store(next)
	return next
}

// Apply mutates a copy of the current snapshot with fn, stamps ch as
// received at the current frame, and publishes the copy.
func (s *Store) Apply(ch Channel, fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur.Load().Clone()
	fn(next)
	next.Frame = s.frame
	next.Stamp(ch, s.frame)
	s.cur.Store(next)
}

// Frame returns the current UI frame counter.
func (s *Store) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}
