package snapshot

// IsFresh reports whether a channel last received at lastRecv has been
// updated since reference, the frame at which the driving session began.
func IsFresh(lastRecv, reference uint64) bool {
	return lastRecv > reference
}

// Guard gates derived overlays on channel freshness for one session.
type Guard struct {
	Start uint64
}

// Fresh reports whether ch in s was updated after the session started.
func (g Guard) Fresh(s *Snapshot, ch Channel) bool {
	if s == nil {
		return false
	}
	return IsFresh(s.LastReceiveFrame(ch), g.Start)
}

// Age returns how many frames the session has been running at s.
func (g Guard) Age(s *Snapshot) uint64 {
	if s == nil || s.Frame < g.Start {
		return 0
	}
	return s.Frame - g.Start
}
