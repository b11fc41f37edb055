// Package feed adapts the upstream state producer to the snapshot store.
// Each input line is a JSON envelope naming one channel:
//
//	{"channel": "carState", "data": {"vEgo": 24.6, ...}}
//
// Channel names exist only here; everything downstream uses the typed
// snapshot.
package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/banshee-data/velocity.hud/internal/monitoring"
	"github.com/banshee-data/velocity.hud/internal/snapshot"
)

// ErrUnknownChannel is returned for an envelope whose channel is not known.
var ErrUnknownChannel = errors.New("feed: unknown channel")

// maxLine bounds one envelope. Model polygons make lines large.
const maxLine = 4 << 20

// Envelope is one wire message.
type Envelope struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// Stats counts lines seen by a Feed.
type Stats struct {
	Lines   uint64 `json:"lines"`
	Applied uint64 `json:"applied"`
	Unknown uint64 `json:"unknown"`
	Invalid uint64 `json:"invalid"`
}

// Feed applies envelopes to a store.
type Feed struct {
	store *snapshot.Store

	lines, applied, unknown, invalid atomic.Uint64
}

// New returns a feed writing to store.
func New(store *snapshot.Store) *Feed {
	return &Feed{store: store}
}

// ApplyLine decodes one envelope line and applies it.
func (f *Feed) ApplyLine(line []byte) error {
	f.lines.Add(1)
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		f.invalid.Add(1)
		return fmt.Errorf("decode envelope: %w", err)
	}
	return f.apply(env)
}

// ApplyEnvelope applies an already decoded envelope.
func (f *Feed) ApplyEnvelope(env Envelope) error {
	f.lines.Add(1)
	return f.apply(env)
}

func (f *Feed) apply(env Envelope) error {
	ch, ok := snapshot.ParseChannel(env.Channel)
	if !ok {
		f.unknown.Add(1)
		return fmt.Errorf("%w %q", ErrUnknownChannel, env.Channel)
	}
	set, err := decodeChannel(ch, env.Data)
	if err != nil {
		f.invalid.Add(1)
		return fmt.Errorf("decode %s: %w", ch, err)
	}
	f.store.Apply(ch, set)
	f.applied.Add(1)
	return nil
}

// decodeChannel decodes data fully before the store is touched, so a bad
// message never publishes a half-filled channel.
func decodeChannel(ch snapshot.Channel, data json.RawMessage) (func(*snapshot.Snapshot), error) {
	switch ch {
	case snapshot.CarState:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Car) { s.Car = v })
	case snapshot.ControlsState:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Controls) { s.Controls = v })
	case snapshot.RadarState:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Radar) { s.Radar = v })
	case snapshot.ModelV2:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Model) { s.Model = v })
	case snapshot.UIPlan:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Plan) { s.Plan = v })
	case snapshot.DeviceState:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Device) { s.Device = v })
	case snapshot.GPSLocation:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.GPS) { s.GPS = v })
	case snapshot.DriverMonitoring:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.DriverMonitoringState) { s.DriverMonitoring = v })
	case snapshot.DriverState:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Driver) { s.Driver = v })
	case snapshot.LongitudinalPlan:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Longitudinal) { s.Longitudinal = v })
	case snapshot.NavInstruction:
		return setter(data, func(s *snapshot.Snapshot, v snapshot.Nav) { s.Nav = v })
	}
	return nil, fmt.Errorf("%w %d", ErrUnknownChannel, ch)
}

func setter[T any](data json.RawMessage, set func(*snapshot.Snapshot, T)) (func(*snapshot.Snapshot), error) {
	var v T
	if len(data) > 0 {
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	}
	return func(s *snapshot.Snapshot) { set(s, v) }, nil
}

// Stats returns the counters.
func (f *Feed) Stats() Stats {
	return Stats{
		Lines:   f.lines.Load(),
		Applied: f.applied.Load(),
		Unknown: f.unknown.Load(),
		Invalid: f.invalid.Load(),
	}
}

// Monitor reads envelope lines from r until EOF or ctx is done. Bad lines
// are logged and skipped. It returns nil at EOF.
func (f *Feed) Monitor(ctx context.Context, r io.Reader) error {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLine)

	lineChan := make(chan []byte)
	scanErrChan := make(chan error, 1)

	// The blocking Scan runs in its own goroutine so cancellation is not
	// held up by a quiet reader.
	go func() {
		defer close(lineChan)
		for scan.Scan() {
			line := append([]byte(nil), scan.Bytes()...)
			select {
			case lineChan <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			scanErrChan <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lineChan:
			if !ok {
				select {
				case err := <-scanErrChan:
					return fmt.Errorf("read feed: %w", err)
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			if err := f.ApplyLine(line); err != nil {
				monitoring.Logf("feed: %v", err)
			}
		}
	}
}
