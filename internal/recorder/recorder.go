// Package recorder keeps a SQLite log of driving sessions and the bundles
// rendered during them, for replay and offline inspection.
package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/velocity.hud/internal/hud"
	"github.com/banshee-data/velocity.hud/internal/monitoring"
	"github.com/banshee-data/velocity.hud/internal/overlay"
	"github.com/banshee-data/velocity.hud/internal/timeutil"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("recorder: closed")

// Options tunes a Recorder.
type Options struct {
	// Every records one frame in Every. Zero or one records all.
	Every uint64
	// Queue is the number of frames buffered for the writer.
	Queue int
	// Clock stamps recorded frames. Nil means the real clock.
	Clock timeutil.Clock
}

// Recorder writes sessions and frames. Publish hands frames to a single
// writer goroutine and drops them when the queue is full.
type Recorder struct {
	db    *sql.DB
	path  string
	opts  Options
	clock timeutil.Clock

	queue   chan *overlay.Bundle
	closeMu sync.RWMutex
	closed  bool
	done    chan struct{}

	written, dropped, failed atomic.Uint64
}

// Open opens or creates the database at path and applies migrations.
func Open(path string, opts Options) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open recorder db: %w", err)
	}
	// One connection keeps writes serialised and makes ":memory:" work.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if opts.Queue <= 0 {
		opts.Queue = 64
	}
	if opts.Every == 0 {
		opts.Every = 1
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	r := &Recorder{
		db:    db,
		path:  path,
		opts:  opts,
		clock: clock,
		queue: make(chan *overlay.Bundle, opts.Queue),
		done:  make(chan struct{}),
	}
	if err := r.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	go r.writeLoop()
	return r, nil
}

// DB exposes the underlying handle for admin tooling.
func (r *Recorder) DB() *sql.DB { return r.db }

// Close drains queued frames and closes the database.
func (r *Recorder) Close() error {
	r.closeMu.Lock()
	if r.closed {
		r.closeMu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.closeMu.Unlock()

	<-r.done
	return r.db.Close()
}

func (r *Recorder) writeLoop() {
	defer close(r.done)
	for b := range r.queue {
		if err := r.RecordFrame(context.Background(), b); err != nil {
			r.failed.Add(1)
			monitoring.Logf("recorder: frame %d: %v", b.Frame, err)
		}
	}
}

// SessionStarted inserts a session row.
func (r *Recorder) SessionStarted(ctx context.Context, info hud.SessionInfo) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, start_frame, started_at) VALUES (?, ?, ?)`,
		info.ID, info.StartFrame, info.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session %s: %w", info.ID, err)
	}
	return nil
}

// SessionEnded closes a session row.
func (r *Recorder) SessionEnded(ctx context.Context, info hud.SessionInfo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET end_frame = ?, ended_at = ? WHERE session_id = ?`,
		info.EndFrame, info.EndedAt.UTC(), info.ID)
	if err != nil {
		return fmt.Errorf("end session %s: %w", info.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("end session %s: %w", info.ID, sql.ErrNoRows)
	}
	return nil
}

// Publish queues b for writing. It implements hud.Sink.
func (r *Recorder) Publish(_ context.Context, b *overlay.Bundle) error {
	if b == nil || b.Frame%r.opts.Every != 0 {
		return nil
	}
	r.closeMu.RLock()
	defer r.closeMu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	select {
	case r.queue <- b:
	default:
		r.dropped.Add(1)
	}
	return nil
}

// RecordFrame writes b synchronously.
func (r *Recorder) RecordFrame(ctx context.Context, b *overlay.Bundle) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO frames (session_id, frame, polygons, labels, icons, bundle_json, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.SessionID, b.Frame, len(b.Polygons), len(b.Labels), len(b.Icons), string(raw), r.clock.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	r.written.Add(1)
	return nil
}

// FrameCount returns the number of frames recorded for sessionID.
func (r *Recorder) FrameCount(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM frames WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count frames: %w", err)
	}
	return n, nil
}

// LoadFrame reads one recorded bundle back.
func (r *Recorder) LoadFrame(ctx context.Context, sessionID string, frame uint64) (*overlay.Bundle, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT bundle_json FROM frames WHERE session_id = ? AND frame = ?`, sessionID, frame).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load frame %d: %w", frame, err)
	}
	b := &overlay.Bundle{}
	if err := json.Unmarshal([]byte(raw), b); err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", frame, err)
	}
	return b, nil
}

// Session is one recorded drive.
type Session struct {
	ID         string     `json:"session_id"`
	StartFrame uint64     `json:"start_frame"`
	StartedAt  time.Time  `json:"started_at"`
	EndFrame   *uint64    `json:"end_frame,omitempty"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Frames     int        `json:"frames"`
}

// Sessions lists recorded sessions, newest first.
func (r *Recorder) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.session_id, s.start_frame, s.started_at, s.end_frame, s.ended_at,
			(SELECT COUNT(*) FROM frames f WHERE f.session_id = s.session_id)
		FROM sessions s
		ORDER BY s.started_at DESC, s.session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var endFrame sql.NullInt64
		var endedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.StartFrame, &s.StartedAt, &endFrame, &endedAt, &s.Frames); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if endFrame.Valid {
			v := uint64(endFrame.Int64)
			s.EndFrame = &v
		}
		if endedAt.Valid {
			v := endedAt.Time
			s.EndedAt = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats counts writer outcomes.
type Stats struct {
	Written uint64 `json:"written"`
	Dropped uint64 `json:"dropped"`
	Failed  uint64 `json:"failed"`
}

// Stats returns the writer counters.
func (r *Recorder) Stats() Stats {
	return Stats{Written: r.written.Load(), Dropped: r.dropped.Load(), Failed: r.failed.Load()}
}
