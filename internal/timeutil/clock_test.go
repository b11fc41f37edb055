package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	if d := clock.Since(past); d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestRealClock_NewTicker(t *testing.T) {
	clock := RealClock{}
	ticker := clock.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
		// Ticker fired as expected
	case <-time.After(time.Second):
		t.Error("ticker did not fire")
	}
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(fixedTime)

	if now := clock.Now(); !now.Equal(fixedTime) {
		t.Errorf("got %v, want %v", now, fixedTime)
	}
	clock.Advance(time.Minute)
	if d := clock.Since(fixedTime); d != time.Minute {
		t.Errorf("Since() = %v, want 1m", d)
	}
}

func TestMockClock_After(t *testing.T) {
	clock := NewMockClock(time.Time{})
	ch := clock.After(100 * time.Millisecond)

	clock.Advance(50 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("After fired early")
	default:
	}

	clock.Advance(50 * time.Millisecond)
	select {
	case <-ch:
	default:
		t.Fatal("After did not fire at deadline")
	}
}

func TestMockTicker(t *testing.T) {
	clock := NewMockClock(time.Time{})
	tk := clock.NewTicker(50 * time.Millisecond)
	if clock.Tickers() != 1 {
		t.Fatalf("Tickers() = %d, want 1", clock.Tickers())
	}

	clock.Advance(49 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatal("ticked early")
	default:
	}

	clock.Advance(time.Millisecond)
	select {
	case <-tk.C():
	default:
		t.Fatal("no tick at interval")
	}

	// Unread ticks are dropped, not queued.
	clock.Advance(50 * time.Millisecond)
	clock.Advance(50 * time.Millisecond)
	<-tk.C()
	select {
	case <-tk.C():
		t.Fatal("ticks queued for slow reader")
	default:
	}

	tk.Stop()
	clock.Advance(time.Second)
	select {
	case <-tk.C():
		t.Fatal("stopped ticker fired")
	default:
	}

	tk.Reset(10 * time.Millisecond)
	clock.Advance(10 * time.Millisecond)
	select {
	case <-tk.C():
	default:
		t.Fatal("reset ticker did not fire")
	}
}

func TestMockTicker_Trigger(t *testing.T) {
	clock := NewMockClock(time.Time{})
	tk := clock.NewTicker(time.Hour).(*MockTicker)
	at := time.Unix(42, 0)
	tk.Trigger(at)
	if got := <-tk.C(); !got.Equal(at) {
		t.Errorf("Trigger delivered %v, want %v", got, at)
	}
}
