package monitoring

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	// Test setting a custom logger
	called := false
	customLogger := func(format string, v ...interface{}) {
		called = true
	}

	SetLogger(customLogger)
	Logf("test message")

	if !called {
		t.Error("Custom logger was not called")
	}

	// Now set to nil and verify it doesn't call our logger
	called = false
	SetLogger(nil)
	Logf("test")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Logf("session %s started", "abc")
	out := buf.String()
	if !strings.Contains(out, "session abc started") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "INF") {
		t.Errorf("output %q missing level", out)
	}
}

func TestDebugf_Level(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		_ = SetLevel("info")
		SetOutput(os.Stderr)
	}()

	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Debugf("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("debug output missing: %q", buf.String())
	}
	if got := Logger().GetLevel().String(); got != "debug" {
		t.Errorf("Logger level = %q, want debug", got)
	}
}

func TestSetLevel_Invalid(t *testing.T) {
	if err := SetLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
