package monitoring

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = newConsole(os.Stderr)
)

func newConsole(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func infof(format string, v ...interface{}) {
	l := current()
	l.Info().Msgf(format, v...)
}

// Logf is the package-level diagnostic logger. It defaults to an info-level
// zerolog console logger but may be replaced by SetLogger. Tests or
// production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = infof

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Debugf logs at debug level through the zerolog backend. It is silent
// unless SetLevel enabled debug output.
func Debugf(format string, v ...interface{}) {
	l := current()
	l.Debug().Msgf(format, v...)
}

// SetLevel sets the backend level from a name such as "debug" or "warn".
func SetLevel(name string) error {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	mu.Lock()
	base = base.Level(lvl)
	mu.Unlock()
	return nil
}

// SetOutput points the zerolog backend at w and restores Logf to it.
func SetOutput(w io.Writer) {
	mu.Lock()
	lvl := base.GetLevel()
	base = newConsole(w).Level(lvl)
	mu.Unlock()
	Logf = infof
}

// Logger returns the backend for callers that want structured fields.
func Logger() zerolog.Logger {
	return current()
}
