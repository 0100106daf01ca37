package log

import (
	stdlog "log"
	"log/slog"
	"os"
)

// ToStdLogger adapts l to a *log.Logger, for libraries that accept only
// the standard library's logger (e.g. Pebble's diagnostics hooks).
func ToStdLogger(l Logger) *stdlog.Logger {
	base, ok := l.(*BaseLogger)
	if !ok {
		return stdlog.New(os.Stderr, "", 0)
	}
	return slog.NewLogLogger(newBridgeHandler(base), slog.LevelInfo)
}

// RedirectStdLog replaces the standard library's default logger output
// with one that routes through l, and returns a function that restores
// the previous output.
func RedirectStdLog(l Logger) func() {
	prev := stdlog.Writer()
	stdlog.SetOutput(ToStdLogger(l).Writer())
	return func() { stdlog.SetOutput(prev) }
}
