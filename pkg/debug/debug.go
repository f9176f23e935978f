// Package debug provides opt-in diagnostic logging for gv.
//
// The browser owns stdout, so nothing may log there while the TUI runs;
// debug output goes to stderr, and only when GUILDVIEW_DEBUG is set:
//
//	GUILDVIEW_DEBUG=1 gv --data guild.json 2>gv-debug.log
//
// When disabled (default), every function here is a no-op.
package debug

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	enabled = os.Getenv("GUILDVIEW_DEBUG") != ""

	once  sync.Once
	sugar *zap.SugaredLogger
)

func logger() *zap.SugaredLogger {
	once.Do(func() {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			zapcore.DebugLevel,
		)
		sugar = zap.New(core).Sugar()
	})
	return sugar
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
}

// Log writes a printf-style debug line.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger().Debugf(format, args...)
}

// LogErr writes a debug line for a non-nil error. Nil errors are silent,
// so call sites don't need their own guard.
func LogErr(context string, err error) {
	if !enabled || err == nil {
		return
	}
	logger().Debugw(context, zap.Error(err))
}

// LogTiming writes a timing line.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger().Debugw("timing", "op", name, "took", d)
}
