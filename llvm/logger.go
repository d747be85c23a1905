package llvm

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/llvm-runtime/resource"
)

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
	debug    bool
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the package logger and enables lifecycle debug output.
// Safe to call at any time, from any goroutine; a nil logger restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		logger = zap.NewNop()
		debug = false
		return
	}
	logger = l
	debug = true
}

// debugf is a no-op debug helper unless a logger is installed.
func debugf(format string, args ...any) {
	loggerMu.RLock()
	enabled, l := debug, logger
	loggerMu.RUnlock()
	if enabled {
		l.Sugar().Debugf(format, args...)
	}
}

// lifecycleLogger mirrors registry events into the package logger. Every
// context subscribes one, so resource churn is visible at debug level.
type lifecycleLogger struct{}

func (lifecycleLogger) OnResourceEvent(e resource.Event) {
	switch e.Type {
	case resource.EventRegistered:
		debugf("resource registered: handle=%d %T", e.Handle, e.Value)
	case resource.EventDropped:
		debugf("resource dropped: handle=%d %T", e.Handle, e.Value)
	case resource.EventReleased:
		debugf("resource released (ownership transferred): handle=%d %T", e.Handle, e.Value)
	}
}
