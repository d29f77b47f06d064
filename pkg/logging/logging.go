package logging

import (
	"github.com/go-logr/logr"
)

// Verbosity levels passed to logr.Logger.V(). Lower is more important.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger creates a new Logger instance with the given configuration
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a Logger that discards everything.
func DefaultLogger() *Logger {
	return &Logger{log: logr.Discard()}
}

// Logger is a struct that wraps the logr.Logger interface.
type Logger struct {
	log logr.Logger
}

// Log methods (minimizing footprint in the rest of the library)
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(DEBUG).Info(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(TRACE).Info(msg, keysAndValues...)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}
