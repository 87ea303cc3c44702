// Package sklogimpl contains the interface for how logging is done.
package sklogimpl

import (
	"sync/atomic"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	}
	return "Unknown"
}

// Logger is the interface that any logging backend must implement.
type Logger interface {
	// Log sends the message to the backend. depth is the number of stack
	// frames to skip when reporting the call site. If format is the empty
	// string then args are formatted as fmt.Sprint would, otherwise as
	// fmt.Sprintf would. A severity of Fatal must exit the process after
	// the message is flushed.
	Log(depth int, severity Severity, format string, args ...interface{})
}

var logger atomic.Value

// SetLogger changes the package to use the given Logger.
func SetLogger(l Logger) {
	logger.Store(&l)
}

// Log records one log line to the currently configured Logger. It is a
// no-op until SetLogger has been called.
func Log(depth int, severity Severity, format string, args ...interface{}) {
	l, ok := logger.Load().(*Logger)
	if !ok || l == nil {
		return
	}
	(*l).Log(depth+1, severity, format, args...)
}
