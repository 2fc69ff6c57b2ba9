package glslext

import (
	"context"
	"fmt"
	"log/slog"
)

// Diagnostic is a non-fatal message tied to a source line.
type Diagnostic struct {
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: warning: %s", d.File, d.Line, d.Message)
}

// Sink receives diagnostics produced while processing.
type Sink interface {
	Warn(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Warn(d Diagnostic) { f(d) }

// DiagnosticList collects diagnostics in the order they are reported.
// It does no locking; give each goroutine its own list.
type DiagnosticList []Diagnostic

func (l *DiagnosticList) Warn(d Diagnostic) { *l = append(*l, d) }

// LogSink reports diagnostics as warnings on a slog logger. A nil Logger
// means the package logger returned by [Logger], or [slog.Default] while
// the package logger has warnings disabled, so warnings are never dropped.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Warn(d Diagnostic) {
	l := s.Logger
	if l == nil {
		l = Logger()
		if !l.Enabled(context.Background(), slog.LevelWarn) {
			l = slog.Default()
		}
	}
	l.Warn(d.Message, "file", d.File, "line", d.Line)
}
