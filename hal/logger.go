package hal

import (
	"fmt"
	"io"
	"sync"
)

type lineLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger writing one line per call to w.
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = io.Discard
	}
	return &lineLogger{w: w}
}

// Discard drops every line.
var Discard Logger = &lineLogger{w: io.Discard}

func (l *lineLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

// Logf formats a line and writes it to l.
func Logf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}
