// Package diag routes non-fatal diagnostic warnings emitted by the
// transform pipelines. Transforms keep running after a recoverable
// condition (a dropped bound-state candidate, a truncated result set) and
// report it here instead of failing.
package diag

import (
	"fmt"
	"os"
	"sync"
)

// Sink receives formatted warning lines.
type Sink func(msg string)

var (
	mu   sync.Mutex
	sink Sink = stderrSink
)

func stderrSink(msg string) {
	fmt.Fprintln(os.Stderr, "fnft: warning: "+msg)
}

// SetSink replaces the warning destination and returns the previous one.
// A nil sink silences warnings.
func SetSink(s Sink) Sink {
	mu.Lock()
	defer mu.Unlock()
	prev := sink
	sink = s
	return prev
}

// Warnf formats and emits one warning through the current sink.
func Warnf(format string, args ...any) {
	mu.Lock()
	s := sink
	mu.Unlock()
	if s == nil {
		return
	}
	s(fmt.Sprintf(format, args...))
}
