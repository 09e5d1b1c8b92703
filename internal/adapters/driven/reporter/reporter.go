// Package reporter implements the diagnostic message sink.
package reporter

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/flamesearch/internal/core/ports/driven"
	"github.com/custodia-labs/flamesearch/internal/logger"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Reporter = (*Reporter)(nil)
	_ driven.Reporter = Func(nil)
)

// Reporter logs captured messages and optionally echoes them to a writer.
type Reporter struct {
	mu    sync.Mutex
	w     io.Writer
	last  string
	count atomic.Int64
}

// New creates a reporter. A nil writer only logs.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// CaptureMessage records a message.
func (r *Reporter) CaptureMessage(msg string) {
	r.count.Add(1)
	logger.Warn("%s", msg)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = msg
	if r.w != nil {
		fmt.Fprintf(r.w, "flamesearch: %s\n", msg)
	}
}

// Count returns the number of captured messages.
func (r *Reporter) Count() int {
	return int(r.count.Load())
}

// Last returns the most recent message, or "" if none.
func (r *Reporter) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Func adapts a function to the Reporter port.
type Func func(msg string)

// CaptureMessage calls f.
func (f Func) CaptureMessage(msg string) {
	if f != nil {
		f(msg)
	}
}
