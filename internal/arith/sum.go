// Package arith holds the arithmetic behind the exported sum entry points.
package arith

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// sink serializes writes so each diagnostic line lands whole, whatever the
// writer.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Write errors are dropped; the sum itself cannot fail.
	fmt.Fprintf(s.w, format, args...)
}

var output atomic.Pointer[sink]

func init() {
	output.Store(&sink{w: os.Stdout})
}

// SetOutput redirects the diagnostic line written by Sum and returns the
// previous destination. A nil writer restores os.Stdout. The writer need not
// be safe for concurrent use.
func SetOutput(w io.Writer) io.Writer {
	if w == nil {
		w = os.Stdout
	}
	return output.Swap(&sink{w: w}).w
}

// Sum returns a + b modulo 2^bits.UintSize.
// Every call writes one diagnostic line naming both operands.
func Sum(a, b uint) uint {
	output.Load().printf("Hello from go %d + %d\n", a, b)
	return a + b
}
