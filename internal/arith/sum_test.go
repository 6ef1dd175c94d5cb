package arith

import (
	"bytes"
	"math"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestSum(t *testing.T) {
	captureOutput(t)

	tests := []struct {
		name string
		a, b uint
		want uint
	}{
		{name: "two plus two", a: 2, b: 2, want: 4},
		{name: "zeros", a: 0, b: 0, want: 0},
		{name: "identity", a: 12345, b: 0, want: 12345},
		{name: "max without overflow", a: math.MaxUint - 1, b: 1, want: math.MaxUint},
		{name: "wraps at max", a: math.MaxUint, b: 1, want: 0},
		{name: "wraps past max", a: math.MaxUint, b: math.MaxUint, want: math.MaxUint - 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Sum(tc.a, tc.b))
			require.Equal(t, tc.want, Sum(tc.b, tc.a))
		})
	}
}

func TestSum_Diagnostic(t *testing.T) {
	buf := captureOutput(t)

	Sum(7, 35)

	assert.Equal(t, "Hello from go 7 + 35\n", buf.String())
}

func TestSum_DiagnosticEveryCall(t *testing.T) {
	buf := captureOutput(t)

	for i := uint(0); i < 5; i++ {
		Sum(i, i)
	}
	Sum(0, 0)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Hello from go 0 + 0", lines[0])
	assert.Equal(t, "Hello from go 4 + 4", lines[4])
	assert.Equal(t, "Hello from go 0 + 0", lines[5])
}

func TestSum_Concurrent(t *testing.T) {
	buf := captureOutput(t)

	var wg sync.WaitGroup
	results := make([]uint, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Sum(uint(i), 1)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, uint(i+1), got)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(results))
	for _, line := range lines {
		assert.Regexp(t, `^Hello from go \d+ \+ 1$`, line)
	}
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer

	prev := SetOutput(&first)
	defer SetOutput(prev)

	Sum(1, 2)
	assert.Same(t, &first, SetOutput(&second))
	Sum(3, 4)

	assert.Equal(t, "Hello from go 1 + 2\n", first.String())
	assert.Equal(t, "Hello from go 3 + 4\n", second.String())
}

func TestSetOutput_NilRestoresStdout(t *testing.T) {
	prev := SetOutput(nil)
	defer SetOutput(prev)

	assert.Equal(t, os.Stdout, SetOutput(nil))
}
