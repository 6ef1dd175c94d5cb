//go:build cgo && sum

package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogrelay/sumffi/internal/arith"
)

func quiet(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := arith.SetOutput(&buf)
	t.Cleanup(func() { arith.SetOutput(prev) })
	return &buf
}

func TestSum(t *testing.T) {
	quiet(t)

	assert.EqualValues(t, 4, sum(2, 2))
	assert.EqualValues(t, 0, sum(0, 0))
}

func TestSum_ThroughC(t *testing.T) {
	quiet(t)

	tests := []struct {
		name string
		a, b uint
		want uint
	}{
		{"two plus two", 2, 2, 4},
		{"zeros", 0, 0, 0},
		{"largest without overflow", math.MaxUint - 5, 5, math.MaxUint},
		{"wraps at max", math.MaxUint, 1, 0},
		{"wraps past max", math.MaxUint, math.MaxUint, math.MaxUint - 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, callSum(tc.a, tc.b))
		})
	}
}

func TestSum_Diagnostic(t *testing.T) {
	buf := quiet(t)

	callSum(2, 2)
	callSum(math.MaxUint, 1)

	want := fmt.Sprintf("Hello from go 2 + 2\nHello from go %d + 1\n", uint(math.MaxUint))
	assert.Equal(t, want, buf.String())
}

func TestSum_Concurrent(t *testing.T) {
	prev := arith.SetOutput(io.Discard)
	defer arith.SetOutput(prev)

	var wg sync.WaitGroup
	results := make([]uint, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = callSum(uint(i), uint(i))
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, uint(2*i), got)
	}
}
