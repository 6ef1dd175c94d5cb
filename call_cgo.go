//go:build cgo && sum

package main

/*
#include <stddef.h>

size_t sum(size_t a, size_t b);

static inline size_t call_sum(size_t a, size_t b) {
    return sum(a, b);
}
*/
import "C"

import "github.com/analogrelay/sumffi/cmd"

func init() {
	cmd.SetExport(callSum)
}

// callSum goes through the exported C symbol rather than calling the Go
// function directly, so callers exercise the same entry point a host does.
func callSum(a, b uint) uint {
	return uint(C.call_sum(C.size_t(a), C.size_t(b)))
}
