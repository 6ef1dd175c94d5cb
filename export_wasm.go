//go:build wasip1 && sum

package main

import "github.com/analogrelay/sumffi/internal/arith"

// sum is exported as (i64, i64) -> i64; uint is 64 bits on GOARCH=wasm.
//
//go:wasmexport sum
func sum(a, b uint64) uint64 {
	return uint64(arith.Sum(uint(a), uint(b)))
}
