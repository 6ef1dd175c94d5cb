//go:build cgo && sum

package main

/*
#include <stddef.h>
*/
import "C"

import "github.com/analogrelay/sumffi/internal/arith"

// sum is the C-ABI entry point. With -buildmode=c-shared the generated header
// declares it as:
//
//	extern size_t sum(size_t a, size_t b);
//
//export sum
func sum(a, b C.size_t) C.size_t {
	return C.size_t(arith.Sum(uint(a), uint(b)))
}
