//go:build wasip1

package main

// A wasip1 reactor still needs a main; the host calls _initialize instead.
func main() {}
