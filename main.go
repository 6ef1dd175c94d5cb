//go:build !wasip1

package main

import "github.com/analogrelay/sumffi/cmd"

// main runs the CLI when this package is built as an executable. It is never
// called when the package is built with -buildmode=c-shared or c-archive.
func main() {
	cmd.Execute()
}
