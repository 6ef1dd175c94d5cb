package cmd

import (
	"errors"
	"fmt"
	"strconv"
)

// SumFunc is the Go view of the exported sum entry point.
type SumFunc func(a, b uint) uint

// ErrExportDisabled is returned when the binary was built without -tags sum.
var ErrExportDisabled = errors.New("sum export not compiled in; rebuild with -tags sum")

var exported SumFunc

// SetExport registers the in-process export. It is called from an init
// function that only exists in builds with the sum tag.
func SetExport(fn SumFunc) {
	exported = fn
}

func exportedSum() (SumFunc, error) {
	if exported == nil {
		return nil, ErrExportDisabled
	}
	return exported, nil
}

func parseOperands(args []string, bitSize int) (uint64, uint64, error) {
	a, err := strconv.ParseUint(args[0], 0, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid operand %q: %w", args[0], err)
	}
	b, err := strconv.ParseUint(args[1], 0, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid operand %q: %w", args[1], err)
	}
	return a, b, nil
}
