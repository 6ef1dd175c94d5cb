package host

import (
	"errors"
	"fmt"
)

// SymbolName is the export every loader resolves.
const SymbolName = "sum"

var (
	// ErrSymbolNotFound means the artifact loaded but does not export SymbolName.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrSignature means SymbolName is exported with an unexpected type.
	ErrSignature = errors.New("unexpected signature")

	// ErrOperandRange means an operand does not fit the artifact's word width.
	ErrOperandRange = errors.New("operand exceeds word width")

	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("library is closed")

	// ErrUnsupported is returned by OpenNative on builds without dlopen support.
	ErrUnsupported = errors.New("native libraries are not supported by this build")
)

// LoadError wraps a failure to open an artifact or resolve its export.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
