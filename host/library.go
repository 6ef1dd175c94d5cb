package host

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Library is a loaded artifact exporting SymbolName.
type Library interface {
	// Path is the location the library was opened from.
	Path() string

	// Sum calls the export. Operands wider than the artifact's word fail
	// with ErrOperandRange; the result wraps at that width.
	Sum(ctx context.Context, a, b uint64) (uint64, error)

	// Close releases the artifact. Closing twice is a no-op.
	Close(ctx context.Context) error
}

// Open loads path as a WebAssembly module when it ends in ".wasm" and as a
// native shared library otherwise.
func Open(ctx context.Context, path string) (Library, error) {
	if strings.EqualFold(filepath.Ext(path), ".wasm") {
		bin, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Op: "read", Path: path, Err: err}
		}
		m, err := OpenWasm(ctx, path, bin)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	lib, err := OpenNative(path)
	if err != nil {
		return nil, err
	}
	return lib, nil
}
