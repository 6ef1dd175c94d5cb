//go:build !cgo || !(linux || darwin)

package host

import "context"

// NativeLibrary is unavailable on this build; OpenNative always fails.
type NativeLibrary struct {
	path string
}

// OpenNative reports ErrUnsupported: loading native libraries needs cgo and
// dlopen.
func OpenNative(path string) (*NativeLibrary, error) {
	return nil, &LoadError{Op: "dlopen", Path: path, Err: ErrUnsupported}
}

// Path returns the path passed to OpenNative.
func (l *NativeLibrary) Path() string {
	return l.path
}

// Sum always fails with ErrUnsupported.
func (l *NativeLibrary) Sum(context.Context, uint64, uint64) (uint64, error) {
	return 0, ErrUnsupported
}

// Close is a no-op.
func (l *NativeLibrary) Close(context.Context) error {
	return nil
}
