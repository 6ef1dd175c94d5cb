//go:build cgo && (linux || darwin)

package host

/*
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

typedef size_t (*sum_fn)(size_t, size_t);

static size_t call_sum(void *fn, size_t a, size_t b) {
    return ((sum_fn)fn)(a, b);
}
*/
import "C"
import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

// NativeLibrary wraps a dlopen handle and the resolved sum symbol.
type NativeLibrary struct {
	path string

	mu     sync.RWMutex
	handle unsafe.Pointer
	fn     unsafe.Pointer
}

// OpenNative loads the shared library at path and resolves SymbolName.
// The library is released if the symbol is missing.
func OpenNative(path string) (*NativeLibrary, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	cName := C.CString(SymbolName)
	defer C.free(unsafe.Pointer(cName))

	// dlerror state is per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	handle := C.dlopen(cPath, C.RTLD_NOW|C.RTLD_LOCAL)
	if handle == nil {
		return nil, &LoadError{Op: "dlopen", Path: path, Err: dlerror()}
	}

	C.dlerror()
	fn := C.dlsym(handle, cName)
	if fn == nil {
		Logger().Debug("symbol lookup failed",
			zap.String("path", path),
			zap.String("symbol", SymbolName),
			zap.Error(dlerror()))
		C.dlclose(handle)
		return nil, &LoadError{Op: "dlsym", Path: path, Err: ErrSymbolNotFound}
	}

	l := &NativeLibrary{path: path, handle: handle, fn: fn}

	// Set finalizer to ensure cleanup
	runtime.SetFinalizer(l, (*NativeLibrary).finalize)

	Logger().Debug("native library loaded", zap.String("path", path))
	return l, nil
}

func dlerror() error {
	msg := C.dlerror()
	if msg == nil {
		return errors.New("unknown dynamic loader error")
	}
	return errors.New(C.GoString(msg))
}

// Path returns the path passed to OpenNative.
func (l *NativeLibrary) Path() string {
	return l.path
}

// Sum calls the library's sum through the C ABI. Operands wider than size_t
// fail with ErrOperandRange.
func (l *NativeLibrary) Sum(_ context.Context, a, b uint64) (uint64, error) {
	if uint64(C.size_t(a)) != a || uint64(C.size_t(b)) != b {
		return 0, fmt.Errorf("%w: %d + %d wider than size_t", ErrOperandRange, a, b)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.handle == nil {
		return 0, ErrClosed
	}
	return uint64(C.call_sum(l.fn, C.size_t(a), C.size_t(b))), nil
}

// finalize releases the native handle
func (l *NativeLibrary) finalize() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle != nil {
		C.dlclose(l.handle)
		l.handle = nil
		l.fn = nil
	}
}

// Close explicitly releases the native handle
func (l *NativeLibrary) Close(context.Context) error {
	runtime.SetFinalizer(l, nil)
	l.finalize()
	return nil
}
