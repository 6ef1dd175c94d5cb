// Package host loads artifacts that export the sum entry point and calls it
// from Go.
//
// Native shared libraries are opened with dlopen(3) and WebAssembly modules
// are instantiated with wazero:
//
//	lib, err := host.Open(ctx, "libsum.so")
//	if err != nil {
//		return err
//	}
//	defer lib.Close(ctx)
//	n, err := lib.Sum(ctx, 2, 2)
//
// A missing export is reported when the artifact is opened, never when Sum is
// called. Check for it with errors.Is(err, host.ErrSymbolNotFound).
//
// A Go process cannot load a shared library built by Go with -buildmode=c-shared;
// the native loader is meant for libraries produced by other toolchains.
package host
