package host

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// reactorInit is the start function of a WASI reactor such as a
// GOOS=wasip1 -buildmode=c-shared build. Modules without it start as is.
const reactorInit = "_initialize"

// WasmOption configures OpenWasm.
type WasmOption func(*wasmConfig)

type wasmConfig struct {
	stdout io.Writer
	stderr io.Writer
}

// WithStdout sets where the module's standard output goes. Defaults to os.Stdout.
func WithStdout(w io.Writer) WasmOption {
	return func(c *wasmConfig) { c.stdout = w }
}

// WithStderr sets where the module's standard error goes. Defaults to os.Stderr.
func WithStderr(w io.Writer) WasmOption {
	return func(c *wasmConfig) { c.stderr = w }
}

// WasmModule is an instantiated WebAssembly module exporting SymbolName as
// either (i32, i32) -> i32 or (i64, i64) -> i64.
type WasmModule struct {
	path string

	mu      sync.Mutex
	runtime wazero.Runtime
	module  api.Module
	fn      api.Function
	narrow  bool
}

// OpenWasm compiles and instantiates bin with WASI preview1 available.
// path only labels errors and logs.
func OpenWasm(ctx context.Context, path string, bin []byte, opts ...WasmOption) (*WasmModule, error) {
	cfg := wasmConfig{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := wazero.NewRuntime(ctx)
	m, err := instantiate(ctx, r, path, bin, cfg)
	if err != nil {
		if closeErr := r.Close(ctx); closeErr != nil {
			Logger().Warn("failed to close wasm runtime",
				zap.String("path", path),
				zap.Error(closeErr))
		}
		return nil, err
	}

	Logger().Debug("wasm module loaded",
		zap.String("path", path),
		zap.Bool("narrow", m.narrow))
	return m, nil
}

func instantiate(ctx context.Context, r wazero.Runtime, path string, bin []byte, cfg wasmConfig) (*WasmModule, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return nil, &LoadError{Op: "instantiate wasi", Path: path, Err: err}
	}

	compiled, err := r.CompileModule(ctx, bin)
	if err != nil {
		return nil, &LoadError{Op: "compile", Path: path, Err: err}
	}

	def, ok := compiled.ExportedFunctions()[SymbolName]
	if !ok {
		return nil, &LoadError{Op: "resolve", Path: path, Err: ErrSymbolNotFound}
	}
	narrow, err := checkSignature(def)
	if err != nil {
		return nil, &LoadError{Op: "resolve", Path: path, Err: err}
	}

	modConfig := wazero.NewModuleConfig().
		WithStdout(cfg.stdout).
		WithStderr(cfg.stderr).
		WithStartFunctions(reactorInit)

	mod, err := r.InstantiateModule(ctx, compiled, modConfig)
	if err != nil {
		return nil, &LoadError{Op: "instantiate", Path: path, Err: err}
	}

	return &WasmModule{
		path:    path,
		runtime: r,
		module:  mod,
		fn:      mod.ExportedFunction(SymbolName),
		narrow:  narrow,
	}, nil
}

// checkSignature accepts the wasm32 and wasm64 word shapes and reports
// whether the export takes i32 operands.
func checkSignature(def api.FunctionDefinition) (bool, error) {
	params, results := def.ParamTypes(), def.ResultTypes()
	for _, vt := range []api.ValueType{api.ValueTypeI32, api.ValueTypeI64} {
		if slices.Equal(params, []api.ValueType{vt, vt}) && slices.Equal(results, []api.ValueType{vt}) {
			return vt == api.ValueTypeI32, nil
		}
	}
	return false, fmt.Errorf("%w: %s%v -> %v", ErrSignature, SymbolName,
		valueTypeNames(params), valueTypeNames(results))
}

func valueTypeNames(types []api.ValueType) []string {
	names := make([]string, len(types))
	for i, vt := range types {
		names[i] = api.ValueTypeName(vt)
	}
	return names
}

// Path returns the path passed to OpenWasm.
func (m *WasmModule) Path() string {
	return m.path
}

// Sum calls the module's export. For i32 exports operands above
// math.MaxUint32 fail with ErrOperandRange and the result wraps at 32 bits.
func (m *WasmModule) Sum(ctx context.Context, a, b uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fn == nil {
		return 0, ErrClosed
	}

	if m.narrow {
		if a > math.MaxUint32 || b > math.MaxUint32 {
			return 0, fmt.Errorf("%w: %d + %d on a 32-bit export", ErrOperandRange, a, b)
		}
		res, err := m.fn.Call(ctx, api.EncodeU32(uint32(a)), api.EncodeU32(uint32(b)))
		if err != nil {
			return 0, fmt.Errorf("call %s: %w", SymbolName, err)
		}
		return uint64(api.DecodeU32(res[0])), nil
	}

	res, err := m.fn.Call(ctx, a, b)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", SymbolName, err)
	}
	return res[0], nil
}

// Close tears down the module and its runtime.
func (m *WasmModule) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fn == nil {
		return nil
	}
	m.fn = nil
	m.module = nil

	if err := m.runtime.Close(ctx); err != nil {
		return fmt.Errorf("close %s: %w", m.path, err)
	}
	return nil
}
