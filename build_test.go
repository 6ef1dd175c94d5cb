//go:build !wasip1

package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogrelay/sumffi/host"
)

// goTool returns the go command used to build artifacts from this package.
func goTool(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("builds artifacts with the go command")
	}
	if path, err := exec.LookPath("go"); err == nil {
		return path
	}
	path := filepath.Join(runtime.GOROOT(), "bin", "go")
	if _, err := os.Stat(path); err != nil {
		t.Skip("go command not found")
	}
	return path
}

// buildArtifact builds this package with the given build mode and tags and
// returns the output path.
func buildArtifact(t *testing.T, out string, env []string, args ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), out)
	cmd := exec.Command(goTool(t), append(append([]string{"build"}, args...), "-o", path, ".")...)
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", output)
	return path
}

func buildWasm(t *testing.T, tags ...string) []byte {
	t.Helper()

	args := []string{"-buildmode=c-shared"}
	if len(tags) > 0 {
		args = append(args, "-tags", tags[0])
	}
	path := buildArtifact(t, "sum.wasm", []string{"GOOS=wasip1", "GOARCH=wasm", "CGO_ENABLED=0"}, args...)

	bin, err := os.ReadFile(path)
	require.NoError(t, err)
	return bin
}

func TestWasmExport(t *testing.T) {
	ctx := context.Background()
	bin := buildWasm(t, "sum")

	var stdout bytes.Buffer
	m, err := host.OpenWasm(ctx, "sum.wasm", bin, host.WithStdout(&stdout))
	require.NoError(t, err)
	defer m.Close(ctx)

	got, err := m.Sum(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got)

	got, err = m.Sum(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	got, err = m.Sum(ctx, math.MaxUint64, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	assert.Equal(t,
		"Hello from go 2 + 2\nHello from go 0 + 0\nHello from go 18446744073709551615 + 1\n",
		stdout.String())
}

func TestWasmExport_Disabled(t *testing.T) {
	ctx := context.Background()
	bin := buildWasm(t)

	_, err := host.OpenWasm(ctx, "nosum.wasm", bin, host.WithStdout(&bytes.Buffer{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrSymbolNotFound)
}
