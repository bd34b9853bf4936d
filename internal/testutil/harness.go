// Package testutil provides the harness used by module and integration tests
// to run a full generation pass over configuration files.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/firmgen/internal/config"
	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/engine"
	"github.com/specialistvlad/firmgen/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	LogOutput string
	Output    *engine.Output
	Err       error
}

// Statements returns the texts of the emitted setup statements.
func (r *HarnessResult) Statements() []string {
	if r.Output == nil {
		return nil
	}
	out := make([]string, 0, len(r.Output.Statements))
	for _, s := range r.Output.Statements {
		out = append(out, s.Text)
	}
	return out
}

// NewRegistry builds a validated registry holding mods.
func NewRegistry(t *testing.T, mods ...registry.Module) *registry.Registry {
	t.Helper()
	reg := registry.New("test")
	reg.Install(mods...)
	require.NoError(t, reg.Validate(context.Background()))
	reg.Freeze()
	return reg
}

// WriteFiles writes files, keyed by relative path, under a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Run loads the given configuration files and runs one generation pass with
// the given modules. Configuration errors end up in Err like pass errors.
func Run(t *testing.T, files map[string]string, mods ...registry.Module) *HarnessResult {
	t.Helper()
	return RunWithContext(context.Background(), t, files, mods...)
}

// RunWithContext is Run with a caller-provided context.
func RunWithContext(ctx context.Context, t *testing.T, files map[string]string, mods ...registry.Module) *HarnessResult {
	t.Helper()
	return RunRegistry(ctx, t, NewRegistry(t, mods...), files)
}

// RunRegistry is RunWithContext with a caller-built registry, for tests that
// stack registry layers.
func RunRegistry(ctx context.Context, t *testing.T, reg *registry.Registry, files map[string]string) *HarnessResult {
	t.Helper()
	dir := WriteFiles(t, files)

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = ctxlog.WithLogger(ctx, logger)

	res := &HarnessResult{}
	blocks, err := config.Load(ctx, dir)
	if err != nil {
		res.Err = err
	} else {
		res.Output, res.Err = engine.New(reg).Generate(ctx, blocks)
	}
	res.LogOutput = logBuffer.String()

	if os.Getenv("FIRMGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
	}
	return res
}

// RunYAML runs a pass over a single YAML document.
func RunYAML(t *testing.T, src string, mods ...registry.Module) *HarnessResult {
	t.Helper()
	return Run(t, map[string]string{"main.yaml": src}, mods...)
}

// RunHCL runs a pass over a single HCL document.
func RunHCL(t *testing.T, src string, mods ...registry.Module) *HarnessResult {
	t.Helper()
	return Run(t, map[string]string{"main.hcl": src}, mods...)
}
