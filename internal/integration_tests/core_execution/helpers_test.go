package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/firmgen/internal/app"
	"github.com/specialistvlad/firmgen/internal/render"
	"github.com/specialistvlad/firmgen/internal/testutil"
)

// runBuiltin runs a pass over files with every built-in module installed.
func runBuiltin(t *testing.T, files map[string]string) *testutil.HarnessResult {
	t.Helper()
	return testutil.Run(t, files, app.BuiltinModules()...)
}

// renderFiles renders a successful result, keyed by file name.
func renderFiles(t *testing.T, res *testutil.HarnessResult) map[string]string {
	t.Helper()
	require.NoError(t, res.Err)
	files, err := render.Render(res.Output)
	require.NoError(t, err)
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Name] = string(f.Content)
	}
	return out
}

func countOccurrences(s, substr string) int {
	return strings.Count(s, substr)
}
