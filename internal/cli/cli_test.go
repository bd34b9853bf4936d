package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/render"
	"github.com/specialistvlad/firmgen/internal/testutil"
)

const loggerYAML = "esphome:\n  name: bench\nlogger:\n"

func TestExecute_WritesProject(t *testing.T) {
	t.Parallel()
	// Arrange
	dir := testutil.WriteFiles(t, map[string]string{"bench.yaml": loggerYAML})
	outDir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	// Act
	err := Execute(context.Background(), &out, []string{"--output", outDir, filepath.Join(dir, "bench.yaml")})

	// Assert
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, render.MainFile))
	assert.Contains(t, out.String(), "Project written.")
}

func TestExecute_ConfigFlagAndDryRun(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{"bench.yaml": loggerYAML})
	var out bytes.Buffer

	err := Execute(context.Background(), &out, []string{"-c", dir, "--dry-run", "--log-level", "error"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `App.pre_setup("bench", "bench");`)
}

func TestExecute_NoPathPrintsHelp(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	err := Execute(context.Background(), &out, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "FIRMGEN_LOG_LEVEL")
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag"}, want: "unknown flag: --this-is-not-a-valid-flag"},
		{name: "two paths", args: []string{"a.yaml", "b.yaml"}, want: "accepts at most one CONFIG_PATH"},
		{name: "bad log level", args: []string{"--log-level", "loud", "a.yaml"}, want: `invalid log-level "loud"`},
		{name: "bad log format", args: []string{"--log-format", "xml", "a.yaml"}, want: `invalid log-format "xml"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// Act
			err := Execute(context.Background(), &bytes.Buffer{}, tc.args)

			// Assert
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Equal(t, 2, ExitCode(err))
		})
	}
}

func TestExecute_PassFailureExitsWithOne(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{"bad.yaml": "sensor:\n  platform: unknown_kind\n"})

	err := Execute(context.Background(), &bytes.Buffer{}, []string{dir})

	require.ErrorIs(t, err, errors.ErrUnknownDiscriminator)
	assert.Equal(t, 1, ExitCode(err))
}

// Not parallel: t.Setenv changes the process environment.
func TestExecute_EnvironmentOverridesDefaults(t *testing.T) {
	// Arrange
	dir := testutil.WriteFiles(t, map[string]string{"bench.yaml": loggerYAML})
	outDir := filepath.Join(t.TempDir(), "from-env")
	t.Setenv("FIRMGEN_OUTPUT", outDir)
	t.Setenv("FIRMGEN_LOG_FORMAT", "json")

	var out bytes.Buffer

	// Act
	err := Execute(context.Background(), &out, []string{dir})

	// Assert
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(outDir, render.BuildFile))
	require.NoError(t, statErr)
	assert.Contains(t, out.String(), `"msg":"Project written."`)
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(errors.Wrap(usageError(errors.New("bad flag")), "parsing")))
}
