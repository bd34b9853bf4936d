package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	t.Parallel()
	// Arrange
	root := t.TempDir()
	for _, name := range []string{
		"b.yaml",
		"a.HCL",
		"notes.txt",
		"sub/c.yml",
		".esphome/build/cached.yaml",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	// Act
	files, err := FindFiles(root, ".hcl", ".yaml", ".yml")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.HCL"),
		filepath.Join(root, "b.yaml"),
		filepath.Join(root, "sub", "c.yml"),
	}, files)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	t.Parallel()
	_, err := FindFiles(filepath.Join(t.TempDir(), "absent"), ".hcl")
	assert.Error(t, err)
}

func TestFindFiles_NoExtensionsPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { _, _ = FindFiles(".") })
}
