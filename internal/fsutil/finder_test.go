package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.hcl"))
	writeFile(t, filepath.Join(root, "nested", "a.yaml"))
	writeFile(t, filepath.Join(root, "nested", "deeper", "c.hcl"))
	writeFile(t, filepath.Join(root, "ignored.txt"))

	// --- Act ---
	files, err := FindFilesByExtension(root, ".hcl", ".yaml")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "a.yaml"),
		filepath.Join(root, "nested", "deeper", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()

	files, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")

	require.NoError(t, err)
	require.Empty(t, files)
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
	require.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

func TestIsFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "file.hcl")
	writeFile(t, path)

	require.True(t, IsFile(path))
	require.False(t, IsFile(root), "a directory is not a file")
	require.False(t, IsFile(filepath.Join(root, "missing")))
}
