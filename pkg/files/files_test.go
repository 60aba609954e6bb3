package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	return path
}

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"build.ext", true},
		{"build.pak", true},
		{"build.mod", true},
		{"BUILD.EXT", true},
		{"build.zip", false},
		{"build.ext.bak", false},
		{"build", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, SupportedExtension(tt.path))
		})
	}
}

func TestResolve_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "build.ext")

	got, err := Resolve(path, dir)

	require.NoError(t, err)
	assert.Equal(t, []string{path}, got)
}

func TestResolve_RelativeToProjectRoot(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "build.pak")

	got, err := Resolve("build.pak", dir)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "build.pak")}, got)
}

func TestResolve_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "build.zip")

	_, err := Resolve(path, dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestResolve_MissingPath(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(filepath.Join(dir, "nope.ext"), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResolve_CommaSeparatedPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, dir, "b.ext")
	a := touch(t, dir, "a.pak")

	got, err := Resolve("b.ext, a.pak", dir)

	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, got)
}

func TestResolve_DirectoryTakesSupportedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "dist")
	require.NoError(t, os.Mkdir(sub, 0o750))
	a := touch(t, sub, "a.ext")
	b := touch(t, sub, "b.mod")
	touch(t, sub, "notes.txt")

	got, err := Resolve(sub, dir)

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)
}

func TestResolve_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "dist")
	require.NoError(t, os.Mkdir(sub, 0o750))
	touch(t, sub, "notes.txt")

	_, err := Resolve(sub, dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no build files")
}

func TestResolve_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "pack-a.ext")
	b := touch(t, dir, "pack-b.ext")
	touch(t, dir, "other.mod")

	got, err := Resolve(filepath.Join(dir, "pack-*.ext"), dir)

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)
}

func TestResolve_GlobMatchingUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "pack.ext")
	touch(t, dir, "pack.zip")

	_, err := Resolve(filepath.Join(dir, "pack.*"), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestResolve_NothingResolved(t *testing.T) {
	_, err := Resolve(" , ", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no build files resolved")
}
