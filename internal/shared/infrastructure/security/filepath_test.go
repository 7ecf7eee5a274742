package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateFilePath(filepath.Join(dir, "nested", "..", "planner.db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "planner.db"), filepath.Clean(got))
	assert.True(t, filepath.IsAbs(got))
}

func TestValidateFilePath_Relative(t *testing.T) {
	got, err := ValidateFilePath("planner.db")
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "planner.db"), got)
}

func TestValidateFilePath_Rejects(t *testing.T) {
	for _, path := range []string{"", "  ", "planner.db; rm -rf ~", "$(whoami).db", "a|b.db"} {
		t.Run(path, func(t *testing.T) {
			_, err := ValidateFilePath(path)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestValidateFilePath_ResolvesSymlinks(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := filepath.Join(dir, "real.db")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	link := filepath.Join(dir, "link.db")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := ValidateFilePath(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}
