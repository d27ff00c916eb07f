package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedSince(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pkg", "a.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("package pkg\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "a_test.go"), []byte("package pkg\n"), 0o644))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, old, old))

	assert.False(t, changedSince(time.Now(), dir), "test files and older sources are ignored")
	assert.True(t, changedSince(old.Add(-time.Minute), dir))
	assert.False(t, changedSince(time.Now(), filepath.Join(dir, "missing")))
}
