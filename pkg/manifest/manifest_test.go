package manifest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLoad(t *testing.T) {
	dist := t.TempDir()
	lib := filepath.Join(dist, "arm64-v8a", "libslang.so")
	require.NoError(t, os.MkdirAll(filepath.Dir(lib), 0755))
	require.NoError(t, os.WriteFile(lib, []byte("hello"), 0644))

	m := &Manifest{
		Tag:         "v2025.24.2",
		NDKRevision: "26.1.10909125",
		Platform:    "android-30",
		Host:        "linux/amd64",
		BuiltAt:     time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, m.AddTarget(dist, "arm64-v8a", []string{lib}))
	require.NoError(t, Write(dist, m))

	loaded, err := Load(dist)
	require.NoError(t, err)
	assert.Equal(t, "v2025.24.2", loaded.Tag)
	assert.True(t, m.BuiltAt.Equal(loaded.BuiltAt))

	target, ok := loaded.Target("arm64-v8a")
	require.True(t, ok)
	require.Len(t, target.Files, 1)
	assert.Equal(t, "arm64-v8a/libslang.so", target.Files[0].Path)
	assert.Equal(t, int64(5), target.Files[0].Size)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", target.Files[0].SHA256)

	_, ok = loaded.Target("x86")
	assert.False(t, ok)

	entries, err := os.ReadDir(dist)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestWriteIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dist := t.TempDir()
	require.NoError(t, Write(dist, &Manifest{Tag: "v2025.24.2"}))

	info, err := os.Stat(filepath.Join(dist, FileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dist)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "manifest: failed to parse")
}
