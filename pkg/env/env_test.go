package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/slangdroid/pkg/android"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestDistLayout(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "arm64-v8a", "libslang.so"))
	touch(t, filepath.Join(root, "arm64-v8a", "libslang-glslang.so"))
	touch(t, filepath.Join(root, "include", "slang.h"))

	e, err := New(root, android.ABIArm64)
	require.NoError(t, err)
	assert.Equal(t, LayoutDist, e.Layout)

	lib := e.FindLibrary("slang")
	require.NotNil(t, lib)
	assert.False(t, lib.IsStatic)
	assert.Nil(t, e.FindLibrary("ssl"))

	all := e.FindAllLibraries()
	require.Len(t, all, 2)
	assert.Equal(t, "slang", all[0].Name)
	assert.Equal(t, "slang-glslang", all[1].Name)

	flags := e.CompilerFlags()
	assert.Equal(t, "-I"+filepath.Join(root, "include")+" -L"+filepath.Join(root, "arm64-v8a")+" -lslang", flags.String())
}

func TestReleaseLayout(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "lib", "libslang.a"))

	e, err := New(root, android.ABIX86)
	require.NoError(t, err)
	assert.Equal(t, LayoutRelease, e.Layout)

	lib := e.FindLibrary("slang")
	require.NotNil(t, lib)
	assert.True(t, lib.IsStatic)
}

func TestNewEmpty(t *testing.T) {
	_, err := New(t.TempDir(), android.ABIArm64)
	assert.Error(t, err)
}
