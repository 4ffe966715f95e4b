package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/slangdroid/pkg/pipeline"
)

// execute runs the root command with a throwaway config file
func execute(t *testing.T, configYAML string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SLANG_TAG", "")
	t.Setenv("SLANGDROID_WORK_DIR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0644))

	// flag state is package global and survives between runs
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	buildDryRun, buildSkipPreflight, cleanAll, debug = false, false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "slangdroid version "+Version)
}

func TestListMarksConfiguredABIs(t *testing.T) {
	out, err := execute(t, "abis: [x86_64]\n", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* x86_64")
	assert.Contains(t, out, "  arm64-v8a")
}

func TestClean(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	dist := filepath.Join(root, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(work, "slang"), 0755))
	require.NoError(t, os.MkdirAll(dist, 0755))

	cfg := "work_dir: " + work + "\ndist_dir: " + dist + "\n"
	_, err := execute(t, cfg, "clean")
	require.NoError(t, err)
	assert.NoDirExists(t, work)
	assert.DirExists(t, dist)

	_, err = execute(t, cfg, "clean", "--all")
	require.NoError(t, err)
	assert.NoDirExists(t, dist)
}

func TestCleanRefusesParentOfWorkDir(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	keep := filepath.Join(root, "notes.txt")
	require.NoError(t, os.MkdirAll(work, 0755))
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0644))

	cfg := "work_dir: " + work + "\ndist_dir: " + root + "\n"
	_, err := execute(t, cfg, "clean", "--all")
	assert.ErrorIs(t, err, pipeline.ErrUnsafeDir)
	assert.FileExists(t, keep)
	assert.DirExists(t, work)
}

func TestMalformedConfigFailsCommand(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(work, 0755))
	oldwd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	_, err := execute(t, "work_dir: [unterminated\n", "clean", "--all")
	assert.ErrorContains(t, err, "loading config")
	assert.DirExists(t, work)

	out, err := execute(t, "abis: {\n", "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestBuildDryRunToleratesUnknownFlags(t *testing.T) {
	ndkRoot := t.TempDir()
	tc := filepath.Join(ndkRoot, "build", "cmake", "android.toolchain.cmake")
	require.NoError(t, os.MkdirAll(filepath.Dir(tc), 0755))
	require.NoError(t, os.WriteFile(tc, nil, 0644))

	work := t.TempDir()
	cfg := "work_dir: " + work + "\ndist_dir: " + filepath.Join(work, "dist") + "\n"

	_, err := execute(t, cfg, "build", "--dry-run", "--ndk", ndkRoot, "--abi", "arm64-v8a,x86", "--not-a-flag")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(work, "slang"), "dry run does not clone")
}

func TestBuildRejectsBadABI(t *testing.T) {
	_, err := execute(t, "abis: [sparc]\n", "build", "--dry-run")
	assert.ErrorContains(t, err, "unknown android abi")
}

func TestFlags(t *testing.T) {
	dist := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "x86_64"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "x86_64", "libslang.so"), nil, 0644))

	out, err := execute(t, "", "flags", dist, "--abi", "x86_64")
	require.NoError(t, err)
	assert.Contains(t, out, "-L"+filepath.Join(dist, "x86_64"))
	assert.Contains(t, out, "-lslang")
}
