package platform

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deniedProbe(string) error {
	return fmt.Errorf("%w: A required privilege is not held by the client", ErrSymlinkNotPermitted)
}

func TestPreflightWindowsWithoutDeveloperMode(t *testing.T) {
	p := &Platform{OS: "windows", Arch: "amd64"}

	err := Preflight(p, t.TempDir(), deniedProbe)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeveloperModeRequired)
}

func TestPreflightWindowsWithDeveloperMode(t *testing.T) {
	p := &Platform{OS: "windows", Arch: "amd64", DeveloperMode: true}

	err := Preflight(p, t.TempDir(), func(string) error { return nil })
	assert.NoError(t, err)
}

func TestPreflightSkipsProbeOffWindows(t *testing.T) {
	p := &Platform{OS: "linux", Arch: "amd64"}

	called := false
	err := Preflight(p, t.TempDir(), func(string) error {
		called = true
		return deniedProbe("")
	})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestPreflightMissingTools(t *testing.T) {
	p := &Platform{OS: "linux", Missing: []string{"ninja"}}

	err := Preflight(p, t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrToolMissing)
	assert.Contains(t, err.Error(), "ninja")
}

func TestProbeSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink permission depends on developer mode")
	}
	assert.NoError(t, ProbeSymlink(t.TempDir()))
}

func TestDeveloperModeOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("reads the registry")
	}
	enabled, err := DeveloperMode()
	require.NoError(t, err)
	assert.True(t, enabled)
}
