// pkg/platform/preflight.go
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrSymlinkNotPermitted indicates the current user may not create symlinks
	ErrSymlinkNotPermitted = errors.New("symlink creation not permitted")

	// ErrDeveloperModeRequired indicates the build needs Windows Developer Mode
	ErrDeveloperModeRequired = errors.New("windows developer mode must be enabled to build slang (the upstream build creates symlinks)")

	// ErrToolMissing indicates a required build tool is not on PATH
	ErrToolMissing = errors.New("required build tool not found")
)

// SymlinkProbe checks whether symlinks can be created inside dir
type SymlinkProbe func(dir string) error

// ProbeSymlink creates and removes a throwaway symlink in dir
func ProbeSymlink(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating probe directory: %w", err)
	}

	target, err := os.CreateTemp(dir, "symlink-probe-*")
	if err != nil {
		return fmt.Errorf("creating probe target: %w", err)
	}
	target.Close()
	defer os.Remove(target.Name())

	link := target.Name() + ".lnk"
	if err := os.Symlink(filepath.Base(target.Name()), link); err != nil {
		return fmt.Errorf("%w: %v", ErrSymlinkNotPermitted, err)
	}
	return os.Remove(link)
}

// Preflight verifies the host can run the upstream build before any step
// starts. The symlink probe runs inside workDir.
func Preflight(p *Platform, workDir string, probe SymlinkProbe) error {
	if len(p.Missing) > 0 {
		return fmt.Errorf("%w: %v", ErrToolMissing, p.Missing)
	}

	if !p.NeedsDeveloperMode() {
		return nil
	}

	if probe == nil {
		probe = ProbeSymlink
	}
	if err := probe(workDir); err != nil {
		if errors.Is(err, ErrSymlinkNotPermitted) {
			return fmt.Errorf("%w: %v", ErrDeveloperModeRequired, err)
		}
		return err
	}
	return nil
}
