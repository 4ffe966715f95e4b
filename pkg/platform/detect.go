// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"slices"
)

// Tools the upstream build shells out to
var requiredTools = []string{"cmake", "ninja"}

// Platform represents the detected build host
type Platform struct {
	OS            string   // linux, darwin, windows
	Arch          string   // amd64, arm64
	Tools         []string // Build tools found on PATH
	Missing       []string // Required build tools not found on PATH
	DeveloperMode bool     // Windows Developer Mode state; always true elsewhere
}

// Detect detects the current host and the build tools available on it
func Detect() (*Platform, error) {
	p := &Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	switch p.OS {
	case "linux", "darwin", "windows":
	default:
		return nil, fmt.Errorf("unsupported host operating system: %s", p.OS)
	}

	for _, tool := range append([]string{"git"}, requiredTools...) {
		if _, err := exec.LookPath(tool); err == nil {
			p.Tools = append(p.Tools, tool)
		} else if slices.Contains(requiredTools, tool) {
			p.Missing = append(p.Missing, tool)
		}
	}

	enabled, err := DeveloperMode()
	if err != nil {
		return nil, fmt.Errorf("reading developer mode: %w", err)
	}
	p.DeveloperMode = enabled

	return p, nil
}

// NeedsDeveloperMode reports whether symlink creation on this host depends
// on Developer Mode being enabled
func (p *Platform) NeedsDeveloperMode() bool {
	return p.OS == "windows"
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (tools: %v, developer mode: %t)",
		p.OS, p.Arch, p.Tools, p.DeveloperMode)
}
