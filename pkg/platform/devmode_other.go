//go:build !windows

// pkg/platform/devmode_other.go
package platform

// DeveloperMode always reports true: only Windows gates symlinks behind it.
func DeveloperMode() (bool, error) {
	return true, nil
}
