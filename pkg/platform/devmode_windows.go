//go:build windows

// pkg/platform/devmode_windows.go
package platform

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

const (
	appModelUnlockKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\AppModelUnlock`
	devLicenseValue   = "AllowDevelopmentWithoutDevLicense"
)

// DeveloperMode reports whether Windows Developer Mode is enabled. A missing
// key or value means it has never been turned on.
func DeveloperMode() (bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, appModelUnlockKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(devLicenseValue)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return v == 1, nil
}
