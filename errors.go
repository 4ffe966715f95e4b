// errors.go
package slangdroid

import (
	"fmt"

	"github.com/arc-language/slangdroid/pkg/android"
	"github.com/arc-language/slangdroid/pkg/artifact"
	"github.com/arc-language/slangdroid/pkg/ndk"
	"github.com/arc-language/slangdroid/pkg/platform"
	"github.com/arc-language/slangdroid/pkg/release"
	"github.com/arc-language/slangdroid/pkg/source"
)

var (
	// ErrNDKNotFound indicates no Android NDK was found on the host
	ErrNDKNotFound = ndk.ErrNDKNotFound

	// ErrToolchainFileMissing indicates the NDK lacks android.toolchain.cmake
	ErrToolchainFileMissing = ndk.ErrToolchainFileMissing

	// ErrDeveloperModeRequired indicates Windows Developer Mode is off
	ErrDeveloperModeRequired = platform.ErrDeveloperModeRequired

	// ErrToolMissing indicates cmake or ninja is not on PATH
	ErrToolMissing = platform.ErrToolMissing

	// ErrUnknownABI indicates an ABI the NDK cannot target
	ErrUnknownABI = android.ErrUnknownABI

	// ErrUnsupportedPlatform indicates an API level below the NDK floor
	ErrUnsupportedPlatform = android.ErrUnsupportedPlatform

	// ErrInvalidTag indicates a tag that is not a release version
	ErrInvalidTag = source.ErrInvalidTag

	// ErrNoArtifacts indicates the build produced no library
	ErrNoArtifacts = artifact.ErrNoArtifacts

	// ErrArchMismatch indicates a library built for the wrong ABI
	ErrArchMismatch = artifact.ErrArchMismatch

	// ErrHashMismatch indicates a download failed checksum verification
	ErrHashMismatch = release.ErrHashMismatch
)

// Error wraps an error with additional context
type Error struct {
	Op     string // Operation that failed
	Target string // Target tuple or asset if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
