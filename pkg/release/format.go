// pkg/release/format.go
package release

import (
	"errors"
	"fmt"

	"github.com/arc-language/slangdroid/pkg/android"
)

var (
	// ErrUnknownFormat indicates an archive format slangdroid cannot produce or read
	ErrUnknownFormat = errors.New("unknown archive format")

	// ErrHashMismatch indicates a downloaded asset failed checksum verification
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrAssetNotFound indicates the release has no asset for the request
	ErrAssetNotFound = errors.New("release asset not found")
)

// ChecksumsFile lists the sha256 of every asset in a release
const ChecksumsFile = "SHA256SUMS"

// Format is a release archive compression
type Format string

const (
	FormatXZ   Format = "xz"
	FormatZstd Format = "zstd"
)

// ParseFormat validates a format name. The empty string means no packaging.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatXZ, FormatZstd:
		return Format(s), nil
	case "zst":
		return FormatZstd, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the archive file extension
func (f Format) Ext() string {
	if f == FormatZstd {
		return ".tar.zst"
	}
	return ".tar.xz"
}

// AssetName names the archive for one ABI, e.g. slang-v2025.24.2-android-arm64-v8a.tar.xz
func AssetName(tag string, abi android.ABI, f Format) string {
	return fmt.Sprintf("slang-%s-android-%s%s", tag, abi, f.Ext())
}
