// pkg/ndk/locate.go
package ndk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNDKNotFound indicates no NDK could be located on this host
	ErrNDKNotFound = errors.New("could not find Android NDK, please set ANDROID_NDK_HOME environment variable")

	// ErrToolchainFileMissing indicates the NDK has no CMake toolchain file
	ErrToolchainFileMissing = errors.New("toolchain file not found")
)

// ToolchainFileRel is the CMake toolchain file location inside an NDK
const ToolchainFileRel = "build/cmake/android.toolchain.cmake"

// Variables checked, in order, for an explicit NDK path
var ndkVars = []string{"ANDROID_NDK_HOME", "ANDROID_NDK_ROOT", "NDK_HOME"}

// Variables checked, in order, for an SDK root containing ndk/
var sdkVars = []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"}

// Env is the slice of the host environment the locator reads
type Env struct {
	Getenv func(string) string
	GOOS   string
	Home   string
}

// HostEnv returns the environment of the running process
func HostEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{
		Getenv: os.Getenv,
		GOOS:   runtime.GOOS,
		Home:   home,
	}
}

// NDK is a located Android NDK installation
type NDK struct {
	Path string
}

// ToolchainFile returns the android.toolchain.cmake path, verifying it exists
func (n *NDK) ToolchainFile() (string, error) {
	path := filepath.Join(n.Path, filepath.FromSlash(ToolchainFileRel))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w at %s", ErrToolchainFileMissing, path)
	}
	return path, nil
}

// Locate finds an NDK, preferring explicit variables over SDK roots
func Locate(env Env) (*NDK, error) {
	if env.Getenv == nil {
		env.Getenv = func(string) string { return "" }
	}

	for _, v := range ndkVars {
		if path := env.Getenv(v); path != "" && exists(path) {
			return &NDK{Path: path}, nil
		}
	}

	for _, root := range sdkRoots(env) {
		if !exists(root) {
			continue
		}

		if newest := newestVersion(filepath.Join(root, "ndk")); newest != "" {
			return &NDK{Path: newest}, nil
		}

		bundle := filepath.Join(root, "ndk-bundle")
		if exists(bundle) {
			return &NDK{Path: bundle}, nil
		}
	}

	return nil, ErrNDKNotFound
}

// FromPath wraps an explicitly configured NDK directory
func FromPath(path string) (*NDK, error) {
	if !exists(path) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNDKNotFound, path)
	}
	return &NDK{Path: path}, nil
}

func sdkRoots(env Env) []string {
	var roots []string
	for _, v := range sdkVars {
		if path := env.Getenv(v); path != "" {
			roots = append(roots, path)
		}
	}

	if env.GOOS == "windows" {
		roots = append(roots,
			filepath.Join(env.Getenv("LOCALAPPDATA"), "Android", "Sdk"),
			filepath.FromSlash("C:/Program Files (x86)/Android/android-sdk"),
		)
	} else if env.Home != "" {
		roots = append(roots,
			filepath.Join(env.Home, "Android", "Sdk"),
			filepath.Join(env.Home, "Library", "Android", "sdk"),
		)
	}
	return roots
}

// newestVersion returns the highest versioned subdirectory of dir
func newestVersion(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}

	SortVersions(names)
	return filepath.Join(dir, names[0])
}

// SortVersions orders NDK directory names newest first. Names that are not
// versions sort after every version, then in reverse lexical order.
func SortVersions(names []string) {
	parsed := make(map[string]*semver.Version, len(names))
	for _, n := range names {
		if v, err := semver.NewVersion(n); err == nil {
			parsed[n] = v
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		vi, iok := parsed[names[i]]
		vj, jok := parsed[names[j]]
		switch {
		case iok && jok:
			return vi.GreaterThan(vj)
		case iok != jok:
			return iok
		default:
			return names[i] > names[j]
		}
	})
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
