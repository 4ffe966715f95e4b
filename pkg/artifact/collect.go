// pkg/artifact/collect.go
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoArtifacts indicates the build produced no library to collect
var ErrNoArtifacts = errors.New("failed to find libslang.so, check build logs")

// LibExtensions are the library suffixes picked up from a build tree
var LibExtensions = []string{".so", ".a"}

// searchDirs are checked, relative to a build directory, for libraries
var searchDirs = []string{
	"lib",
	"bin",
	filepath.Join("Release", "lib"),
	filepath.Join("Release", "bin"),
}

// IsLibrary reports whether name looks like a library the build produced
func IsLibrary(name string) bool {
	if !strings.Contains(name, "lib") {
		return false
	}
	for _, ext := range LibExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Collect copies the libraries found in buildDir into destDir and returns
// their destination paths
func Collect(buildDir, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destDir, err)
	}

	var copied []string
	for _, rel := range searchDirs {
		entries, err := os.ReadDir(filepath.Join(buildDir, rel))
		if err != nil {
			continue
		}

		for _, e := range entries {
			if e.IsDir() || !IsLibrary(e.Name()) {
				continue
			}

			dst := filepath.Join(destDir, e.Name())
			if err := copyFile(filepath.Join(buildDir, rel, e.Name()), dst); err != nil {
				return copied, fmt.Errorf("copying %s: %w", e.Name(), err)
			}
			fmt.Printf("Copied: %s\n", e.Name())
			copied = append(copied, dst)
		}
	}

	if len(copied) == 0 {
		return nil, ErrNoArtifacts
	}
	return copied, nil
}

// CopyHeaders replaces destDir with a copy of the source tree's include dir
func CopyHeaders(includeDir, destDir string) error {
	if err := os.RemoveAll(destDir); err != nil {
		return fmt.Errorf("removing old headers: %w", err)
	}
	if err := copyDir(includeDir, destDir); err != nil {
		return fmt.Errorf("copying headers: %w", err)
	}
	fmt.Println("Copied include directory.")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}
