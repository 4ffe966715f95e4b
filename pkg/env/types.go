// pkg/env/types.go
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/slangdroid/pkg/android"
)

// Layout names where an installation keeps its files
type Layout string

const (
	LayoutDist    Layout = "dist"    // <root>/<abi>/ and <root>/include
	LayoutRelease Layout = "release" // <root>/lib/ and <root>/include
)

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "slang")
	Path     string // Path to library file
	Type     string // Extension: ".so" or ".a"
	IsStatic bool   // True for .a files
}

// Environment is a Slang installation for one ABI
type Environment struct {
	Root   string
	ABI    android.ABI
	Layout Layout
}

// CompilerFlags holds compiler and linker flags
type CompilerFlags struct {
	IncludeFlags []string // -I flags
	LibraryFlags []string // -L flags
	LinkFlags    []string // -l flags
}

func (f *CompilerFlags) String() string {
	all := append(append(append([]string{}, f.IncludeFlags...), f.LibraryFlags...), f.LinkFlags...)
	return strings.Join(all, " ")
}

// New inspects root and picks its layout
func New(root string, abi android.ABI) (*Environment, error) {
	e := &Environment{Root: root, ABI: abi}

	switch {
	case dirExists(filepath.Join(root, abi.String())):
		e.Layout = LayoutDist
	case dirExists(filepath.Join(root, "lib")):
		e.Layout = LayoutRelease
	default:
		return nil, fmt.Errorf("%s has no libraries for %s", root, abi)
	}
	return e, nil
}

// LibraryPath returns the directory holding the ABI's libraries
func (e *Environment) LibraryPath() string {
	if e.Layout == LayoutRelease {
		return filepath.Join(e.Root, "lib")
	}
	return filepath.Join(e.Root, e.ABI.String())
}

// IncludePath returns the header directory
func (e *Environment) IncludePath() string {
	return filepath.Join(e.Root, "include")
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
