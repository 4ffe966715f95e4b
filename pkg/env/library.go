// pkg/env/library.go
package env

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arc-language/slangdroid/pkg/artifact"
)

// FindLibrary searches for a library by name, preferring the shared one
func (e *Environment) FindLibrary(name string) *Library {
	for _, ext := range artifact.LibExtensions {
		path := filepath.Join(e.LibraryPath(), "lib"+name+ext)
		if fileExists(path) {
			return &Library{
				Name:     name,
				Path:     path,
				Type:     ext,
				IsStatic: ext == ".a",
			}
		}
	}
	return nil
}

// FindAllLibraries returns every library for the ABI, sorted by name
func (e *Environment) FindAllLibraries() []*Library {
	entries, err := os.ReadDir(e.LibraryPath())
	if err != nil {
		return nil
	}

	var libraries []*Library
	for _, entry := range entries {
		if entry.IsDir() || !artifact.IsLibrary(entry.Name()) {
			continue
		}

		ext := filepath.Ext(entry.Name())
		libraries = append(libraries, &Library{
			Name:     strings.TrimSuffix(strings.TrimPrefix(entry.Name(), "lib"), ext),
			Path:     filepath.Join(e.LibraryPath(), entry.Name()),
			Type:     ext,
			IsStatic: ext == ".a",
		})
	}

	sort.Slice(libraries, func(i, j int) bool { return libraries[i].Name < libraries[j].Name })
	return libraries
}

// CompilerFlags returns the flags needed to compile and link against libslang
func (e *Environment) CompilerFlags() *CompilerFlags {
	flags := &CompilerFlags{
		IncludeFlags: []string{"-I" + e.IncludePath()},
		LibraryFlags: []string{"-L" + e.LibraryPath()},
	}

	if e.FindLibrary("slang") != nil {
		flags.LinkFlags = append(flags.LinkFlags, "-lslang")
	}
	return flags
}
