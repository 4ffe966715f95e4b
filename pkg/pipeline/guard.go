// pkg/pipeline/guard.go
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeDir indicates a directory the build refuses to wipe
var ErrUnsafeDir = errors.New("refusing to remove directory")

// CheckRemovable returns ErrUnsafeDir when removing dir would take the
// filesystem root, the home or current directory, or any of keep with it
func CheckRemovable(dir string, keep ...string) error {
	target, err := resolve(dir)
	if err != nil {
		return err
	}
	if filepath.Dir(target) == target {
		return fmt.Errorf("%w %s: it is the filesystem root", ErrUnsafeDir, dir)
	}

	protected := append([]string(nil), keep...)
	if home, err := os.UserHomeDir(); err == nil {
		protected = append(protected, home)
	}
	if wd, err := os.Getwd(); err == nil {
		protected = append(protected, wd)
	}

	for _, p := range protected {
		if p == "" {
			continue
		}
		abs, err := resolve(p)
		if err != nil {
			return err
		}
		if within(abs, target) {
			return fmt.Errorf("%w %s: it contains %s", ErrUnsafeDir, dir, p)
		}
	}
	return nil
}

// resolve makes path absolute and follows symlinks when it exists
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// within reports whether path is dir or lies beneath it
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
