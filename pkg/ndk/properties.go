// pkg/ndk/properties.go
package ndk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Revision reads Pkg.Revision from the NDK's source.properties
func (n *NDK) Revision() (string, error) {
	props, err := readProperties(filepath.Join(n.Path, "source.properties"))
	if err != nil {
		return "", err
	}

	rev, ok := props["Pkg.Revision"]
	if !ok {
		return "", fmt.Errorf("source.properties has no Pkg.Revision")
	}
	return rev, nil
}

// readProperties parses a java-style key = value file
func readProperties(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading properties: %w", err)
	}
	defer f.Close()

	props := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return props, scanner.Err()
}
