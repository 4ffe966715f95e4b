// pkg/manifest/manifest.go
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest written at the root of the dist directory
const FileName = "slangdroid.toml"

// Manifest records how a dist directory was produced
type Manifest struct {
	Tag         string    `toml:"tag"`
	Commit      string    `toml:"commit"`
	NDKPath     string    `toml:"ndk_path"`
	NDKRevision string    `toml:"ndk_revision"`
	Platform    string    `toml:"platform"`
	Host        string    `toml:"host"`
	BuiltAt     time.Time `toml:"built_at"`
	Targets     []Target  `toml:"target"`
}

// Target lists the files built for one ABI
type Target struct {
	ABI   string `toml:"abi"`
	Files []File `toml:"file"`
}

// File is a collected artifact, relative to the dist directory
type File struct {
	Path   string `toml:"path"`
	Size   int64  `toml:"size"`
	SHA256 string `toml:"sha256"`
}

// AddTarget records the files built for abi. Paths are stored relative to dist.
func (m *Manifest) AddTarget(dist, abi string, paths []string) error {
	t := Target{ABI: abi}
	for _, p := range paths {
		f, err := Describe(dist, p)
		if err != nil {
			return err
		}
		t.Files = append(t.Files, f)
	}
	sort.Slice(t.Files, func(i, j int) bool { return t.Files[i].Path < t.Files[j].Path })

	m.Targets = append(m.Targets, t)
	return nil
}

// Target returns the entry for abi
func (m *Manifest) Target(abi string) (*Target, bool) {
	for i := range m.Targets {
		if m.Targets[i].ABI == abi {
			return &m.Targets[i], true
		}
	}
	return nil, false
}

// Describe hashes the file at path
func Describe(dist, path string) (File, error) {
	rel, err := filepath.Rel(dist, path)
	if err != nil {
		return File{}, err
	}

	sum, size, err := HashFile(path)
	if err != nil {
		return File{}, err
	}
	return File{Path: filepath.ToSlash(rel), Size: size, SHA256: sum}, nil
}

// HashFile returns the hex sha256 and size of a file
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// Load reads a manifest from dir
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("manifest: failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// Write stores the manifest in dir, replacing any previous one atomically
func Write(dir string, m *Manifest) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("manifest: encoding: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("manifest: writing: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("manifest: writing: %w", err)
	}

	return os.Rename(tmp.Name(), filepath.Join(dir, FileName))
}
