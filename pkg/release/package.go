// pkg/release/package.go
package release

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/arc-language/slangdroid/pkg/android"
	"github.com/arc-language/slangdroid/pkg/manifest"
)

// Bundle is the content of one per-ABI release archive
type Bundle struct {
	ABI        android.ABI
	LibDir     string // collected libraries for the ABI
	IncludeDir string // shared headers
}

// Package writes one archive per bundle into outDir, followed by a
// SHA256SUMS listing, and returns the archive paths
func Package(tag string, bundles []Bundle, outDir string, format Format) ([]string, error) {
	if format == "" {
		format = FormatXZ
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}

	var paths []string
	sums := make(map[string]string)
	for _, b := range bundles {
		name := AssetName(tag, b.ABI, format)
		path := filepath.Join(outDir, name)

		if err := writeArchive(path, b, format); err != nil {
			return nil, fmt.Errorf("packaging %s: %w", b.ABI, err)
		}

		sum, _, err := manifest.HashFile(path)
		if err != nil {
			return nil, err
		}
		sums[name] = sum
		paths = append(paths, path)
		fmt.Printf("Packaged: %s\n", name)
	}

	if err := writeChecksums(filepath.Join(outDir, ChecksumsFile), sums); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeArchive(path string, b Bundle, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var zw io.WriteCloser
	switch format {
	case FormatXZ:
		zw, err = xz.NewWriter(f)
	case FormatZstd:
		zw, err = zstd.NewWriter(f)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%s init: %w", format, err)
	}

	tw := tar.NewWriter(zw)
	if err := addTree(tw, b.LibDir, "lib"); err != nil {
		return err
	}
	if b.IncludeDir != "" {
		if err := addTree(tw, b.IncludeDir, "include"); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return zw.Close()
}

// addTree adds every regular file under root to tw, prefixed with prefix
func addTree(tw *tar.Writer, root, prefix string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(filepath.Join(prefix, rel))

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = name
		if info.IsDir() {
			hdr.Name += "/"
		}
		hdr.Uname, hdr.Gname = "", ""
		hdr.Uid, hdr.Gid = 0, 0

		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
}

func writeChecksums(path string, sums map[string]string) error {
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s  %s\n", sums[name], name)
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// ParseChecksums reads a sha256sum-style listing into name -> hex digest
func ParseChecksums(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums, nil
}
