// pkg/artifact/verify.go
package artifact

import (
	"bufio"
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/slangdroid/pkg/android"
)

// ErrArchMismatch indicates a library was built for a different ABI
var ErrArchMismatch = errors.New("library architecture does not match target")

// Verify checks that a collected library was built for abi. Shared objects
// are read directly; static archives have every ELF member checked.
func Verify(path string, abi android.ABI) error {
	switch {
	case strings.HasSuffix(path, ".so"):
		f, err := elf.Open(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
		}
		defer f.Close()
		return checkMachine(filepath.Base(path), &f.FileHeader, abi)

	case strings.HasSuffix(path, ".a"):
		return verifyArchive(path, abi)

	default:
		return fmt.Errorf("%s: not a library", filepath.Base(path))
	}
}

func verifyArchive(path string, abi android.ABI) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	base := filepath.Base(path)
	objects := 0
	err = readMembers(bufio.NewReader(f), func(m member) error {
		ef, err := elf.NewFile(bytes.NewReader(m.Data))
		if err != nil {
			return nil
		}
		objects++
		return checkMachine(base+"("+m.Name+")", &ef.FileHeader, abi)
	})
	if err != nil {
		if errors.Is(err, ErrArchMismatch) {
			return err
		}
		return fmt.Errorf("reading archive %s: %w", base, err)
	}

	if objects == 0 {
		return fmt.Errorf("%s: archive has no ELF objects", base)
	}
	return nil
}

func checkMachine(name string, hdr *elf.FileHeader, abi android.ABI) error {
	machine, class := abi.Machine()
	if hdr.Machine != machine || hdr.Class != class {
		return fmt.Errorf("%w: %s is %s/%s, want %s/%s for %s",
			ErrArchMismatch, name, hdr.Machine, hdr.Class, machine, class, abi)
	}
	return nil
}
