package slangdroid

import (
	"bytes"
	"context"
	"debug/elf"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/slangdroid/pkg/cmake"
	"github.com/arc-language/slangdroid/pkg/ndk"
	"github.com/arc-language/slangdroid/pkg/platform"
	"github.com/arc-language/slangdroid/pkg/source"
)

// arm64Runner pretends every slang build produced an arm64 libslang.so
type arm64Runner struct{ ran int }

func (r *arm64Runner) Run(ctx context.Context, cmd cmake.Command) error {
	r.ran++
	if len(cmd.Args) == 5 && cmd.Args[1] == "--build" && cmd.Args[4] == "slang" {
		var ident [elf.EI_NIDENT]byte
		copy(ident[:], elf.ELFMAG)
		ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
		ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
		ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.LittleEndian, elf.Header64{
			Ident: ident, Type: uint16(elf.ET_DYN), Machine: uint16(elf.EM_AARCH64), Version: 1, Ehsize: 64,
		}); err != nil {
			return err
		}
		lib := filepath.Join(cmd.Args[2], "lib", "libslang.so")
		if err := os.MkdirAll(filepath.Dir(lib), 0755); err != nil {
			return err
		}
		return os.WriteFile(lib, buf.Bytes(), 0755)
	}
	return nil
}

func checkout(ctx context.Context, opts source.Options) (*source.Result, error) {
	inc := filepath.Join(opts.Dir, "include")
	if err := os.MkdirAll(inc, 0755); err != nil {
		return nil, err
	}
	return &source.Result{Dir: opts.Dir, Commit: "feedface"}, os.WriteFile(filepath.Join(inc, "slang.h"), nil, 0644)
}

func sdkWithNDK(t *testing.T) string {
	sdk := t.TempDir()
	tc := filepath.Join(sdk, "ndk", "26.1.10909125", "build", "cmake", "android.toolchain.cmake")
	require.NoError(t, os.MkdirAll(filepath.Dir(tc), 0755))
	require.NoError(t, os.WriteFile(tc, nil, 0644))
	return sdk
}

func testOptions(t *testing.T, runner cmake.Runner) *Options {
	sdk := sdkWithNDK(t)
	return &Options{
		Runner:   runner,
		Host:     &platform.Platform{OS: "linux", Arch: "amd64"},
		Env:      &ndk.Env{Getenv: func(k string) string { return map[string]string{"ANDROID_SDK_ROOT": sdk}[k] }, GOOS: "linux"},
		Checkout: checkout,
	}
}

func TestBuilderBuild(t *testing.T) {
	work := t.TempDir()
	cfg := DefaultConfig()
	cfg.WorkDir = work
	cfg.DistDir = filepath.Join(work, "dist")

	runner := &arm64Runner{}
	b, err := NewBuilder(cfg, testOptions(t, runner))
	require.NoError(t, err)
	assert.Equal(t, "26.1.10909125", filepath.Base(b.NDK().Path))

	steps, err := b.Plan()
	require.NoError(t, err)
	assert.Len(t, steps, 5)

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, runner.ran)
	assert.FileExists(t, filepath.Join(res.DistDir, "arm64-v8a", "libslang.so"))
	assert.Equal(t, "feedface", res.Manifest.Commit)
}

func TestBuilderWrapsErrors(t *testing.T) {
	work := t.TempDir()
	cfg := DefaultConfig()
	cfg.WorkDir = work
	cfg.DistDir = filepath.Join(work, "dist")
	cfg.ABIs = []string{"x86_64"}

	b, err := NewBuilder(cfg, testOptions(t, &arm64Runner{}))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "build", e.Op)
	assert.Equal(t, "x86_64/android-30", e.Target)
	assert.ErrorIs(t, err, ErrArchMismatch)
}

func TestNewBuilderValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tag = "main"
	_, err := NewBuilder(cfg, testOptions(t, &arm64Runner{}))
	assert.ErrorIs(t, err, ErrInvalidTag)

	cfg = DefaultConfig()
	cfg.Platform = "android-16"
	_, err = NewBuilder(cfg, testOptions(t, &arm64Runner{}))
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	cfg = DefaultConfig()
	opts := testOptions(t, &arm64Runner{})
	opts.Env = &ndk.Env{GOOS: "linux", Home: t.TempDir()}
	_, err = NewBuilder(cfg, opts)
	assert.ErrorIs(t, err, ErrNDKNotFound)
}

func TestErrorString(t *testing.T) {
	err := &Error{Op: "fetch", Target: "v2025.24.2/x86", Err: ErrHashMismatch}
	assert.Equal(t, "fetch v2025.24.2/x86: hash mismatch", err.Error())
	assert.Equal(t, "build: hash mismatch", (&Error{Op: "build", Err: ErrHashMismatch}).Error())
}
